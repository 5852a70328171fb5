package commands

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/bootcamp/internal/httpx"
	"github.com/idilsaglam/bootcamp/internal/scores"
)

func (a *app) matchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Simulate a match and notify score observers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := a.cfg.Match
			out := cmd.OutOrStdout()

			match := scores.NewFootballScores(
				scores.WithLogger(a.log),
				scores.WithEvents(cfg.Events),
				scores.WithInterval(cfg.Interval),
			)
			match.Subscribe(scores.NewScoreboard(out))
			for _, team := range cfg.Fans {
				match.Subscribe(scores.NewFan(team, out))
			}

			if cfg.Listen != "" {
				feed := scores.NewFeed(a.log)
				match.Subscribe(feed)

				mux := http.NewServeMux()
				mux.Handle("GET /scores", feed)

				srvCtx, stop := context.WithCancel(ctx)
				done := make(chan error, 1)
				go func() { done <- httpx.ListenAndServe(srvCtx, cfg.Listen, mux, a.log) }()
				defer func() {
					feed.Close()
					stop()
					if err := <-done; err != nil {
						a.log.Warn("score feed", "err", err)
					}
				}()
				a.log.Info("score feed listening", "addr", cfg.Listen, "path", "/scores")
			}

			err := match.Play(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().Int("events", 5, "number of goals to simulate")
	cmd.Flags().Duration("interval", scores.DefaultInterval, "pause between events")
	cmd.Flags().String("listen", "", "serve a websocket score feed on this address")
	cmd.Flags().StringSlice("fan", nil, "favourite teams to follow (repeatable)")
	_ = a.v.BindPFlag("match.events", cmd.Flags().Lookup("events"))
	_ = a.v.BindPFlag("match.interval", cmd.Flags().Lookup("interval"))
	_ = a.v.BindPFlag("match.listen", cmd.Flags().Lookup("listen"))
	_ = a.v.BindPFlag("match.fans", cmd.Flags().Lookup("fan"))
	return cmd
}
