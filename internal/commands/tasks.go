package commands

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/bootcamp/internal/httpx"
	"github.com/idilsaglam/bootcamp/internal/tasks"
	"github.com/idilsaglam/bootcamp/internal/telemetry"
)

func (a *app) tasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "REST task API",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := a.cfg

			shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.Service)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.WithoutCancel(ctx)); err != nil {
					a.log.Warn("telemetry shutdown", "err", err)
				}
			}()

			var opts []tasks.Option
			if cfg.Tasks.Data != "" {
				opts = append(opts, tasks.WithSnapshot(cfg.Tasks.Data))
			}
			store, err := tasks.NewStore(opts...)
			if err != nil {
				return err
			}

			h := tasks.NewServer(store, a.log, tasks.ServerOptions{
				Token:   cfg.Tasks.Token,
				Metrics: httpx.NewMetrics(prometheus.NewRegistry(), "tasks"),
				Tracer:  telemetry.Tracer("tasks"),
			})
			a.log.Info("task API listening", "addr", cfg.Tasks.Addr, "auth", cfg.Tasks.Token != "")
			return httpx.ListenAndServe(ctx, cfg.Tasks.Addr, h, a.log)
		},
	}
	serve.Flags().String("addr", ":3000", "listen address")
	serve.Flags().String("data", "", "JSON snapshot file (empty keeps tasks in memory)")
	serve.Flags().String("token", "", "bearer token required on /api/tasks")
	_ = a.v.BindPFlag("tasks.addr", serve.Flags().Lookup("addr"))
	_ = a.v.BindPFlag("tasks.data", serve.Flags().Lookup("data"))
	_ = a.v.BindPFlag("tasks.token", serve.Flags().Lookup("token"))

	cmd.AddCommand(serve)
	return cmd
}
