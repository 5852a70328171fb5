package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/bootcamp/internal/httpx"
	"github.com/idilsaglam/bootcamp/internal/tui"
	"github.com/idilsaglam/bootcamp/internal/users"
)

var serverOptions = []tui.Option{
	{Key: "1", Label: "Native HTTP Server", Hint: "net/http handler, paths matched by hand"},
	{Key: "2", Label: "Routed HTTP Server", Hint: "method and path patterns, JSON bodies"},
}

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the native or routed users server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			choice := a.cfg.Users.Kind
			if choice == "" {
				var err error
				choice, err = tui.Choose("Which server do you want to start?", serverOptions, cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}
			kind, err := users.ParseKind(choice)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Invalid choice. Exiting.")
				return nil
			}
			h, err := users.Handler(kind, a.log)
			if err != nil {
				return err
			}
			a.log.Info("users server listening", "kind", kind, "addr", a.cfg.Users.Addr)
			return httpx.ListenAndServe(cmd.Context(), a.cfg.Users.Addr, h, a.log)
		},
	}
	cmd.Flags().String("kind", "", "server kind: native or router (asks when empty)")
	cmd.Flags().String("addr", ":3000", "listen address")
	_ = a.v.BindPFlag("users.kind", cmd.Flags().Lookup("kind"))
	_ = a.v.BindPFlag("users.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
