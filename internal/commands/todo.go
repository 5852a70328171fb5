package commands

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/bootcamp/internal/cli"
)

func (a *app) todoCommand() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "todo <subcommand> [args]",
		Short: "Terminal client for the task API",
		Long:  "Talks to the task API at BOOTCAMP_API_URL. Run `bootcamp todo help` for subcommands.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig()
			if err != nil {
				return err
			}
			opt, err := cli.NewOptions(cfg)
			if err != nil {
				return err
			}
			opt.Group = group
			opt.Out = cmd.OutOrStdout()
			opt.Err = cmd.ErrOrStderr()

			if code := cli.Run(cmd.Context(), args, opt); code != 0 {
				return exitError{code: code}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}
