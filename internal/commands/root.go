// Package commands wires every bootcamp exercise into one cobra command tree.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idilsaglam/bootcamp/internal/config"
	"github.com/idilsaglam/bootcamp/internal/logging"
	"github.com/idilsaglam/bootcamp/internal/ui"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
}

// exitError carries a process exit code out of a subcommand.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// NewRootCommand builds the command tree with its own Viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "bootcamp",
		Short: "Course exercises: task API, HTTP servers and design patterns",
		Long: `bootcamp bundles the course exercises in one binary.

  bootcamp tasks serve     REST task API
  bootcamp todo ls         terminal client for the task API
  bootcamp serve           native or routed users server
  bootcamp match           observer pattern: live football scores
  bootcamp db              singleton pattern: one database connection
  bootcamp pizza           builder pattern: order a pizza
  bootcamp seed            prepare the local document store

Settings come from flags, BOOTCAMP_<SECTION>_<OPTION> variables and .bootcamp.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .bootcamp.yml)")
	root.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = a.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	root.PersistentFlags().String("theme", "classic", "terminal theme (classic, neon, mono)")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")
	_ = a.v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))
	_ = a.v.BindPFlag("ui.theme", root.PersistentFlags().Lookup("theme"))
	_ = a.v.BindPFlag("ui.no_color", root.PersistentFlags().Lookup("no-color"))

	root.AddCommand(
		a.tasksCommand(),
		a.todoCommand(),
		a.serveCommand(),
		a.matchCommand(),
		a.dbCommand(),
		a.pizzaCommand(),
		a.seedCommand(),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: stderr})
	ui.SetTheme(cfg.UI.Theme)
	ui.SetColorForcing(false, cfg.UI.NoColor)
	return nil
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintln(stderr, "Error:", err)
	return 1
}
