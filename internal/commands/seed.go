package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/bootcamp/internal/seed"
)

func (a *app) seedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create collections, sample products and users in the document store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := a.cfg.Seed

			var (
				f   *seed.Fixture
				err error
			)
			if cfg.Fixture != "" {
				f, err = seed.LoadFixture(cfg.Fixture)
			} else {
				f, err = seed.DefaultFixture()
			}
			if err != nil {
				return err
			}

			store, err := seed.Open(ctx, cfg.DB, seed.WithLogger(a.log))
			if err != nil {
				return err
			}
			defer store.Close()

			rep, err := seed.Run(ctx, store, f, a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"%s: %d collections created, %d products inserted, %d rejected, %d users created, %d already existed\n",
				f.Database, rep.Collections, rep.Inserted, rep.Rejected, rep.UsersCreated, rep.UsersExisting)
			return nil
		},
	}
	cmd.Flags().String("db", "bootcamp-docs.db", "document store file")
	cmd.Flags().String("fixture", "", "YAML fixture (default: built-in Product-db fixture)")
	_ = a.v.BindPFlag("seed.db", cmd.Flags().Lookup("db"))
	_ = a.v.BindPFlag("seed.fixture", cmd.Flags().Lookup("fixture"))
	return cmd
}
