package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/bootcamp/internal/dbconn"
	"github.com/idilsaglam/bootcamp/internal/pizza"
)

func (a *app) dbCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "db",
		Short: "Show that the database connection is a single shared instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			db1 := dbconn.InstanceWith(a.log)
			fmt.Fprintf(out, "db1.Connect() = %t\n", db1.Connect())
			db2 := dbconn.Instance()
			fmt.Fprintf(out, "db2.Connect() = %t\n", db2.Connect())
			fmt.Fprintf(out, "Are db1 and db2 the same instance?: %t\n", db1 == db2)

			explicit := dbconn.New(a.log)
			fmt.Fprintf(out, "explicit.Connect() = %t\n", explicit.Connect())
			fmt.Fprintf(out, "Is the explicit connection shared?: %t\n", explicit == db1)
			explicit.Disconnect()
			return nil
		},
	}
}

func (a *app) pizzaCommand() *cobra.Command {
	var (
		size, cheese, sauce, mainIng, second string
		asJSON                               bool
	)
	cmd := &cobra.Command{
		Use:   "pizza",
		Short: "Build a pizza step by step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := pizza.NewBuilder()
			flags := cmd.Flags()
			if flags.Changed("size") {
				b.Size(size)
			}
			if flags.Changed("cheese") {
				b.Cheese(cheese)
			}
			if flags.Changed("sauce") {
				b.TomatoSauce(sauce)
			}
			if flags.Changed("main") {
				b.MainIngredient(mainIng)
			}
			if flags.Changed("second") {
				b.SecondIngredient(second)
			}
			p := b.Build()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Info())
			return nil
		},
	}
	cmd.Flags().StringVar(&size, "size", "", "l/large/grande, m/medium/mediana, s/small/chica/pequeña")
	cmd.Flags().StringVar(&cheese, "cheese", "", "none, normal or extra")
	cmd.Flags().StringVar(&sauce, "sauce", "", "classic, bbq, spicy or none")
	cmd.Flags().StringVar(&mainIng, "main", "", "pepperoni, ham, veggie or chicken")
	cmd.Flags().StringVar(&second, "second", "", "mushrooms, pineapple, onion, none or anything else")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the pizza as JSON")
	return cmd
}
