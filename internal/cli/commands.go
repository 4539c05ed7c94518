package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shopsmart/internal/screen"
	"shopsmart/internal/shopping"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the list grouped by day with its total",
		Args:  cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			rep := newReporter(cmd.ErrOrStderr())
			c := app.controller(cmd.Context(), rep)
			defer c.Close()
			printGroups(cmd.OutOrStdout(), c.Groups(), c.Total(), app.cfg.Currency)
			return nil
		}),
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME AMOUNT",
		Short: "Add an item, looking up an image for it",
		Args:  cobra.MinimumNArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[:max(len(args)-1, 1)], " ")
			amount := ""
			if len(args) > 1 {
				amount = args[len(args)-1]
			}
			rep := newReporter(cmd.ErrOrStderr())
			c := app.controller(cmd.Context(), rep)
			defer c.Close()
			if err := c.AddItem(cmd.Context(), name, amount); err != nil {
				if shopping.IsValidation(err) {
					return errors.New("item not added")
				}
				return err
			}
			items := c.Items()
			added := items[len(items)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s%d)\n", added.Name, app.cfg.Currency, added.Amount)
			return nil
		}),
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME...",
		Aliases: []string{"rm"},
		Short:   "Remove every item with one of the given names",
		Args:    cobra.MinimumNArgs(1),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			rep := newReporter(cmd.ErrOrStderr())
			c := app.controller(cmd.Context(), rep)
			defer c.Close()

			names := map[string]struct{}{}
			for _, a := range args {
				names[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
			}
			for _, it := range c.Items() {
				if _, ok := names[strings.ToLower(it.Name)]; ok {
					c.ToggleSelect(it, true)
				}
			}
			if !c.DeleteVisible() {
				return fmt.Errorf("no items named %s", strings.Join(args, ", "))
			}
			before := len(c.Items())
			if err := c.DeleteSelected(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d item(s)\n", before-len(c.Items()))
			return nil
		}),
	}
}

func newCheckoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Save the current list as the orders and show them",
		Args:  cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			rep := newReporter(cmd.ErrOrStderr())
			c := app.controller(cmd.Context(), rep)
			defer c.Close()
			err := c.Checkout(cmd.Context())
			if rep.route == screen.RouteOrders {
				if perr := showOrders(cmd, app); perr != nil && err == nil {
					err = perr
				}
			}
			return err
		}),
	}
}

func newOrdersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Print the orders saved at the last checkout",
		Args:  cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			return showOrders(cmd, app)
		}),
	}
}

func showOrders(cmd *cobra.Command, app *App) error {
	records, err := app.orders.LoadOrders(cmd.Context())
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	printOrders(cmd.OutOrStdout(), records, app.cfg.Currency)
	return nil
}
