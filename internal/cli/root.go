package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"shopsmart/internal/config"
	"shopsmart/internal/imagesearch"
	"shopsmart/internal/logging"
	"shopsmart/internal/orders"
	"shopsmart/internal/screen"
	"shopsmart/internal/storage"
	"shopsmart/internal/ui"
	"shopsmart/internal/viewmodel"
)

// App carries the resources opened once per invocation.
type App struct {
	ConfigPath string

	cfg     config.Config
	log     *slog.Logger
	items   *storage.Store
	orders  *orders.Store
	vm      *viewmodel.ViewModel
	closers []io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "shopsmart",
		Short:         "Shopping list with checkout",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  shopsmart

  # Scriptable commands
  shopsmart add Milk 40
  shopsmart list
  shopsmart checkout
`),
		Args: cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			return ui.Run(cmd.Context(), app.vm, app.orders, app.cfg, app.log)
		}),
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default $SHOPSMART_CONFIG or ~/.config/shopsmart/config.toml)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.open()
	}

	cmd.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newRemoveCmd(app),
		newCheckoutCmd(app),
		newOrdersCmd(app),
	)
	return cmd
}

func (a *App) open() error {
	path := config.ResolveConfigPath(a.ConfigPath)
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	a.cfg = cfg

	log, closer, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	a.log = log
	a.closers = append(a.closers, closer)

	items, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.items = items
	a.closers = append(a.closers, items)

	a.orders, err = orders.Open(cfg.OrdersDir)
	if err != nil {
		return fmt.Errorf("open orders: %w", err)
	}

	searcher := imagesearch.New(cfg.ImageSearch.Endpoint, cfg.ImageSearch.AccessKey, cfg.ImageSearch.Timeout())
	a.vm = viewmodel.New(a.items, searcher, log)
	log.Debug("opened", "config", path, "db", cfg.DBPath, "orders", cfg.OrdersDir)
	return nil
}

// run wraps a command body so resources are released even when it fails.
func (a *App) run(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
		return err
	}
}

// Close releases everything open() acquired, most recent first.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// controller builds a loaded screen controller that reports to the terminal.
func (a *App) controller(ctx context.Context, rep *reporter) *screen.Controller {
	c := screen.New(a.vm, a.orders, rep, rep, screen.Options{
		DayLayout: a.cfg.DateLayout,
		Logger:    a.log,
	})
	c.Load(ctx)
	return c
}
