package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/isogrid/isogrid/internal/httpapi"
	"github.com/isogrid/isogrid/pkg/pafv"
)

// serveCommand creates the serve command exposing the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen   string
		canvasID string
		viewName string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the grid layout and axis API over HTTP",
		Long: `Serve the grid layout and axis API over HTTP.

Endpoints:

  POST /api/layout                       compute a grid layout
  GET  /api/axes                         list axes and the current mapping
  POST /api/axes/{assign,swap,clear}     mutate the mapping
  GET  /api/views/{canvas}/{view}        read persisted view state
  PUT  /api/views/{canvas}/{view}        write persisted view state

The store and cache backends come from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), listen, canvasID, viewName, noCache)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	cmd.Flags().StringVar(&canvasID, "canvas", "default", "canvas backing the axis service")
	cmd.Flags().StringVar(&viewName, "view", "grid", "view backing the axis service")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen, canvasID, viewName string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if listen == "" {
		listen = cfg.Server.Listen
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStores(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	svc := pafv.NewService(ctx, st.Facets, st.Views, pafv.ServiceConfig{
		CanvasID: canvasID,
		ViewName: viewName,
	}, c.Logger)
	defer svc.Destroy()

	api := httpapi.NewServer(runner, svc, st.Views, c.Logger)
	srv := &http.Server{
		Addr:              listen,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	c.Logger.Info("serving", "addr", listen)
	printInfo("Listening on %s", listen)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
