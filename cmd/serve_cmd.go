package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"craft-gallery/pkg/config"
	"craft-gallery/pkg/handlers"
	"craft-gallery/pkg/lightbox"
	"craft-gallery/pkg/services"
)

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server to serve the home page, product pages and lightbox API via HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return ServeWebsite(cmd.Context(), cfg, svc, logger)
		},
	}
}

// NewServer builds the HTTP server for cfg
func NewServer(cfg *config.Config, svc *services.Service, logger *zap.Logger) *http.Server {
	sessions := lightbox.NewStore(cfg.SessionTTL)
	h := handlers.New(svc, sessions, handlers.PugRenderer{Dir: cfg.ViewsDir}, logger)

	return &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           h.Router(cfg.PublicDir),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// ServeWebsite runs the web server until ctx is done or SIGINT/SIGTERM arrives
func ServeWebsite(ctx context.Context, cfg *config.Config, svc *services.Service, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := NewServer(cfg, svc, logger)

	errCh := make(chan error, 1)
	go func() {
		cfg.PrintServerStartMessage()
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
