package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/amitrahman1026/personal-site/internal/logging"
	"github.com/amitrahman1026/personal-site/internal/site"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the website",
	Long:  `Serves the site shell, markdown panel fragments, theme toggle and static content until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != "" {
			cfg.Port = servePort
		}

		logger := logging.New(os.Stderr, cfg.Debug)
		if cfg.Debug {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		handler, err := site.New(*cfg, site.WithLogger(logger))
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:        ":" + cfg.Port,
			Handler:     handler,
			ReadTimeout: 5 * time.Second,
			IdleTimeout: 60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("site listening", "addr", srv.Addr, "base_path", cfg.BasePath, "content_dir", cfg.ContentDir, "content_origin", cfg.ContentOrigin)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
