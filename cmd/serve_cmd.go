package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"school-gallery/pkg/config"
	"school-gallery/pkg/handlers"
	"school-gallery/pkg/services"
)

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server to serve the gallery pages, images and ZIP downloads via HTTP.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := initService()
			defer services.Shutdown()
			if err := ServeWebsite(cfg, services.Default()); err != nil {
				log.Printf("Server error: %v", err)
				os.Exit(1)
			}
		},
	}
}

// ServeWebsite runs the web server until SIGINT or SIGTERM
func ServeWebsite(cfg *config.Config, svc *services.Service) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.CatalogPath != "" {
		go func() {
			if err := services.WatchCatalog(ctx, cfg.CatalogPath, svc.SetCatalog); err != nil {
				log.Printf("Catalog hot reload disabled: %v", err)
			}
		}()
	}

	server := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           handlers.New(svc, cfg).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.PrintServerStartMessage()
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutdown signal received, shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server closed")
	return nil
}
