package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/freelance-marketplace-api/internal/database"
	"github.com/yukikurage/freelance-marketplace-api/internal/handlers"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		gin.SetMode(cfg.GinMode)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStores(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connecting store: %w", err)
		}
		defer func() {
			if err := database.Close(context.Background()); err != nil {
				log.Printf("Failed to close store: %v", err)
			}
		}()

		if err := migrateStores(ctx, cfg); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		verifier, err := services.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
		if err != nil {
			return err
		}

		router := handlers.NewRouter(handlers.Dependencies{
			Tasks:    services.NewTaskService(st.tasks),
			Bids:     services.NewBidService(st.tasks, st.bids),
			Verifier: verifier,
		})

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server starting on :%s (store: %s)", cfg.Port, cfg.StoreDriver)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Println("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
