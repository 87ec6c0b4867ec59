package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/nutshell/internal/metrics"
	httpAdapter "github.com/aretw0/nutshell/pkg/adapters/http"
	"github.com/aretw0/nutshell/pkg/adapters/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the compile HTTP server",
	Long: `Serves POST /compile (a YAML rule file in, a JSON report out),
GET /symmetries/{neighborhood} and GET /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")

		m := metrics.New()
		opts := httpAdapter.Options{
			Seed:           cfg.Seed,
			OrbitCacheSize: cfg.OrbitCacheSize,
			Logger:         logger,
			Observer:       m,
			Gatherer:       m.Registry(),
		}
		if cfg.RedisAddr != "" {
			cache := redis.New(cfg.RedisAddr, cfg.RedisPassword, 0, redis.WithTTL(cfg.CacheTTL))
			defer cache.Close()
			opts.Cache = cache
			logger.Info("report cache enabled", "redis", cfg.RedisAddr)
		}
		handler := httpAdapter.NewHandler(opts)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("nutshell server listening", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("failed to close server", "err", err)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
