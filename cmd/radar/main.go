package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yegors/atc24-radar/internal/api"
	"github.com/yegors/atc24-radar/internal/config"
	"github.com/yegors/atc24-radar/internal/ptfs"
	"github.com/yegors/atc24-radar/internal/state"
	"github.com/yegors/atc24-radar/pkg/logger"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	flag.Parse()

	// Load configuration with fallback logic
	cfg, foundPath, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: "console", // Always use console format for better readability
		File:   cfg.Logging.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting ATC 24 radar core",
		logger.String("version", Version),
		logger.String("config_path", foundPath),
	)

	// Root context, cancelled on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create the state store and feed components
	store := state.NewStore(cfg)
	router := ptfs.NewRouter(store, log)
	stream := ptfs.NewStreamClient(store, router, log)

	group, ctx := errgroup.WithContext(ctx)

	// Live data stream, reconnecting for the life of the process
	group.Go(func() error {
		return stream.Run(ctx)
	})

	// REST fallback poller, idle unless enabled and the stream is down. It
	// re-reads the enable flag and client settings from the live snapshot
	// each tick, so a hot-reload can turn it on or repoint it.
	poller := ptfs.NewPoller(store, log)
	group.Go(func() error {
		return poller.Run(ctx)
	})

	// Hot-reload the config file when it changes on disk
	if foundPath != "" {
		watcher := config.NewWatcher(foundPath, store.UpdateConfig, log)
		group.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	// Evict aircraft that stopped reporting
	group.Go(func() error {
		return runStaleSweeper(ctx, store, log.Named("sweeper"))
	})

	// Local snapshot API
	var server *http.Server
	if cfg.Server.Enabled {
		apiRouter := api.NewRouter(store, log)
		server = &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      apiRouter.Routes(),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
		}

		group.Go(func() error {
			log.Info("Starting HTTP server", logger.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
	}

	// Wait for interrupt signal or component failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", logger.String("signal", sig.String()))
	case <-ctx.Done():
		log.Error("Component failed, shutting down")
	}

	cancel()

	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", logger.Error(err))
		}
	}

	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Error("Shutdown with error", logger.Error(err))
	}

	log.Info("Radar core fully stopped")
}

// runStaleSweeper periodically evicts aircraft that have not been updated
// within the configured staleness window.
func runStaleSweeper(ctx context.Context, store *state.Store, log *logger.Logger) error {
	for {
		timeout := time.Duration(store.Config().Network.StaleTimeoutSecs) * time.Second
		sweepEvery := timeout / 4
		if sweepEvery < time.Second {
			sweepEvery = time.Second
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sweepEvery):
			if removed := store.ClearStaleAircraft(timeout); removed > 0 {
				log.Debug("Evicted stale aircraft", logger.Int("count", removed))
			}
		}
	}
}
