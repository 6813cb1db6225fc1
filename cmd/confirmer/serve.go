package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alvmarrod/hl3-confirmer/internal/analyzer"
	"github.com/alvmarrod/hl3-confirmer/internal/config"
	"github.com/alvmarrod/hl3-confirmer/internal/metrics"
	"github.com/alvmarrod/hl3-confirmer/internal/server"
	"github.com/alvmarrod/hl3-confirmer/internal/storage"
	"github.com/alvmarrod/hl3-confirmer/internal/version"
)

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the proof API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.ListenAddr = listen
			}
			return serve(cfg)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides listen_addr)")
	return cmd
}

func serve(cfg *config.Config) error {
	logrus.Infof("HL3 confirmer v%s starting...", version.Version)
	logrus.Infof("Configuration: listen=%s, goal=%v, mode=%s, strict=%v",
		cfg.ListenAddr, cfg.Goal, cfg.SearchMode(), cfg.StrictFrontier)

	// Initialize storage
	store, err := storage.NewStorage(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if found, total, err := store.CountProofs(); err == nil {
		logrus.Infof("Database initialized: %s (%d proofs, %d found)", cfg.DBPath, total, found)
	}

	tracker := metrics.NewTracker()
	client := analyzer.NewClient(cfg.AnalyzerURL,
		time.Duration(cfg.AnalyzerTimeoutMs)*time.Millisecond, cfg.AnalyzerRatePerSec)

	srv := server.New(cfg, client, store, tracker)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Setup signal handler for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serveErr := make(chan error, 1)
	go func() {
		logrus.Infof("Listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Start progress logger
	var wg sync.WaitGroup
	stopProgress := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				logrus.Info(tracker.LogProgress())
			case <-stopProgress:
				return
			}
		}
	}()

	terminationReason := "signal"
	select {
	case sig := <-sigChan:
		logrus.Infof("Received signal: %v", sig)
	case err := <-serveErr:
		if err != nil {
			logrus.Errorf("HTTP server failed: %v", err)
			terminationReason = "server_error"
		}
	}

	close(stopProgress)
	wg.Wait()

	logrus.Info("Initiating graceful shutdown...")
	logrus.Info("Step 1/3: Draining HTTP requests...")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownTimeoutMs)*time.Millisecond)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.Warnf("HTTP shutdown incomplete: %v", err)
	}

	logrus.Info("Step 2/3: Writing final metrics...")
	logrus.Info("Final stats: " + tracker.LogProgress())
	if err := tracker.WriteToFile(cfg.MetricsPath, terminationReason); err != nil {
		logrus.Errorf("Failed to write metrics: %v", err)
	} else {
		logrus.Infof("Metrics written to %s", cfg.MetricsPath)
	}

	logrus.Info("Step 3/3: Closing database connection...")
	logrus.Info("Graceful shutdown complete. Goodbye!")
	return nil
}
