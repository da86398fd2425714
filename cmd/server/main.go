package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tripdesk/internal/config"
	"tripdesk/internal/extraction"
	"tripdesk/internal/handler"
	"tripdesk/internal/importer"
	"tripdesk/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the extraction backend client
	backend := extraction.NewClient(&cfg.Backend)

	// Initialize the pipeline: serial queue, poller, service facade
	queue := importer.NewSubmissionQueue(backend, importer.QueueConfig{
		MinInterval:  cfg.Queue.MinInterval,
		BackoffStart: cfg.Queue.BackoffStart,
		BackoffCap:   cfg.Queue.BackoffCap,
		MaxAttempts:  cfg.Queue.MaxAttempts,
	})
	// The queue outlives the signal context so accepted submissions can
	// drain on shutdown; Close ends it.
	queueCtx, queueCancel := context.WithCancel(context.Background())
	defer queueCancel()
	go queue.Start(queueCtx)

	tracker := importer.NewTracker(backend, cfg.Poll.Interval)
	svc := importer.NewService(backend, queue, tracker)

	// Initialize handlers
	importH := handler.NewImportHandler(svc)
	healthH := handler.NewHealthHandler(queue)

	// Setup router
	r := router.Setup(importH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Let accepted submissions settle before exit.
	queue.Close()
	select {
	case <-queue.Done():
	case <-shutdownCtx.Done():
		log.Printf("queue drain timed out")
	}
	queueCancel()

	return nil
}
