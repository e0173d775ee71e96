package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run starts the HTTP server and all background services, then blocks
// until a shutdown signal arrives:
//  1. Wire handlers and routes
//  2. Start the broker subscriber (when enabled) and the view flusher
//  3. Serve HTTP
//  4. On signal: stop intake, close every live stream, flush views
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		srv.logger.Fatalf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	if srv.subscriber != nil {
		if err := srv.subscriber.Start(); err != nil {
			srv.logger.Fatalf(ctx, "Failed to start broker subscriber: %v", err)
			return err
		}
		srv.logger.Info(ctx, "Broker subscriber started")
	}

	srv.viewFlusher.Start()

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", srv.cfg.HTTPServer.Host, srv.cfg.HTTPServer.Port),
		Handler: srv.gin,
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.logger.Errorf(ctx, "HTTP server error: %v", err)
		}
	}()
	srv.logger.Infof(ctx, "HTTP server started on port: %d", srv.cfg.HTTPServer.Port)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	srv.logger.Info(ctx, <-ch)
	srv.logger.Info(ctx, "Stopping service...")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "HTTP server shutdown error: %v", err)
	}

	if srv.subscriber != nil {
		if err := srv.subscriber.Shutdown(shutdownCtx); err != nil {
			srv.logger.Errorf(ctx, "Broker subscriber shutdown error: %v", err)
		}
	}

	// Closing the registries ends every open stream loop so the HTTP
	// shutdown above does not wait out its full timeout.
	srv.registry.CloseAll()
	srv.conversations.CloseAll()

	if err := srv.viewFlusher.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "View flusher shutdown error: %v", err)
	}

	return nil
}
