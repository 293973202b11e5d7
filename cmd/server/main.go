package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"resource-library/internal/bootstrap"
	httptransport "resource-library/internal/transport/http"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("resource-library: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("close resources failed: %v", err)
		}
	}()

	router := httptransport.NewRouter(app)
	for _, route := range router.Routes() {
		log.Printf("route %-6s %s", route.Method, route.Path)
	}
	logOptionalDeps(app)

	server := &http.Server{
		Addr:              app.Config.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("serving resources on %s, %s store, uploads in %s",
			server.Addr, app.Config.Database.Driver, app.Config.Storage.UploadDir)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("signal received, draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func logOptionalDeps(app *bootstrap.App) {
	cfg := app.Config
	log.Printf("embedding provider %s, model %s", cfg.Embedding.Provider, cfg.Embedding.Model)
	if app.Redis == nil {
		log.Printf("transcript cache disabled (REDIS_ADDR unset)")
	}
	if app.MQConn == nil {
		log.Printf("resource events disabled (RABBITMQ_URL unset); /api/events stays empty")
	}
}
