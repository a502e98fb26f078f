package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-crud/internal/config"
	"catalog-crud/internal/database"
	handler "catalog-crud/internal/handler/http"
	"catalog-crud/internal/logger"
	middleware_http "catalog-crud/internal/middleware/http"
	"catalog-crud/internal/repository"
	"catalog-crud/internal/service"
	"catalog-crud/internal/tracer"
)

// store is what both repositories provide to the services.
type store interface {
	service.ProductStore
	service.Pinger
}

func main() {
	globalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Instance()
	cfg := config.Instance()

	shutdownTracer, err := tracer.Instance(globalCtx)
	if err != nil {
		log.Warn("Tracing disabled", slog.String("error", err.Error()))
	}
	defer shutdownTracer()

	var repo store
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("Using in-memory store; data is lost on restart")
		repo = repository.NewMemoryProductRepository()
	default:
		db, err := database.Instance(globalCtx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Close(ctx)
		}()
		repo = repository.NewProductRepository(db.Database)
	}

	// Wiring
	productService := service.NewProductService(repo)
	productHandler := handler.NewProductHandler(productService)
	healthHandler := handler.NewHealthHandler(service.NewHealthService(repo, cfg.StoreDriver))

	// Routing
	mux := http.NewServeMux()
	productHandler.RegisterRoutes(mux)
	mux.HandleFunc("GET /healthz", healthHandler.Check)
	if cfg.StaticDir != "" {
		mux.Handle("/", handler.NewStaticHandler(cfg.StaticDir))
	}

	server := &http.Server{
		Addr: ":" + cfg.AppPort,
		Handler: middleware_http.Chain(mux,
			middleware_http.RequestID(),
			middleware_http.CORS(middleware_http.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins}),
			middleware_http.TraceMiddleware(),
			middleware_http.Recover(),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-globalCtx.Done()
		log.Info("Shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", slog.String("error", err.Error()))
		}
	}()

	log.Info("HTTP server running", slog.String("addr", server.Addr), slog.String("store", cfg.StoreDriver))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
