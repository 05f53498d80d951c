package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpHandlers "github.com/HenriqueMV/quotagate/internal/adapters/http/handlers"
	httpMiddleware "github.com/HenriqueMV/quotagate/internal/adapters/http/middleware"
	"github.com/HenriqueMV/quotagate/internal/adapters/metrics"
	memorystorage "github.com/HenriqueMV/quotagate/internal/adapters/storage/memory"
	redisstorage "github.com/HenriqueMV/quotagate/internal/adapters/storage/redis"
	"github.com/HenriqueMV/quotagate/internal/config"
	"github.com/HenriqueMV/quotagate/internal/core/ports"
	"github.com/HenriqueMV/quotagate/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cache, closeFn, err := initCache(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to init cache: %v", err)
	}
	defer closeFn()

	recorder, err := metrics.NewRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	engine, err := services.NewEngine(cache, services.Config{
		Enabled:  cfg.RateLimiter.Enabled,
		FailOpen: cfg.RateLimiter.FailOpen,
		Prefix:   cfg.RateLimiter.Prefix,
	}, services.WithRecorder(recorder))
	if err != nil {
		log.Fatalf("failed to create engine: %v", err)
	}

	check := ports.Check{
		Group:     cfg.RateLimiter.Group,
		Key:       ports.KeyByIdentityOrAddress(),
		Rate:      ports.StaticRate(cfg.RateLimiter.Rate),
		Increment: true,
		LockFor:   cfg.RateLimiter.LockFor,
	}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(httpMiddleware.NewRateLimiterMiddleware(engine, check))
		r.Get("/test", httpHandlers.TestHandler)
		r.Get("/usage", httpHandlers.NewUsageHandler(engine, check))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func initCache(cfg config.StorageConfig) (ports.Cache, func(), error) {
	switch cfg.Type {
	case "redis":
		redisCfg := redisstorage.Config{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		cache, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return cache, func() {
			if err := cache.Close(); err != nil {
				log.Printf("failed to close redis cache: %v", err)
			}
		}, nil
	case "memory":
		return memorystorage.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
