package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alauddinGen-Z/unilanguage/internal/api"
	"github.com/alauddinGen-Z/unilanguage/internal/booking"
	"github.com/alauddinGen-Z/unilanguage/internal/cache"
	"github.com/alauddinGen-Z/unilanguage/internal/calendar"
	"github.com/alauddinGen-Z/unilanguage/internal/config"
	"github.com/alauddinGen-Z/unilanguage/internal/observability/metrics"
	"github.com/redis/go-redis/v9"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s timezone=%s cache=%s",
		cfg.Env, cfg.HTTPPort, cfg.BusinessTimezone, cfg.SlotCacheBackend)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := calendar.NewGoogleBackend(rootCtx, cfg.GoogleClientEmail, cfg.GooglePrivateKey, cfg.BusinessTimezone)
	if err != nil {
		log.Fatalf("calendar backend error: %v", err)
	}

	var slotCache cache.SlotCache
	var rdb *redis.Client
	if cfg.SlotCacheBackend == "redis" {
		rdb, err = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("redis connection error: %v", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Printf("error closing redis: %v", err)
			}
		}()
		log.Println("connected to Redis")
		slotCache = cache.NewRedis(rdb, cfg.SlotCacheTTL)
	} else {
		slotCache = cache.NewMemory(cfg.SlotCacheTTL)
	}

	bookingMetrics := metrics.NewBookingMetrics(nil)
	svc := booking.NewService(backend, slotCache, cfg.Location, cfg.CalendarTimeout, bookingMetrics)
	validator := booking.NewValidator(cfg.Courses, cfg.Location)

	router := api.NewRouter(api.RouterConfig{
		Validator: validator,
		Service:   svc,
		Redis:     rdb,
		Env:       cfg.Env,
		Version:   version,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatalf("server error: %v", err)
	case <-rootCtx.Done():
	}

	log.Println("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
