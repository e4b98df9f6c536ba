package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	adminrepo "storefront/internal/repository/admin"
	productrepo "storefront/internal/repository/product"
	reviewrepo "storefront/internal/repository/review"
	sessionrepo "storefront/internal/repository/session"
	authsvc "storefront/internal/service/auth"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatalf("load .env: %v", err)
	}
	cfg := config.FromEnv()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, db.Options{DSN: cfg.DBConnString, MaxConns: cfg.DBMaxConns})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	checks := map[string]httpserver.Check{"postgres": dbpool.Ping}
	sessions := sessionrepo.NewMemory()
	if cfg.RedisURL != "" {
		rdb, err := sessionrepo.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer rdb.Close()
		sessions = sessionrepo.NewRedis(rdb, logger)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		logger.Printf("sessions stored in redis")
	}

	authService := authsvc.New(adminrepo.NewPostgres(dbpool, logger), sessions, cfg.SessionSecret, cfg.SessionTTL, logger)
	productService := productsvc.New(productrepo.NewPostgres(dbpool, logger), logger)
	reviewService := reviewsvc.New(reviewrepo.NewPostgres(dbpool, logger))

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		AuthSvc:     authService,
		ProductSvc:  productService,
		ReviewSvc:   reviewService,
		CORSOrigins: cfg.CORSOrigins,
		ReadyChecks: checks,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
