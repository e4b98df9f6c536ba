package main

import (
	"context"
	"flag"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	adminrepo "storefront/internal/repository/admin"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/seed"
)

func main() {
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatalf("load .env: %v", err)
	}

	var opts seed.Options
	flag.StringVar(&opts.AdminUsername, "admin", os.Getenv("SEED_ADMIN_USERNAME"), "admin username (default admin)")
	flag.BoolVar(&opts.SkipProducts, "admin-only", false, "only create the admin account")
	flag.Parse()
	opts.AdminPassword = os.Getenv("SEED_ADMIN_PASSWORD")
	if opts.AdminPassword == "" {
		logger.Fatalf("SEED_ADMIN_PASSWORD must be set")
	}

	cfg := config.FromEnv()
	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Options{DSN: cfg.DBConnString, MaxConns: cfg.DBMaxConns})
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	admins := adminrepo.NewPostgres(pool, logger)
	products := productrepo.NewPostgres(pool, logger)
	if err := seed.Apply(ctx, admins, products, opts, logger); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
