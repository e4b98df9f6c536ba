package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/text/language"

	"storefront/internal/config"
	"storefront/internal/storefront/app"
	"storefront/internal/storefront/catalog"
	"storefront/internal/storefront/client"
	"storefront/internal/storefront/shell"
)

func main() {
	var configPath string
	var verbose bool
	flag.StringVar(&configPath, "config", "storefront.yaml", "client config file")
	flag.BoolVar(&verbose, "v", false, "log component activity to stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "[storefront] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg, err := config.LoadClient(configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	var componentLogger *log.Logger
	if verbose {
		componentLogger = logger
	}

	tag, err := language.Parse(cfg.Language)
	if err != nil {
		logger.Printf("unknown language %q, using ru: %v", cfg.Language, err)
		tag = language.Russian
	}

	remote := client.New(client.Options{
		AuthURL:     cfg.AuthURL,
		ProductsURL: cfg.ProductsURL,
		ReviewsURL:  cfg.ReviewsURL,
		Timeout:     cfg.Timeout,
	}, componentLogger)

	var sh *shell.Shell
	opts := app.Options{
		Language: tag,
		Logger:   componentLogger,
		OnNotice: func(n app.Notice) {
			if sh != nil {
				sh.Notify(n)
			}
		},
	}
	if cfg.SeedCatalog {
		opts.Catalog = catalog.StaticLoader(catalog.SeedProducts())
	}
	ctrl := app.New(remote, opts)
	sh = shell.New(ctrl, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl.Start(ctx)
	defer ctrl.Close()

	if n := ctrl.Reload(ctx); n.IsError() {
		sh.Notify(n)
	}
	if err := sh.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		logger.Printf("read input: %v", err)
	}
}
