package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Client configures the storefront shell.
type Client struct {
	AuthURL     string        `yaml:"auth_url"`
	ProductsURL string        `yaml:"products_url"`
	ReviewsURL  string        `yaml:"reviews_url"`
	Timeout     time.Duration `yaml:"timeout"`
	// SeedCatalog serves the built-in products instead of the product service.
	SeedCatalog bool   `yaml:"seed_catalog"`
	Language    string `yaml:"language"`
}

func defaultClient() Client {
	return Client{
		AuthURL:     "http://localhost:8080/auth",
		ProductsURL: "http://localhost:8080/products",
		ReviewsURL:  "http://localhost:8080/reviews",
		Timeout:     10 * time.Second,
		Language:    "ru",
	}
}

// LoadClient reads path (if it exists) over the defaults, then applies the
// STOREFRONT_* environment overrides. An empty path skips the file.
func LoadClient(path string) (Client, error) {
	cfg := defaultClient()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Client{}, fmt.Errorf("read client config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Client{}, fmt.Errorf("parse client config %s: %w", path, err)
			}
		}
	}

	cfg.AuthURL = envOrDefault("STOREFRONT_AUTH_URL", cfg.AuthURL)
	cfg.ProductsURL = envOrDefault("STOREFRONT_PRODUCTS_URL", cfg.ProductsURL)
	cfg.ReviewsURL = envOrDefault("STOREFRONT_REVIEWS_URL", cfg.ReviewsURL)
	cfg.Timeout = envDuration("STOREFRONT_TIMEOUT_SECONDS", cfg.Timeout)
	return cfg, nil
}
