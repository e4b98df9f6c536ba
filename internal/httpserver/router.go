package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
)

// AuthService issues and checks admin session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	Validate(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
}

type ReviewService interface {
	List(ctx context.Context, productID *int64) ([]domain.Review, error)
	Create(ctx context.Context, in reviewsvc.CreateInput) (*domain.Review, error)
}

// Deps carries the services the handlers call.
type Deps struct {
	AuthSvc    AuthService
	ProductSvc ProductService
	ReviewSvc  ReviewService
	// CORSOrigins lists allowed origins; "*" or empty allows any.
	CORSOrigins []string
	// ReadyChecks back /readyz, keyed by dependency name.
	ReadyChecks map[string]Check
}

func (d Deps) validate() error {
	if d.AuthSvc == nil || d.ProductSvc == nil || d.ReviewSvc == nil {
		return errors.New("httpserver: auth, product and review services are required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), requestIDMiddleware())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(logger, deps.ReadyChecks))

	auth := &authHandler{svc: deps.AuthSvc, logger: logger}
	router.POST("/auth", auth.login)
	router.GET("/auth", auth.validate)
	router.DELETE("/auth", auth.logout)

	products := &productHandler{svc: deps.ProductSvc, logger: logger}
	router.GET("/products", products.list)
	router.POST("/products", adminSessionMiddleware(deps.AuthSvc), products.create)

	reviews := &reviewHandler{svc: deps.ReviewSvc, logger: logger}
	router.GET("/reviews", reviews.list)
	router.POST("/reviews", reviews.create)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", domain.SessionTokenHeader},
		MaxAge:       24 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
