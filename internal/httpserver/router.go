package httpserver

import (
	"context"
	"net/http"
	"time"

	"gamestore/internal/domain"
	"gamestore/internal/service/identity"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// IdentityService resolves the customer key for a request.
type IdentityService interface {
	Resolve(ctx context.Context, req identity.Request) (string, error)
}

// CartService is the cart-line ledger surface.
type CartService interface {
	Add(ctx context.Context, customerKey, productID string, quantity int) (*domain.CartLine, error)
	Update(ctx context.Context, customerKey, lineID string, quantity int) (*domain.CartLine, error)
	Remove(ctx context.Context, customerKey, lineID string) error
	List(ctx context.Context, customerKey string) ([]domain.CartLine, decimal.Decimal, error)
}

// OrderService is the checkout and order-history surface.
type OrderService interface {
	OpenCheckout(ctx context.Context, customerKey string, shipping domain.ShippingDetails) (*domain.Order, error)
	CurrentDraft(ctx context.Context, customerKey string) (*domain.Order, error)
	PaymentSession(ctx context.Context, customerKey string) (string, error)
	Finalize(ctx context.Context, customerKey, paymentSessionID string) (string, error)
	List(ctx context.Context, customerKey string) ([]domain.Order, error)
	Get(ctx context.Context, customerKey, orderID string) (*domain.Order, error)
}

// ProductCatalog is the read-only catalog lookup surface.
type ProductCatalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Deps bundles the services the router depends on.
type Deps struct {
	IdentitySvc IdentityService
	CartSvc     CartService
	OrderSvc    OrderService
	Products    ProductCatalog
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), metricsMiddleware(), corsMiddleware(corsOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/products", listProductsHandler(deps.Products))
	router.GET("/products/:id", getProductHandler(deps.Products))

	shop := router.Group("/", identityMiddleware(deps.IdentitySvc))
	shop.GET("/cart", listCartHandler(deps.CartSvc))
	shop.POST("/cart/lines", addCartLineHandler(deps.CartSvc))
	shop.PATCH("/cart/lines/:id", updateCartLineHandler(deps.CartSvc))
	shop.DELETE("/cart/lines/:id", removeCartLineHandler(deps.CartSvc))

	shop.POST("/checkout", openCheckoutHandler(deps.OrderSvc))
	shop.GET("/checkout/draft", currentDraftHandler(deps.OrderSvc))
	shop.POST("/checkout/payment", paymentSessionHandler(deps.OrderSvc))
	shop.POST("/checkout/confirm", confirmCheckoutHandler(deps.OrderSvc))

	shop.GET("/orders", listOrdersHandler(deps.OrderSvc))
	shop.GET("/orders/:id", getOrderHandler(deps.OrderSvc))

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowCredentials = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, principalHeader)
	if len(origins) == 0 {
		cfg.AllowCredentials = false
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
