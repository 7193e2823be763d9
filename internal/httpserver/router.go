package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	cartsvc "github.com/fullstackvinod/krishAlignUser/internal/service/cart"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type catalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Combos(ctx context.Context, categoryID string) ([]domain.Combo, error)
	Combo(ctx context.Context, id string) (*domain.Combo, error)
	Alternatives(ctx context.Context, ingredientID string) ([]domain.Ingredient, error)
}

type orderService interface {
	List(ctx context.Context, status string) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
}

type cartService interface {
	Open(ctx context.Context) cartsvc.View
	Get(ctx context.Context, sessionID string) (cartsvc.View, error)
	Update(ctx context.Context, sessionID string, in cartsvc.UpdateInput) (cartsvc.View, error)
	Close(ctx context.Context, sessionID string) error
}

// Deps are the services the router dispatches to.
type Deps struct {
	CatalogSvc     catalogService
	OrderSvc       orderService
	CartSvc        cartService
	AllowedOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db Pinger, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.CatalogSvc == nil || deps.OrderSvc == nil || deps.CartSvc == nil {
		return nil, errors.New("httpserver: catalog, order and cart services are required")
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(logger), recovery(logger), cors.New(corsConfig(deps.AllowedOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{
		catalog: deps.CatalogSvc,
		orders:  deps.OrderSvc,
		carts:   deps.CartSvc,
		logger:  logger,
	}

	router.GET("/categories", h.listCategories)
	router.GET("/combos", h.listCombos)
	router.GET("/combos/:comboId", h.getCombo)
	router.GET("/ingredients/:ingredientId/alternatives", h.listAlternatives)

	router.GET("/orders", h.listOrders)
	router.GET("/orders/:orderId", h.getOrder)

	router.POST("/carts", h.openCart)
	me := router.Group("/carts/me", cartSessionMiddleware(deps.CartSvc, logger))
	me.GET("", h.getCart)
	me.POST("", h.updateCart)
	me.DELETE("", h.closeCart)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", cartSessionHeader},
		ExposeHeaders: []string{cartSessionHeader},
		MaxAge:        12 * time.Hour,
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
