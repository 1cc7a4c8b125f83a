package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"
	"restaurant-ordering/internal/service/cart"
	"restaurant-ordering/internal/service/feedback"
	"restaurant-ordering/internal/service/menu"
	"restaurant-ordering/internal/service/order"
	"restaurant-ordering/internal/service/promotion"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type menuService interface {
	Catalogue(ctx context.Context) (*menu.Catalogue, error)
	Items(ctx context.Context) ([]menu.ItemView, error)
	Item(ctx context.Context, id string) (*menu.ItemView, error)
	Orderable(ctx context.Context, id string) (*domain.MenuItem, error)
	Categories(ctx context.Context) ([]domain.MenuCategory, error)
	CreateItem(ctx context.Context, in menu.ItemInput) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, id string, in menu.ItemInput) (*domain.MenuItem, error)
	DeleteItem(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, in menu.CategoryInput) (*domain.MenuCategory, error)
	UpdateCategory(ctx context.Context, id string, in menu.CategoryInput) (*domain.MenuCategory, error)
	DeleteCategory(ctx context.Context, id string) error
}

type promotionService interface {
	List(ctx context.Context) ([]domain.Promotion, error)
	Active(ctx context.Context) ([]domain.Promotion, error)
	Create(ctx context.Context, in promotion.Input) (*domain.Promotion, error)
	Update(ctx context.Context, id string, in promotion.Input) (*domain.Promotion, error)
	Delete(ctx context.Context, id string) error
}

type cartManager interface {
	With(ctx context.Context, session string, fn func(*cart.Store) error) error
}

type sessionService interface {
	Issue(ctx context.Context) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	TTL() time.Duration
}

type orderService interface {
	Submit(ctx context.Context, c *cart.Store, in order.CheckoutInput) (*order.Receipt, error)
}

type feedbackService interface {
	Submit(ctx context.Context, in feedback.Input) (*domain.Feedback, error)
	List(ctx context.Context) ([]domain.Feedback, error)
}

type imageStore interface {
	URLOrPlaceholder(ctx context.Context, bucket, name string, r io.Reader) string
}

type Deps struct {
	Menu       menuService
	Promotions promotionService
	Carts      cartManager
	Sessions   sessionService
	Orders     orderService
	Feedback   feedbackService
	Images     imageStore
	// Ping checks the primary store for /readyz.
	Ping func(ctx context.Context) error
}

type Options struct {
	CORSAllowedOrigins []string
	AdminUser          string
	// AdminPassword enables basic auth on /admin when set.
	AdminPassword string
	// UploadDir is served under /uploads when set.
	UploadDir string
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.Menu == nil || deps.Promotions == nil || deps.Carts == nil || deps.Sessions == nil || deps.Orders == nil || deps.Feedback == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}
	logger = logging.OrNop(logger)

	router := gin.New()
	router.Use(accessLog(logger), gin.Recovery())
	if len(opts.CORSAllowedOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.CORSAllowedOrigins
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", sessionHeader)
		cfg.ExposeHeaders = []string{sessionHeader}
		cfg.AllowCredentials = true
		router.Use(cors.New(cfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ping))
	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	h := &handlers{deps: deps, logger: logger}

	router.GET("/menu", h.catalogue)
	router.GET("/menu/items", h.listItems)
	router.GET("/menu/items/:id", h.getItem)
	router.GET("/categories", h.listCategories)
	router.GET("/promotions", h.activePromotions)
	router.POST("/feedback", h.submitFeedback)

	router.POST("/cart/session", h.newSession)
	carts := router.Group("/cart", h.cartSession)
	carts.GET("", h.getCart)
	carts.DELETE("", h.clearCart)
	carts.POST("/items", h.addCartItem)
	carts.PUT("/items/:itemId", h.updateCartItem)
	carts.DELETE("/items/:itemId", h.removeCartItem)
	router.POST("/orders", h.cartSession, h.submitOrder)

	admin := router.Group("/admin")
	if opts.AdminPassword != "" {
		admin.Use(gin.BasicAuth(gin.Accounts{opts.AdminUser: opts.AdminPassword}))
	} else {
		logger.Warn("admin routes are not protected, set ADMIN_PASSWORD")
	}
	admin.GET("/menu-items", h.listItems)
	admin.POST("/menu-items", h.createItem)
	admin.PUT("/menu-items/:id", h.updateItem)
	admin.DELETE("/menu-items/:id", h.deleteItem)
	admin.GET("/categories", h.listCategories)
	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)
	admin.GET("/promotions", h.listPromotions)
	admin.POST("/promotions", h.createPromotion)
	admin.PUT("/promotions/:id", h.updatePromotion)
	admin.DELETE("/promotions/:id", h.deletePromotion)
	admin.GET("/feedback", h.listFeedback)
	if deps.Images != nil {
		admin.POST("/uploads/:bucket", h.uploadImage)
	}

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// writeError maps service errors onto status codes. Unknown errors are
// logged and reported with a generic message.
func (h *handlers) writeError(c *gin.Context, err error) {
	var v *domain.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": v.Reason})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, context.Canceled):
		c.Status(499)
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
