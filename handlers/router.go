package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"catalog-service/metrics"
)

const ServiceName = "catalog-service"

type RouterConfig struct {
	Logger         *zap.Logger
	Products       *ProductHandler
	Orders         *OrderHandler
	AllowedOrigins []string
}

// NewRouter registers every route and the shared middleware chain.
func NewRouter(cfg RouterConfig) *gin.Engine {
	// Request bodies are stored verbatim, so numbers must not pass through float64.
	binding.EnableDecoderUseNumber = true

	router := gin.New()
	router.Use(ginzap.Ginzap(cfg.Logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(cfg.Logger, true))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	router.Use(otelgin.Middleware(ServiceName))
	router.Use(metrics.Middleware())

	// Products
	router.GET("/search", cfg.Products.Search)
	router.POST("/products", cfg.Products.CreateProduct)
	router.PUT("/products/update-price", cfg.Products.UpdatePrice)
	router.DELETE("/products/delete", cfg.Products.DeleteProduct)

	// Orders
	router.POST("/order", cfg.Orders.CreateOrder)
	router.GET("/status", cfg.Orders.ListOrders)
	router.DELETE("/order/:id", cfg.Orders.DeleteOrder)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
