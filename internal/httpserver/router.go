package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", sessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{
		catalog: deps.Catalog,
		carts:   deps.CartSvc,
		flows:   newFlowRegistry(),
		logger:  logger,
	}

	api := router.Group("/api", sessionMiddleware())
	{
		api.GET("/products", h.listProducts)
		api.POST("/products/more", h.loadMoreProducts)

		api.POST("/detail/open/:id", h.openDetail)
		api.GET("/detail", h.getDetail)
		api.POST("/detail/gallery", h.navigateGallery)
		api.POST("/detail/quantity", h.setQuantity)
		api.POST("/detail/cart", h.addDetailToCart)
		api.POST("/detail/buynow", h.buyNow)
		api.POST("/detail/reviews", h.submitReview)
		api.POST("/detail/close", h.closeDetail)

		api.GET("/cart", h.getCart)
		api.POST("/cart/items", h.addCartItem)
		api.PATCH("/cart/items", h.updateCartItem)
		api.DELETE("/cart/items", h.removeCartItem)
		api.POST("/cart/clear", h.clearCart)
		api.POST("/checkout", h.checkout)
	}

	return router
}
