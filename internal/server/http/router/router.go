package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/campus-canteen/canteen/internal/config"
	"github.com/campus-canteen/canteen/internal/server/http/handlers"
	"github.com/campus-canteen/canteen/internal/server/http/middleware"
	"github.com/campus-canteen/canteen/internal/storage/objectstore"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CanteenFacade, store objectstore.Store, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	menuHandler := handlers.NewMenuHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	// Proof images are served from wherever the object store keeps them.
	engine.Static("/uploads", store.Dir())

	engine.GET("/menu", menuHandler.List)
	engine.POST("/create-checkout-session", checkoutHandler.Create)
	engine.GET("/verify-payment/:session_id", orderHandler.Verify)

	orders := engine.Group("/orders")
	orders.GET("/:session_id", orderHandler.Get)
	orders.GET("/:session_id/qr", orderHandler.QR)
	orders.POST("/:session_id/proof", orderHandler.UploadProof)

	admin := engine.Group("/api/admin")
	admin.POST("/login", adminHandler.Login)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AdminRequired(facade))
	adminAuth.GET("/orders/:token", adminHandler.Lookup)
	adminAuth.POST("/orders/:token/complete", adminHandler.Complete)
	adminAuth.GET("/completed", adminHandler.Completed)
	adminAuth.POST("/menu", menuHandler.Ingest)

	return engine
}
