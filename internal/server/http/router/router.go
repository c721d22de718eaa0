package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/Aviraj0403/restro-back/internal/server/http/handlers"
	"github.com/Aviraj0403/restro-back/internal/server/http/middleware"
	"github.com/Aviraj0403/restro-back/internal/server/ws"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderingFacade, wsHandler *ws.Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	offerHandler := handlers.NewOfferHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)

	api := engine.Group("/api")
	api.POST("/user/register", authHandler.Register)
	api.POST("/user/login", authHandler.Login)
	api.GET("/offers/active", offerHandler.ListActive)
	api.GET("/offers/promocodes", offerHandler.ListPromoCodes)

	auth := api.Group("")
	auth.Use(middleware.AuthRequired(facade))
	auth.POST("/orders", orderHandler.Place)
	auth.GET("/orders", orderHandler.List)
	auth.GET("/orders/:id", orderHandler.Get)
	auth.POST("/orders/:id/cancel", orderHandler.Cancel)
	auth.GET("/cart", cartHandler.Get)
	auth.PUT("/cart", cartHandler.Save)
	auth.DELETE("/cart", cartHandler.Clear)
	auth.POST("/offers/validate", offerHandler.Validate)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.POST("/offers", offerHandler.Create)
	admin.GET("/offers", offerHandler.List)
	admin.GET("/offers/:id", offerHandler.Get)
	admin.PATCH("/offers/:id", offerHandler.Update)
	admin.DELETE("/offers/:id", offerHandler.Deactivate)
	admin.GET("/orders", orderHandler.ListAll)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.GET("/orders/stats/today", orderHandler.StatsToday)
	admin.GET("/orders/stats/total", orderHandler.StatsTotal)

	engine.GET("/ws", wsHandler.Handle)

	return engine
}
