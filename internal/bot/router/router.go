// Package router provides shopbot service routing.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/shopbot/internal/bot/handler"
)

// Register registers the shopbot routes.
func Register(engine *gin.Engine, chatHandler *handler.ChatHandler) {
	logger.Info("Registering chat routes...")

	engine.GET("/healthz", chatHandler.Healthz)

	v1 := engine.Group("/v1")
	{
		v1.POST("/chat", chatHandler.Chat)
		v1.GET("/stats", chatHandler.Stats)
	}

	logger.Info("HTTP routes registered")
}
