package router

import (
	"github.com/dewebdes/antra/server/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerSignalRoutes(router *gin.RouterGroup, signalHandler *handler.SignalHandler) {
	signals := router.Group("/signals")
	{
		signals.GET("/latest", signalHandler.GetLatest)
		signals.GET("/board", signalHandler.GetBoard)
		signals.GET("/count", signalHandler.GetCount)
	}
}
