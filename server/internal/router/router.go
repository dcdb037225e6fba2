package router

import (
	"github.com/dewebdes/antra/server/internal/handler"

	"github.com/gin-gonic/gin"
)

type Config struct {
	SignalHandler *handler.SignalHandler
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1/")
	registerSignalRoutes(api, cfg.SignalHandler)

	return router
}
