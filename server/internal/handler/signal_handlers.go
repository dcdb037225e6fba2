package handler

import (
	"net/http"

	"github.com/dewebdes/antra/server/internal/service"

	"github.com/gin-gonic/gin"
)

type SignalHandler struct {
	signalService *service.SignalsService
}

func NewSignalHandler(service *service.SignalsService) *SignalHandler {
	return &SignalHandler{
		signalService: service,
	}
}

// GetLatest returns recent snapshots, optionally filtered by
// ?symbol=BTC/USDT and ?status=impulse-confirmed.
func (h *SignalHandler) GetLatest(c *gin.Context) {
	symbol := c.Query("symbol")
	status := c.Query("status")

	if status != "" && !h.signalService.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	c.JSON(http.StatusOK, h.signalService.GetLatestSignals(symbol, status))
}

// GetBoard returns the newest snapshot per symbol.
func (h *SignalHandler) GetBoard(c *gin.Context) {
	c.JSON(http.StatusOK, h.signalService.GetScreenerBoard())
}

// GetCount returns signal counts per status, plus the candle count when a
// symbol is given.
func (h *SignalHandler) GetCount(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol != "" {
		c.JSON(http.StatusOK, gin.H{symbol: h.signalService.GetCandleCount(symbol)})
		return
	}
	c.JSON(http.StatusOK, h.signalService.GetCountPerStatus())
}
