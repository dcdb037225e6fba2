package service

import (
	"github.com/dewebdes/antra/server/internal/model"
	"github.com/dewebdes/antra/server/internal/repository"
)

const defaultLimit = 10

var validStatuses = map[string]bool{
	"no-pump":           true,
	"consolidating":     true,
	"retracing":         true,
	"impulse-confirmed": true,
}

type SignalsService struct {
	repo repository.SignalRepository
}

func NewSignalsService(repo repository.SignalRepository) *SignalsService {
	return &SignalsService{
		repo: repo,
	}
}

// ValidStatus reports whether status names a known pulse state.
func (ss *SignalsService) ValidStatus(status string) bool {
	return validStatuses[status]
}

func (ss *SignalsService) GetLatestSignals(symbol, status string) []model.Signal {
	return ss.repo.GetLatestSignals(symbol, status, defaultLimit)
}

// GetScreenerBoard returns the newest snapshot per symbol, the live market
// overview view.
func (ss *SignalsService) GetScreenerBoard() []model.Signal {
	return ss.repo.GetLatestSignalPerSymbol(500)
}

func (ss *SignalsService) GetCountPerStatus() map[string]int {
	return ss.repo.GetSignalCountGroupByStatus()
}

func (ss *SignalsService) GetCandleCount(symbol string) int64 {
	return ss.repo.GetCandleCount(symbol)
}
