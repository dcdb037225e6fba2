package repository

import (
	"log"

	"github.com/dewebdes/antra/server/internal/model"

	"gorm.io/gorm"
)

type SignalRepository interface {
	GetLatestSignals(symbol, status string, limit int) []model.Signal
	GetLatestSignalPerSymbol(limit int) []model.Signal
	GetSignalCountGroupByStatus() map[string]int
	GetCandleCount(symbol string) int64
}

type gormSignalRepository struct {
	db *gorm.DB
}

func NewGormSignalRepository(db *gorm.DB) SignalRepository {
	return &gormSignalRepository{db: db}
}

// GetLatestSignals returns the most recent snapshots, newest first, filtered
// by symbol and/or status when given.
func (gsr *gormSignalRepository) GetLatestSignals(symbol, status string, limit int) []model.Signal {
	query := gsr.db.Model(&model.Signal{})
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var signals []model.Signal
	if err := query.Order("generated_at desc").Limit(limit).Find(&signals).Error; err != nil {
		log.Printf("Error for query: %v", err)
		return []model.Signal{}
	}
	return signals
}

// GetLatestSignalPerSymbol returns the single newest snapshot of each symbol.
func (gsr *gormSignalRepository) GetLatestSignalPerSymbol(limit int) []model.Signal {
	subQuery := gsr.db.Model(&model.Signal{}).
		Select("*, ROW_NUMBER() OVER (PARTITION BY symbol ORDER BY generated_at DESC) as rn")

	var signals []model.Signal
	err := gsr.db.Table("(?) as ranked_signals", subQuery).
		Where("rn = 1").
		Order("symbol").
		Limit(limit).
		Find(&signals).Error
	if err != nil {
		log.Printf("Error for query: %v", err)
		return []model.Signal{}
	}
	return signals
}

func (gsr *gormSignalRepository) GetSignalCountGroupByStatus() map[string]int {
	type statusCount struct {
		Status string
		Count  int
	}
	var rows []statusCount
	err := gsr.db.Model(&model.Signal{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error for query: %v", err)
		return make(map[string]int)
	}

	result := make(map[string]int, len(rows))
	for _, r := range rows {
		result[r.Status] = r.Count
	}
	return result
}

func (gsr *gormSignalRepository) GetCandleCount(symbol string) int64 {
	query := gsr.db.Model(&model.Candle{})
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("Error for query: %v", err)
		return 0
	}
	return count
}
