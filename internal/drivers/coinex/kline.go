package coinex

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dewebdes/antra/internal/analysis"
)

// Klines fetches the most recent count candles of the given interval and
// returns them as a validated series. The window end is the exchange clock,
// falling back to local time when the time endpoint fails.
func (c *Client) Klines(ctx context.Context, market string, interval time.Duration, count int) (analysis.Series, error) {
	end, err := c.ServerTime(ctx)
	if err != nil {
		c.logger.Debug("Server time unavailable, using local clock", "error", err)
		end = time.Now()
	}
	start := end.Add(-time.Duration(count) * interval)

	url := fmt.Sprintf(klineAPI, market, start.Unix(), end.Unix(), int(interval.Seconds()))
	data, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch klines %s: %w", market, err)
	}

	rows, err := decodeKlineRows(data)
	if err != nil {
		return nil, fmt.Errorf("decode klines %s: %w", market, err)
	}

	series, err := analysis.SeriesFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("klines %s: %w", market, err)
	}
	return series, nil
}

// decodeKlineRows parses the raw kline payload into float rows. CoinEx mixes
// plain numbers (timestamps) and numeric strings (prices, volumes) within the
// same array.
func decodeKlineRows(data json.RawMessage) ([][]float64, error) {
	var raw [][]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	rows := make([][]float64, 0, len(raw))
	for i, cells := range raw {
		row := make([]float64, len(cells))
		for j, cell := range cells {
			v, err := cellToFloat(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d: %w", i, j, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellToFloat(cell any) (float64, error) {
	switch v := cell.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", cell)
	}
}
