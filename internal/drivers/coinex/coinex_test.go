package coinex

import (
	"encoding/json"
	"testing"
)

func TestDecodeKlineRows(t *testing.T) {
	// Timestamps are numbers, prices and volumes are numeric strings.
	payload := json.RawMessage(`[
		[1700000000, "1.00", "1.01", "1.02", "0.99", "150.5", "151.2"],
		[1700000300, "1.01", "1.03", "1.04", "1.00", "98", "99.5"]
	]`)

	rows, err := decodeKlineRows(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first[0] != 1700000000 {
		t.Errorf("openTime = %v, want 1700000000", first[0])
	}
	if first[1] != 1.00 || first[2] != 1.01 || first[3] != 1.02 || first[4] != 0.99 {
		t.Errorf("price cells wrong: %v", first[:5])
	}
	if first[6] != 151.2 {
		t.Errorf("quote volume = %v, want 151.2", first[6])
	}
}

func TestDecodeKlineRowsRejectsGarbage(t *testing.T) {
	payload := json.RawMessage(`[[1700000000, "not-a-number"]]`)
	if _, err := decodeKlineRows(payload); err == nil {
		t.Error("expected error for non-numeric cell")
	}
}

func TestBuildTrade(t *testing.T) {
	deal := wsDeal{
		ID:     42,
		Type:   "buy",
		Price:  "64250.5",
		Amount: "0.013",
		Time:   1700000000.25,
	}

	trade, err := buildTrade("BTC/USDT", deal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trade.Exchange != ExchangeName {
		t.Errorf("exchange = %q", trade.Exchange)
	}
	if trade.Symbol != "BTC/USDT" {
		t.Errorf("symbol = %q", trade.Symbol)
	}
	if trade.Price != 64250.5 || trade.Volume != 0.013 {
		t.Errorf("price/volume = %v/%v", trade.Price, trade.Volume)
	}
	if trade.Side != "buy" {
		t.Errorf("side = %q", trade.Side)
	}
	if trade.Time != "2023-11-14T22:13:20Z" {
		t.Errorf("time = %q", trade.Time)
	}
	if len(trade.ID) != 40 {
		t.Errorf("expected sha1 hex ID, got %q", trade.ID)
	}
}

func TestBuildTradeRejectsBadPrice(t *testing.T) {
	if _, err := buildTrade("BTC/USDT", wsDeal{Price: "x", Amount: "1"}); err == nil {
		t.Error("expected error for bad price")
	}
}
