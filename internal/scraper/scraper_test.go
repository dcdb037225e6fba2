package scraper

import (
	"reflect"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID("coinex", "BTC/USDT", "5min", "1700000000")
	b := GenerateID("coinex", "BTC/USDT", "5min", "1700000000")
	c := GenerateID("coinex", "BTC/USDT", "5min", "1700000300")

	if a != b {
		t.Errorf("same inputs produced different IDs: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different inputs produced the same ID: %s", a)
	}
	if len(a) != 40 {
		t.Errorf("expected 40-char sha1 hex, got %d chars", len(a))
	}
}

func TestChunkSlice(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{"even split", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"uneven split", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"size larger than slice", []int{1, 2}, 10, [][]int{{1, 2}}},
		{"empty slice", nil, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkSlice(tt.items, tt.size)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ChunkSlice(%v, %d) = %v, want %v", tt.items, tt.size, got, tt.want)
			}
		})
	}
}

func TestChunkSlicePanicsOnZeroSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for size 0")
		}
	}()
	ChunkSlice([]int{1}, 0)
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BTCUSDT", "BTC/USDT"},
		{"ethusdt", "ETH/USDT"},
		{"SOLBTC", "SOL/BTC"},
		{"XAUTUSDC", "XAUT/USDC"},
		{"USDT", "USDT"},
		{"WEIRD", "WEIRD"},
	}

	for _, tt := range tests {
		if got := NormalizeSymbol(tt.in); got != tt.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuoteCurrency(t *testing.T) {
	if got := QuoteCurrency("BTC/USDT"); got != "USDT" {
		t.Errorf("QuoteCurrency(BTC/USDT) = %q, want USDT", got)
	}
	if got := QuoteCurrency("BTCUSDT"); got != "" {
		t.Errorf("QuoteCurrency(BTCUSDT) = %q, want empty", got)
	}
}

func TestUnixToRFC3339(t *testing.T) {
	if got := UnixToRFC3339(0); got != "1970-01-01T00:00:00Z" {
		t.Errorf("UnixToRFC3339(0) = %q", got)
	}
}
