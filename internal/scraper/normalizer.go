package scraper

import "strings"

// quoteSuffixes lists the quote currencies we recognize. CoinEx endpoints
// report markets as one concatenated token ("BTCUSDT").
var quoteSuffixes = []string{"USDT", "USDC", "BTC", "ETH"}

// NormalizeSymbol converts an exchange market name to our standard format.
// Example: "BTCUSDT" -> "BTC/USDT". Returns the original symbol when no
// known quote suffix matches.
func NormalizeSymbol(symbol string) string {
	upper := strings.ToUpper(symbol)
	for _, q := range quoteSuffixes {
		if strings.HasSuffix(upper, q) && len(upper) > len(q) {
			return upper[:len(upper)-len(q)] + "/" + q
		}
	}
	return upper
}

// QuoteCurrency returns the quote side of a normalized symbol, or "" when
// the symbol is not in base/quote form.
func QuoteCurrency(symbol string) string {
	i := strings.IndexByte(symbol, '/')
	if i < 0 {
		return ""
	}
	return symbol[i+1:]
}
