package analysis

// Level is one retracement or extension level: a labeled price computed by
// linear interpolation between a range's min and max at a fixed ratio.
type Level struct {
	Label string
	Price float64
}

var retracementRatios = []struct {
	label string
	ratio float64
}{
	{"0%", 0},
	{"23.6%", 0.236},
	{"38.2%", 0.382},
	{"50%", 0.5},
	{"61.8%", 0.618},
	{"78.6%", 0.786},
	{"100%", 1.0},
}

var extensionRatios = []struct {
	label string
	ratio float64
}{
	{"127.2%", 1.272},
	{"161.8%", 1.618},
	{"261.8%", 2.618},
}

// RetracementLevels computes the seven Fibonacci retracement levels for the
// given price range, ordered from 0% (= maxPrice) to 100% (= minPrice).
// A zero range collapses all levels to the same price; that is degenerate but
// not an error.
func RetracementLevels(minPrice, maxPrice float64) []Level {
	diff := maxPrice - minPrice
	levels := make([]Level, len(retracementRatios))
	for i, r := range retracementRatios {
		levels[i] = Level{Label: r.label, Price: maxPrice - r.ratio*diff}
	}
	return levels
}

// ExtensionLevels computes deep-dump extension levels below minPrice, used
// when price has broken the historical range to the downside.
func ExtensionLevels(minPrice, maxPrice float64) []Level {
	diff := maxPrice - minPrice
	levels := make([]Level, len(extensionRatios))
	for i, r := range extensionRatios {
		levels[i] = Level{Label: r.label, Price: minPrice - r.ratio*diff}
	}
	return levels
}
