package analysis

import (
	"math"
	"testing"
)

func TestRetracementLevelsMonotonic(t *testing.T) {
	levels := RetracementLevels(1.0, 2.0)

	if len(levels) != 7 {
		t.Fatalf("Expected 7 levels, got %d", len(levels))
	}
	if levels[0].Label != "0%" || levels[0].Price != 2.0 {
		t.Errorf("Expected 0%% level at max price 2.0, got %s=%g", levels[0].Label, levels[0].Price)
	}
	if levels[6].Label != "100%" || levels[6].Price != 1.0 {
		t.Errorf("Expected 100%% level at min price 1.0, got %s=%g", levels[6].Label, levels[6].Price)
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].Price >= levels[i-1].Price {
			t.Errorf("Levels not strictly decreasing at %s: %g >= %g",
				levels[i].Label, levels[i].Price, levels[i-1].Price)
		}
	}
}

func TestRetracementLevelsValues(t *testing.T) {
	levels := RetracementLevels(0.01, 0.03)

	// 61.8% level = max - 0.618 * range
	want := 0.03 - 0.618*0.02
	if math.Abs(levels[4].Price-want) > 1e-12 {
		t.Errorf("Expected 61.8%% level %g, got %g", want, levels[4].Price)
	}
}

func TestRetracementLevelsDegenerate(t *testing.T) {
	levels := RetracementLevels(1.5, 1.5)
	for _, l := range levels {
		if l.Price != 1.5 {
			t.Errorf("Expected all levels to collapse to 1.5, got %s=%g", l.Label, l.Price)
		}
	}
}

func TestExtensionLevels(t *testing.T) {
	levels := ExtensionLevels(1.0, 2.0)

	if len(levels) != 3 {
		t.Fatalf("Expected 3 extension levels, got %d", len(levels))
	}
	testCases := []struct {
		label string
		want  float64
	}{
		{"127.2%", 1.0 - 1.272},
		{"161.8%", 1.0 - 1.618},
		{"261.8%", 1.0 - 2.618},
	}
	for i, tc := range testCases {
		if levels[i].Label != tc.label {
			t.Errorf("Expected label %s, got %s", tc.label, levels[i].Label)
		}
		if math.Abs(levels[i].Price-tc.want) > 1e-12 {
			t.Errorf("Expected %s at %g, got %g", tc.label, tc.want, levels[i].Price)
		}
	}
}

func TestExtensionLevelsDegenerate(t *testing.T) {
	for _, l := range ExtensionLevels(2.0, 2.0) {
		if l.Price != 2.0 {
			t.Errorf("Expected degenerate extension at 2.0, got %s=%g", l.Label, l.Price)
		}
	}
}
