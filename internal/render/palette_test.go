package render

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		expect  Band
	}{
		{"negative", -1, Low},
		{"idle", 0, Low},
		{"just below medium", 49.99, Low},
		{"medium boundary", 50, Medium},
		{"medium mid", 65, Medium},
		{"just below high", 79.99, Medium},
		{"high boundary", 80, High},
		{"full", 100, High},
		{"jitter above full", 100.4, High},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Classify(tt.percent))
		})
	}
}

func TestBandString(t *testing.T) {
	assert.Equal(t, "low", Low.String())
	assert.Equal(t, "medium", Medium.String())
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "band(7)", Band(7).String())
}

func TestFilledCells(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		length  int
		expect  int
	}{
		{"empty", 0, 10, 0},
		{"half", 50, 10, 5},
		{"floors", 99.9, 10, 9},
		{"floors wide bar", 33.3, 30, 9},
		{"full", 100, 10, 10},
		{"over 100 clamps", 105, 10, 10},
		{"negative clamps", -5, 10, 0},
		{"zero length", 50, 0, 0},
		{"NaN", math.NaN(), 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilledCells(tt.percent, tt.length)
			assert.Equal(t, tt.expect, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, max(tt.length, 0))
		})
	}
}

func TestFilledCellsProperty(t *testing.T) {
	for _, length := range []int{1, 10, 30} {
		for p := 0.0; p <= 100; p += 0.5 {
			got := FilledCells(p, length)
			assert.Equal(t, int(math.Floor(p/100*float64(length))), got, "p=%v length=%d", p, length)
		}
	}
}

func TestBarNoColor(t *testing.T) {
	pal := NoColor()

	assert.Equal(t, "[####      ]  40.00%", pal.Bar(40, 10))
	assert.Equal(t, "[          ]   0.00%", pal.Bar(0, 10))
	assert.Equal(t, "[##########] 100.00%", pal.Bar(100, 10))
	assert.Equal(t, "[##########] 100.70%", pal.Bar(100.7, 10))
	assert.Equal(t, "[]  50.00%", pal.Bar(50, 0))
}

func TestBarColored(t *testing.T) {
	pal := DefaultPalette()

	tests := []struct {
		percent float64
		start   string
	}{
		{10, pal.Low},
		{60, pal.Medium},
		{90, pal.High},
	}

	for _, tt := range tests {
		bar := pal.Bar(tt.percent, 30)
		assert.True(t, strings.HasPrefix(bar, tt.start))
		assert.True(t, strings.HasSuffix(bar, pal.Reset))

		plain := NoColor().Bar(tt.percent, 30)
		assert.Equal(t, len(plain), len(bar)-pal.MarkerOverhead(Classify(tt.percent)))
		assert.Equal(t, len(plain), VisibleWidth(bar))
	}
}

func TestMarkerOverhead(t *testing.T) {
	assert.Equal(t, 11, DefaultPalette().MarkerOverhead(High))
	assert.Equal(t, 0, NoColor().MarkerOverhead(Medium))
}

func TestPaletteHelpers(t *testing.T) {
	pal := DefaultPalette()

	assert.Equal(t, "\033[1;33mwarm\033[0m", pal.Paint(Medium, "warm"))
	assert.Equal(t, "\033[1;34mhead\033[0m", pal.Heading("head"))
	assert.Equal(t, "\033[1;35m=== Disk Usage ===\033[0m", pal.SectionTitle("Disk Usage"))
	assert.Equal(t, "=== Disk Usage ===", NoColor().SectionTitle("Disk Usage"))
}
