// Package charts renders the report figures with wcharczuk/go-chart and
// composites multi-panel layouts onto a single canvas.
package charts

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Canvas geometry shared by every figure: a 1920x1080 pixel canvas
// rendered at 300 DPI (a 6.4x3.6 inch plot).
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
	CanvasDPI    = 300
)

// Theme is a named chart appearance preset: colors, font sizes per text
// role, gridline weights, and legend placement. It carries no data
// semantics.
type Theme struct {
	Background drawing.Color // full-canvas fill
	Surface    drawing.Color // plot area fill
	Foreground drawing.Color // default text
	GridColor  drawing.Color

	TitleFontSize float64 // points, pre-DPI scaling
	AxisFontSize  float64
	TickFontSize  float64
	StripFontSize float64 // facet strip labels

	GridStrokeWidth float64
	ShowXGrid       bool
	ShowYGrid       bool

	LegendVisible bool

	// Series colors, assigned to series in order.
	Palette []drawing.Color
}

// FacetOverrides adjusts the theme for small-multiple panels.
type FacetOverrides struct {
	HideYTickLabels    bool
	HorizontalGridOnly bool
	PlainStripLabel    bool // no box behind the strip label
}

// DarkTheme returns the shared dark preset used by all report figures.
func DarkTheme() Theme {
	return Theme{
		Background: drawing.ColorFromHex("282a36"),
		Surface:    drawing.ColorFromHex("2f3240"),
		Foreground: drawing.ColorFromHex("f8f8f2"),
		GridColor:  drawing.ColorFromHex("44475a"),

		TitleFontSize: 4.0,
		AxisFontSize:  3.2,
		TickFontSize:  2.4,
		StripFontSize: 3.0,

		GridStrokeWidth: 1.0,
		ShowXGrid:       false,
		ShowYGrid:       true,

		LegendVisible: true,

		Palette: []drawing.Color{
			drawing.ColorFromHex("8be9fd"),
			drawing.ColorFromHex("50fa7b"),
			drawing.ColorFromHex("ff79c6"),
			drawing.ColorFromHex("ffb86c"),
			drawing.ColorFromHex("bd93f9"),
		},
	}
}

// FacetDefaults returns the overrides Chart A applies on top of the dark
// theme: y tick labels off, horizontal gridlines only, plain strip labels.
func FacetDefaults() FacetOverrides {
	return FacetOverrides{
		HideYTickLabels:    true,
		HorizontalGridOnly: true,
		PlainStripLabel:    true,
	}
}

// seriesColor returns the palette color for the i-th series.
func (t Theme) seriesColor(i int) drawing.Color {
	if len(t.Palette) == 0 {
		return t.Foreground
	}
	return t.Palette[i%len(t.Palette)]
}
