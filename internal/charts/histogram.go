package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
)

// HistogramFacet is one panel of a faceted histogram: a label and the raw
// sample values binned inside the panel.
type HistogramFacet struct {
	Title  string
	Values []float64
}

// BinCounts buckets values into fixed-width bins over [0, max). A value
// exactly at max lands in the last bin; values outside [0, max] are
// dropped.
func BinCounts(values []float64, width, max float64) []int {
	n := int(math.Ceil(max / width))
	counts := make([]int, n)
	for _, v := range values {
		if v < 0 || v > max {
			continue
		}
		idx := int(v / width)
		if idx >= n {
			idx = n - 1
		}
		counts[idx]++
	}
	return counts
}

// FacetedHistogram renders one histogram panel per facet on a two-row
// grid sharing a common y range, and returns the composited canvas.
func FacetedHistogram(facets []HistogramFacet, binWidth, maxValue float64, theme Theme, overrides FacetOverrides) (image.Image, error) {
	if len(facets) == 0 {
		return nil, fmt.Errorf("faceted histogram: no facets to draw")
	}

	binned := make([][]int, len(facets))
	globalMax := 0
	for i, f := range facets {
		binned[i] = BinCounts(f.Values, binWidth, maxValue)
		for _, c := range binned[i] {
			if c > globalMax {
				globalMax = c
			}
		}
	}
	if globalMax == 0 {
		return nil, fmt.Errorf("faceted histogram: all facets empty")
	}

	const rows = 2
	cols := (len(facets) + rows - 1) / rows
	tileW := CanvasWidth / cols
	tileH := CanvasHeight / rows

	canvas := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(theme.Background), image.Point{}, draw.Src)

	for i, f := range facets {
		tile, err := renderHistogramTile(f.Title, binned[i], binWidth, globalMax, tileW, tileH, theme, overrides)
		if err != nil {
			return nil, fmt.Errorf("render facet %q: %w", f.Title, err)
		}
		row := i / cols
		col := i % cols
		origin := image.Pt(col*tileW, row*tileH)
		draw.Draw(canvas, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(tileW, tileH))}, tile, image.Point{}, draw.Over)
	}
	return canvas, nil
}

func renderHistogramTile(title string, counts []int, binWidth float64, yMax, width, height int, theme Theme, overrides FacetOverrides) (image.Image, error) {
	barStyle := chart.Style{
		FillColor:   theme.seriesColor(0),
		StrokeColor: theme.Background,
		StrokeWidth: 0.5,
	}

	// Label every tenth bin edge so the x axis stays readable at tile size.
	bars := make([]chart.Value, len(counts))
	for i, c := range counts {
		label := ""
		if i%10 == 0 {
			label = strconv.FormatFloat(float64(i)*binWidth, 'f', -1, 64)
		}
		bars[i] = chart.Value{Value: float64(c), Label: label, Style: barStyle}
	}

	barWidth := (width - 80) / len(counts)
	if barWidth < 1 {
		barWidth = 1
	}

	stripStyle := chart.Style{
		FontSize: theme.StripFontSize, FontColor: theme.Foreground,
	}
	if !overrides.PlainStripLabel {
		stripStyle.FillColor = theme.GridColor
	}

	yAxis := chart.YAxis{
		Style: chart.Style{
			StrokeColor: theme.GridColor,
			FontSize:    theme.TickFontSize, FontColor: theme.Foreground,
		},
		Range: &chart.ContinuousRange{Min: 0, Max: float64(yMax)},
	}
	if overrides.HideYTickLabels {
		yAxis.Style.Hidden = true
	}
	if theme.ShowYGrid {
		yAxis.GridMajorStyle = chart.Style{
			StrokeColor: theme.GridColor,
			StrokeWidth: theme.GridStrokeWidth,
		}
	}

	bc := chart.BarChart{
		Title:      title,
		TitleStyle: stripStyle,
		Width:      width,
		Height:     height,
		DPI:        CanvasDPI,
		Background: chart.Style{
			FillColor: theme.Background,
			Padding:   chart.Box{Top: 10, Left: 10, Right: 10, Bottom: 10},
		},
		Canvas:     chart.Style{FillColor: theme.Surface},
		BarWidth:   barWidth,
		BarSpacing: 1,
		XAxis: chart.Style{
			StrokeColor: theme.GridColor,
			FontSize:    theme.TickFontSize, FontColor: theme.Foreground,
		},
		YAxis: yAxis,
		Bars:  bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode rendered tile: %w", err)
	}
	return img, nil
}
