package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
)

// DensitySeries is one labeled sample set drawn as a smoothed density curve.
type DensitySeries struct {
	Name   string
	Values []float64
}

const densityGridPoints = 200

// KDE evaluates a gaussian kernel density estimate over an evenly spaced
// grid of points on [min, max]. Bandwidth follows Silverman's rule of
// thumb: 0.9 * min(sd, IQR/1.34) * n^(-1/5).
func KDE(values []float64, min, max float64, points int) (xs, ys []float64) {
	xs = make([]float64, points)
	ys = make([]float64, points)
	step := (max - min) / float64(points-1)
	for i := range xs {
		xs[i] = min + float64(i)*step
	}
	n := len(values)
	if n == 0 {
		return xs, ys
	}

	h := silvermanBandwidth(values)
	if h <= 0 {
		h = step
	}

	norm := 1 / (float64(n) * h * math.Sqrt(2*math.Pi))
	for i, x := range xs {
		sum := 0.0
		for _, v := range values {
			u := (x - v) / h
			sum += math.Exp(-0.5 * u * u)
		}
		ys[i] = sum * norm
	}
	return xs, ys
}

func silvermanBandwidth(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	sd := math.Sqrt(ss / float64(n-1))

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	iqr := quantile(sorted, 0.75) - quantile(sorted, 0.25)

	spread := sd
	if scaled := iqr / 1.34; scaled > 0 && scaled < spread {
		spread = scaled
	}
	return 0.9 * spread * math.Pow(float64(n), -0.2)
}

// quantile interpolates the q-th quantile of a sorted sample.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// DensityOverlay renders every series as a translucent filled density
// curve on a single full-size canvas with a legend.
func DensityOverlay(title string, series []DensitySeries, min, max float64, theme Theme) (image.Image, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("density overlay: no series to draw")
	}

	chartSeries := make([]chart.Series, 0, len(series))
	for i, s := range series {
		xs, ys := KDE(s.Values, min, max, densityGridPoints)
		color := theme.seriesColor(i)
		chartSeries = append(chartSeries, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2.0,
				FillColor:   color.WithAlpha(70),
			},
		})
	}

	axisStyle := chart.Style{
		StrokeColor: theme.GridColor,
		FontSize:    theme.TickFontSize, FontColor: theme.Foreground,
	}
	gridStyle := chart.Style{
		StrokeColor: theme.GridColor,
		StrokeWidth: theme.GridStrokeWidth,
	}

	ch := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize: theme.TitleFontSize, FontColor: theme.Foreground,
		},
		Width:  CanvasWidth,
		Height: CanvasHeight,
		DPI:    CanvasDPI,
		Background: chart.Style{
			FillColor: theme.Background,
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: theme.Surface},
		XAxis: chart.XAxis{
			Style: axisStyle,
			Range: &chart.ContinuousRange{Min: min, Max: max},
		},
		YAxis: chart.YAxis{
			Style: axisStyle,
		},
		Series: chartSeries,
	}
	if theme.ShowYGrid {
		ch.YAxis.GridMajorStyle = gridStyle
	}
	if theme.ShowXGrid {
		ch.XAxis.GridMajorStyle = gridStyle
	}
	if theme.LegendVisible {
		ch.Elements = []chart.Renderable{
			chart.Legend(&ch, chart.Style{
				FillColor:   theme.Surface,
				StrokeColor: theme.GridColor,
				FontSize:    theme.AxisFontSize, FontColor: theme.Foreground,
			}),
		}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render density overlay: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode rendered overlay: %w", err)
	}
	return img, nil
}
