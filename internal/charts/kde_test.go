package charts

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDE(t *testing.T) {
	values := []float64{1.0, 1.1, 0.9, 1.05, 0.95, 2.5, 2.4, 2.6}
	xs, ys := KDE(values, 0, 5, 200)

	require.Len(t, xs, 200)
	require.Len(t, ys, 200)
	assert.Equal(t, 0.0, xs[0])
	assert.Equal(t, 5.0, xs[199])

	// Density is non-negative everywhere and peaks near the tight cluster
	// around 1, not near the sparse tail.
	maxIdx := 0
	for i, y := range ys {
		assert.GreaterOrEqual(t, y, 0.0)
		if y > ys[maxIdx] {
			maxIdx = i
		}
	}
	assert.InDelta(t, 1.0, xs[maxIdx], 0.5)
}

func TestKDEEmpty(t *testing.T) {
	xs, ys := KDE(nil, 0, 5, 50)
	require.Len(t, xs, 50)
	for _, y := range ys {
		assert.Zero(t, y)
	}
}

func TestKDESingleValue(t *testing.T) {
	// One sample has no spread; the bandwidth falls back to the grid step
	// instead of dividing by zero.
	xs, ys := KDE([]float64{2.0}, 0, 5, 100)
	maxIdx := 0
	for i, y := range ys {
		if y > ys[maxIdx] {
			maxIdx = i
		}
	}
	assert.InDelta(t, 2.0, xs[maxIdx], 0.1)
}

func TestSilvermanBandwidth(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	h := silvermanBandwidth(values)
	assert.Greater(t, h, 0.0)

	// Tighter data gets a narrower bandwidth.
	tight := []float64{1, 1.01, 1.02, 1.03, 1.04, 1.05, 1.06, 1.07, 1.08, 1.09}
	assert.Less(t, silvermanBandwidth(tight), h)
}

func TestDensityOverlay(t *testing.T) {
	series := []DensitySeries{
		{Name: "Juke Juice", Values: []float64{0.5, 0.6, 0.7, 1.2}},
		{Name: "Rolling Bomb", Values: []float64{1.5, 1.6, 2.0}},
		{Name: "TagPro", Values: []float64{3.0, 3.1}},
	}

	img, err := DensityOverlay("Early pickup delay by powerup", series, 0, 5, DarkTheme())
	require.NoError(t, err)
	assert.Equal(t, CanvasWidth, img.Bounds().Dx())
	assert.Equal(t, CanvasHeight, img.Bounds().Dy())
}

func TestDensityOverlayNoSeries(t *testing.T) {
	_, err := DensityOverlay("empty", nil, 0, 5, DarkTheme())
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	img, err := DensityOverlay("t", []DensitySeries{
		{Name: "a", Values: []float64{1, 2, 3}},
	}, 0, 5, DarkTheme())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "charts", "out.png")
	require.NoError(t, WritePNG(img, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, CanvasWidth, cfg.Width)
}
