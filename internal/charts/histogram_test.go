package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinCounts(t *testing.T) {
	values := []float64{0, 0.25, 0.49, 0.5, 1.2, 19.9, 20.0, 20.5, -1}
	counts := BinCounts(values, 0.5, 20)

	require.Len(t, counts, 40)
	assert.Equal(t, 3, counts[0], "[0, 0.5) bin")
	assert.Equal(t, 1, counts[1], "bin boundaries close on the left")
	assert.Equal(t, 1, counts[2])
	assert.Equal(t, 2, counts[39], "a value exactly at max lands in the last bin")

	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 7, total, "out-of-range values are dropped")
}

func TestBinCountsEmpty(t *testing.T) {
	counts := BinCounts(nil, 0.5, 20)
	require.Len(t, counts, 40)
	for _, c := range counts {
		assert.Zero(t, c)
	}
}

func TestFacetedHistogram(t *testing.T) {
	facets := []HistogramFacet{
		{Title: "Round 0", Values: []float64{0.5, 0.7, 1.2, 3.0}},
		{Title: "Round 1", Values: []float64{1.5, 1.6}},
		{Title: "Round 2", Values: []float64{2.5}},
		{Title: "8+", Values: []float64{0.1, 0.2, 0.3}},
	}

	img, err := FacetedHistogram(facets, 0.5, 20, DarkTheme(), FacetDefaults())
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, CanvasWidth, bounds.Dx())
	assert.Equal(t, CanvasHeight, bounds.Dy())
}

func TestFacetedHistogramErrors(t *testing.T) {
	t.Run("no facets", func(t *testing.T) {
		_, err := FacetedHistogram(nil, 0.5, 20, DarkTheme(), FacetDefaults())
		assert.Error(t, err)
	})

	t.Run("all facets empty", func(t *testing.T) {
		facets := []HistogramFacet{{Title: "Round 0"}}
		_, err := FacetedHistogram(facets, 0.5, 20, DarkTheme(), FacetDefaults())
		assert.Error(t, err)
	})
}
