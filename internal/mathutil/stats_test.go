package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanAndStd(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5.0, Mean(values), 1e-9)
	assert.InDelta(t, 2.138, Std(values), 0.001)

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Std([]float64{3}))
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	assert.InDelta(t, 2.5, Median(values), 1e-9)
	assert.InDelta(t, 1.75, Quantile(values, 0.25), 1e-9)
	assert.InDelta(t, 3.25, Quantile(values, 0.75), 1e-9)
}

func TestNormCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormCDF(0), 1e-12)
	assert.InDelta(t, 0.8413, NormCDF(1), 0.0001)
	assert.InDelta(t, 0.0228, NormCDF(-2), 0.0001)
	// Symmetry
	assert.InDelta(t, 1.0, NormCDF(1.3)+NormCDF(-1.3), 1e-12)
}

func TestOLSSlope(t *testing.T) {
	slope, intercept := OLSSlope([]float64{1, 3, 5, 7})
	assert.InDelta(t, 2.0, slope, 1e-9)
	assert.InDelta(t, 1.0, intercept, 1e-9)

	slope, _ = OLSSlope([]float64{4, 4, 4})
	assert.InDelta(t, 0.0, slope, 1e-9)
}

func TestPearsonR(t *testing.T) {
	assert.InDelta(t, 1.0, PearsonR([]float64{1, 2, 3, 4}), 1e-9)
	assert.InDelta(t, -1.0, PearsonR([]float64{4, 3, 2, 1}), 1e-9)
	assert.Equal(t, 0.0, PearsonR([]float64{5, 5, 5}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.3, Clamp(0.1, 0.3, 0.95))
	assert.Equal(t, 0.95, Clamp(2, 0.3, 0.95))
	assert.Equal(t, 0.5, Clamp(0.5, 0.3, 0.95))
	assert.Equal(t, 1.0, Clamp(math.Inf(1), 0, 1))
}
