package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func transformPoint(m []float32, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

func TestBuildModelMatrix2DTranslationOnly(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix2D(m, 10, 20, 0, 0, 0, 1)

	x, y := transformPoint(m, 1, 1)
	assert.InDelta(t, 11, x, 1e-5)
	assert.InDelta(t, 21, y, 1e-5)
}

func TestBuildModelMatrix2DRotatesAroundPivot(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix2D(m, 0, 0, 5, 5, math.Pi/2, 1)

	// The pivot itself must stay in place.
	x, y := transformPoint(m, 5, 5)
	assert.InDelta(t, 5, x, 1e-5)
	assert.InDelta(t, 5, y, 1e-5)

	x, y = transformPoint(m, 10, 5)
	assert.InDelta(t, 5, x, 1e-5)
	assert.InDelta(t, 10, y, 1e-5)
}

func TestOrthographicMapsCorners(t *testing.T) {
	m := make([]float32, 16)
	Orthographic(m, 0, 800, 600, 0, 0, 1)

	x, y := transformPoint(m, 0, 0)
	assert.InDelta(t, -1, x, 1e-5)
	assert.InDelta(t, 1, y, 1e-5)

	x, y = transformPoint(m, 800, 600)
	assert.InDelta(t, 1, x, 1e-5)
	assert.InDelta(t, -1, y, 1e-5)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
