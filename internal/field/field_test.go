package field

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ThatOtherAndrew/netsphere/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOnSphere(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	radius, centerZ := 360.0, -360.0

	dots := Generate(rng, 500, radius, centerZ, nil)
	require.Len(t, dots, 500)

	for i, d := range dots {
		assert.Equal(t, i, d.Index)
		dist := math.Sqrt(d.X*d.X + d.Y*d.Y + (d.Z-centerZ)*(d.Z-centerZ))
		assert.InDelta(t, radius, dist, 1e-6)
		assert.LessOrEqual(t, d.Z, 0.0+1e-9)
		assert.GreaterOrEqual(t, d.Z, -2*radius-1e-9)
	}
}

func TestGenerateDoesNotClusterAtPoles(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	radius := 1.0

	dots := Generate(rng, 20000, radius, 0, nil)

	// equal-height bands of a sphere have equal area
	var upper, lower int
	for _, d := range dots {
		if d.Z > 0.5 {
			upper++
		}
		if d.Z > -0.25 && d.Z <= 0.25 {
			lower++
		}
	}
	assert.InDelta(t, 0.25, float64(upper)/float64(len(dots)), 0.02)
	assert.InDelta(t, 0.25, float64(lower)/float64(len(dots)), 0.02)
}

func TestGenerateReusesArena(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	arena := make([]models.Dot, 0, 64)

	first := Generate(rng, 10, 100, -100, arena)
	second := Generate(rng, 12, 100, -100, first)
	require.Len(t, second, 12)
	assert.Same(t, &arena[:1][0], &second[0])
	assert.Equal(t, 11, second[11].Index)
}

func TestGenerateSeeded(t *testing.T) {
	a := Generate(rand.New(rand.NewPCG(9, 9)), 5, 50, -50, nil)
	b := Generate(rand.New(rand.NewPCG(9, 9)), 5, 50, -50, nil)
	assert.Equal(t, a, b)

	assert.Empty(t, Generate(rand.New(rand.NewPCG(9, 9)), 0, 50, -50, nil))
}
