package field

import (
	"math"
	"math/rand/v2"

	"github.com/ThatOtherAndrew/netsphere/internal/models"
)

// Generate places count dots uniformly over a sphere of the given radius and
// shifts them by centerZ along Z. dst is reused when it has the capacity.
func Generate(rng *rand.Rand, count int, radius, centerZ float64, dst []models.Dot) []models.Dot {
	dots := dst[:0]
	for i := range count {
		theta := rng.Float64() * 2 * math.Pi
		// acos of a uniform value keeps the poles from clustering
		phi := math.Acos(rng.Float64()*2 - 1)

		dots = append(dots, models.Dot{
			Index: i,
			X:     radius * math.Sin(phi) * math.Cos(theta),
			Y:     radius * math.Sin(phi) * math.Sin(theta),
			Z:     radius*math.Cos(phi) + centerZ,
		})
	}
	return dots
}
