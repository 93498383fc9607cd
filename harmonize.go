package ikfast

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Harmonize returns the sum of absolute circular differences between two equal-length
// joint vectors. Each pairwise difference is wrapped into (-pi, pi], so angles a full
// revolution apart count as equal and a seed near +pi is close to a candidate near -pi.
// Returns +Inf on a length mismatch. Useful for ranking candidates by closeness to a
// seed configuration.
func Harmonize(seed, solution []float64) float64 {
	if len(seed) != len(solution) {
		return math.Inf(1)
	}
	diffs := make([]float64, len(seed))
	for i := range seed {
		diff := math.Mod(solution[i]-seed[i], 2*math.Pi)
		if diff > math.Pi {
			diff -= 2 * math.Pi
		} else if diff <= -math.Pi {
			diff += 2 * math.Pi
		}
		diffs[i] = diff
	}
	// 1 is the L value returning a standard L1 norm, the sum of absolute differences
	return floats.Norm(diffs, 1)
}
