package raycast

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseSource draws zero-mean Gaussian range perturbations for the scan
// driver (spec §4.5). It wraps a distuv.Normal the way the pack's
// reinforcement-learning environments wrap a distuv.Uniform around an
// injectable rand.Source: production code seeds from entropy, tests seed
// deterministically so scans stay bit-reproducible at noise_stddev>0.
type NoiseSource struct {
	dist distuv.Normal
}

// NewNoiseSource builds a NoiseSource with standard deviation stddev,
// seeded by src. A nil src falls back to a fixed default seed; callers
// that need a production-grade entropy source should pass their own
// rand.NewSource, and tests that need bit-reproducible noise should
// always pass an explicit rand.NewSource(seed).
func NewNoiseSource(stddev float64, src rand.Source) *NoiseSource {
	if src == nil {
		src = rand.NewSource(1)
	}
	return &NoiseSource{dist: distuv.Normal{Mu: 0, Sigma: stddev, Src: src}}
}

// Sample draws one perturbation n ~ N(0, stddev^2).
func (n *NoiseSource) Sample() float64 {
	return n.dist.Rand()
}

// SetStddev updates the standard deviation in place, preserving the
// underlying random stream (unlike building a new NoiseSource, which
// would also require re-seeding). Simulator.SetConfig uses this so
// reconfiguring noise_stddev never perturbs an otherwise-reproducible
// seeded sequence.
func (n *NoiseSource) SetStddev(stddev float64) {
	n.dist.Sigma = stddev
}
