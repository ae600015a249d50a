// Package rng provides the explicit random-draw stream shared by spotgp
// processes.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws across runs and platforms.
//   - Encapsulation: no global or time-based sources; every draw goes through
//     a *Stream handle owned by the caller.
//   - Sharing: composed processes hold the same *Stream as their first
//     operand, so a combined model consumes one sequence of draws.
//
// Concurrency:
//   - A Stream is NOT goroutine-safe. Do not share one across goroutines.
package rng

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed is the fixed seed used when callers pass seed == 0.
const DefaultSeed uint64 = 1

// pcgIncrement is the second PCG word; it only selects the sequence.
const pcgIncrement uint64 = 0x9e3779b97f4a7c15

// Stream is a seeded standard-normal generator.
type Stream struct {
	seed   uint64
	draws  uint64
	normal distuv.Normal
}

// New returns a deterministic stream.
// Policy: seed == 0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
func New(seed uint64) *Stream {
	s := seed
	if s == 0 {
		s = DefaultSeed
	}

	return &Stream{
		seed:   s,
		normal: distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(s, pcgIncrement)},
	}
}

// Seed returns the effective seed of the stream.
func (s *Stream) Seed() uint64 { return s.seed }

// Draws returns how many standard-normal values the stream has produced.
func (s *Stream) Draws() uint64 { return s.draws }

// Float64 returns a single standard-normal draw.
func (s *Stream) Float64() float64 {
	s.draws++

	return s.normal.Rand()
}

// Normal returns n standard-normal draws.
func (s *Stream) Normal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Float64()
	}

	return out
}

// NormalMatrix returns an r×c matrix of standard-normal draws filled in
// row-major order.
func (s *Stream) NormalMatrix(r, c int) *mat.Dense {
	return mat.NewDense(r, c, s.Normal(r*c))
}
