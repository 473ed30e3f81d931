// Package rng provides the seeded pseudorandom streams used by the noise
// generators.
package rng

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// Stream is a deterministic sequence of values derived from an integer seed.
// A Stream is not safe for concurrent use.
type Stream struct {
	r *rand.Rand
}

// New creates a stream for seed. Identical seeds yield identical sequences.
func New(seed int64) *Stream {
	return &Stream{r: rand.New(rand.NewChaCha8(key(seed, 0, 0, false)))}
}

// Derive creates an independent stream for one lattice coordinate of seed.
// The result does not depend on how many other streams were derived before it.
func Derive(seed int64, x, y int) *Stream {
	return &Stream{r: rand.New(rand.NewChaCha8(key(seed, x, y, true)))}
}

func key(seed int64, x, y int, derived bool) [32]byte {
	var k [32]byte
	binary.LittleEndian.PutUint64(k[0:8], uint64(seed))
	binary.LittleEndian.PutUint64(k[8:16], uint64(int64(x)))
	binary.LittleEndian.PutUint64(k[16:24], uint64(int64(y)))
	if derived {
		k[24] = 1
	}
	return k
}

// Next returns the next value in [0,1).
func (s *Stream) Next() float64 {
	return s.r.Float64()
}

// Signed returns the next value mapped into [-1,1).
func (s *Stream) Signed() float64 {
	return s.Next()*2 - 1
}

// Angle returns the next value mapped into [0,2π).
func (s *Stream) Angle() float64 {
	return s.Next() * 2 * math.Pi
}

// Index returns the next value mapped onto the grid index range [0,n).
// n must be positive.
func (s *Stream) Index(n int) int {
	i := int(s.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
