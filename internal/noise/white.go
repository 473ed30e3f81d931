package noise

import (
	"sync"

	"github.com/MeKo-Tech/noisefield/internal/rng"
)

// White returns an uncorrelated stream value on every call. It has no spatial
// coherence: the coordinates are ignored.
type White struct {
	mu     sync.Mutex
	stream *rng.Stream
}

// NewWhite creates white noise for seed.
func NewWhite(seed int64) *White {
	return &White{stream: rng.New(seed)}
}

func (n *White) Eval(_, _ float64) float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stream.Signed()
}

func (n *White) Range() (float64, float64) { return -1, 1 }
