package noise

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru"

	"github.com/MeKo-Tech/noisefield/internal/rng"
)

// Worley distance metrics.
const (
	DistanceEuclidean = "euclidean"
	DistanceManhattan = "manhattan"
	DistanceChebyshev = "chebyshev"
)

// Worley match types.
const (
	TypeF1         = "f1"
	TypeF2         = "f2"
	TypeF2MinusF1  = "f2 - f1"
	defaultLRUSize = 1 << 16
)

var (
	// Distances lists the accepted Worley distance metrics.
	Distances = []string{DistanceEuclidean, DistanceManhattan, DistanceChebyshev}
	// Types lists the accepted Worley match types.
	Types = []string{TypeF1, TypeF2, TypeF2MinusF1}
)

// WorleyConfig parameterizes cellular noise.
type WorleyConfig struct {
	// NumberOfPoints defaults to width/3.
	NumberOfPoints  int    `mapstructure:"numberOfPoints" yaml:"numberOfPoints"`
	ThreeDimensions bool   `mapstructure:"threeDimensions" yaml:"threeDimensions"`
	Distance        string `mapstructure:"distance" yaml:"distance"`
	Type            string `mapstructure:"type" yaml:"type"`
	// CacheSize bounds the per-coordinate distance cache.
	CacheSize int `mapstructure:"cacheSize" yaml:"cacheSize"`
}

// WithDefaults fills unset fields for a field of the given width.
func (c WorleyConfig) WithDefaults(width int) WorleyConfig {
	if c.NumberOfPoints == 0 {
		c.NumberOfPoints = max(width/3, 1)
	}
	if c.Distance == "" {
		c.Distance = DistanceEuclidean
	}
	if c.Type == "" {
		c.Type = TypeF1
	}
	if c.CacheSize == 0 {
		c.CacheSize = defaultLRUSize
	}
	return c
}

// Validate checks the metric, the match type and the point count.
func (c WorleyConfig) Validate() error {
	if err := CheckOption("distance", c.Distance, Distances); err != nil {
		return err
	}
	if err := CheckOption("type", c.Type, Types); err != nil {
		return err
	}
	if c.NumberOfPoints <= 0 {
		return &DomainError{Field: "numberOfPoints", Reason: fmt.Sprintf("must be positive, got %d", c.NumberOfPoints)}
	}
	if c.CacheSize < 0 {
		return &DomainError{Field: "cacheSize", Reason: fmt.Sprintf("must not be negative, got %d", c.CacheSize)}
	}
	return nil
}

// Point is a Worley feature point.
type Point struct {
	X float64
	Y float64
	Z float64
}

type metricFunc func(dx, dy, dz float64) float64

var metrics = map[string]metricFunc{
	DistanceEuclidean: func(dx, dy, dz float64) float64 {
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	},
	DistanceManhattan: func(dx, dy, dz float64) float64 {
		return math.Abs(dx) + math.Abs(dy) + math.Abs(dz)
	},
	DistanceChebyshev: func(dx, dy, dz float64) float64 {
		return math.Max(math.Abs(dx), math.Max(math.Abs(dy), math.Abs(dz)))
	},
}

// Worley is cellular noise over a fixed set of feature points. Queries are in
// pixel space; feature points lie in [0,width) x [0,height) x [0,width).
type Worley struct {
	points  []Point
	metric  metricFunc
	typ     string
	spacing float64
	cache   *lru.Cache
}

// NewWorley scatters the feature points for seed and returns the kernel.
func NewWorley(width, height int, seed int64, cfg WorleyConfig) (*Worley, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults(width)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stream := rng.New(seed)
	points := make([]Point, cfg.NumberOfPoints)
	for i := range points {
		p := Point{
			X: float64(stream.Index(width)),
			Y: float64(stream.Index(height)),
		}
		if cfg.ThreeDimensions {
			p.Z = float64(stream.Index(width))
		}
		points[i] = p
	}

	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create distance cache: %w", err)
	}

	return &Worley{
		points:  points,
		metric:  metrics[cfg.Distance],
		typ:     cfg.Type,
		spacing: math.Sqrt(float64(width) * float64(height) / float64(len(points))),
		cache:   cache,
	}, nil
}

// Eval returns the selected distance, divided by the mean feature spacing and
// clamped to [0,1].
func (n *Worley) Eval(x, y float64) float64 {
	f1, f2 := n.Distances(x, y)
	var d float64
	switch n.typ {
	case TypeF1:
		d = f1
	case TypeF2:
		d = f2
	case TypeF2MinusF1:
		d = f2 - f1
	}
	return clamp(d/n.spacing, 0, 1)
}

func (n *Worley) Range() (float64, float64) { return 0, 1 }

// Distances returns the nearest and second-nearest feature distances from
// (x, y, 0). With a single feature point both are the same.
func (n *Worley) Distances(x, y float64) (f1, f2 float64) {
	key := [2]float64{x, y}
	if v, ok := n.cache.Get(key); ok {
		d := v.([2]float64)
		return d[0], d[1]
	}

	f1, f2 = math.Inf(1), math.Inf(1)
	for _, p := range n.points {
		d := n.metric(p.X-x, p.Y-y, p.Z)
		switch {
		case d < f1:
			f1, f2 = d, f1
		case d < f2:
			f2 = d
		}
	}
	if math.IsInf(f2, 1) {
		f2 = f1
	}

	n.cache.Add(key, [2]float64{f1, f2})
	return f1, f2
}

// Points returns a copy of the feature points.
func (n *Worley) Points() []Point {
	out := make([]Point, len(n.points))
	copy(out, n.points)
	return out
}
