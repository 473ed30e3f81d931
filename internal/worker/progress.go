package worker

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Progress counts rendered rows across the bands of one stage and logs them,
// at most once per interval plus once when the last row lands.
type Progress struct {
	logger   *slog.Logger
	stage    string
	interval time.Duration
	start    time.Time

	mu      sync.Mutex
	rows    int
	total   int
	pixels  int
	bands   int
	failed  int
	lastLog time.Time
}

// Snapshot is the state of a Progress at one instant.
type Snapshot struct {
	Stage       string
	Rows        int
	TotalRows   int
	Pixels      int
	Bands       int
	FailedBands int
	Elapsed     time.Duration
}

// NewProgress sizes a tracker from the rows covered by tasks.
func NewProgress(logger *slog.Logger, stage string, tasks []Task) *Progress {
	total := 0
	for _, task := range tasks {
		total += task.Band.Dy()
	}
	now := time.Now()
	return &Progress{
		logger:   logger,
		stage:    stage,
		interval: time.Second,
		start:    now,
		lastLog:  now,
		total:    total,
	}
}

func (p *Progress) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return slog.Default()
}

// SetInterval changes the minimum time between progress lines. Zero logs
// every band.
func (p *Progress) SetInterval(d time.Duration) {
	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()
}

// Observe records one finished band. Failed bands advance the row count but
// add no pixels.
func (p *Progress) Observe(r Result) {
	now := time.Now()

	p.mu.Lock()
	rows := r.Task.Band.Dy()
	p.rows += rows
	p.bands++
	if r.Err != nil {
		p.failed++
	} else {
		p.pixels += r.Task.Band.Dx() * rows
	}
	report := p.rows >= p.total || now.Sub(p.lastLog) >= p.interval
	if report {
		p.lastLog = now
	}
	s := p.snapshotLocked(now)
	p.mu.Unlock()

	if report {
		p.log().Info("Render progress",
			"stage", s.Stage,
			"rows", s.Rows,
			"total_rows", s.TotalRows,
			"percent", fmt.Sprintf("%.0f", s.Percent()),
			"failed_bands", s.FailedBands,
			"rows_per_sec", fmt.Sprintf("%.1f", s.RowsPerSecond()),
		)
	}
}

// Callback returns Observe as a ProgressFunc for Pool.Config.
func (p *Progress) Callback() ProgressFunc {
	return p.Observe
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked(time.Now())
}

func (p *Progress) snapshotLocked(now time.Time) Snapshot {
	return Snapshot{
		Stage:       p.stage,
		Rows:        p.rows,
		TotalRows:   p.total,
		Pixels:      p.pixels,
		Bands:       p.bands,
		FailedBands: p.failed,
		Elapsed:     now.Sub(p.start),
	}
}

// Percent is the share of rows done, 100 for an empty stage.
func (s Snapshot) Percent() float64 {
	if s.TotalRows == 0 {
		return 100
	}
	return 100 * float64(s.Rows) / float64(s.TotalRows)
}

// RowsPerSecond is the mean row throughput so far.
func (s Snapshot) RowsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Rows) / s.Elapsed.Seconds()
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%s: %d/%d rows, %d pixels in %d bands (%d failed) in %s",
		s.Stage, s.Rows, s.TotalRows, s.Pixels, s.Bands, s.FailedBands, s.Elapsed.Round(time.Millisecond))
}
