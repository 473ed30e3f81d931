// Package render assembles images from field sources. Bands of rows are
// evaluated in parallel by the worker pool, so every source handed to a
// Renderer must be safe for concurrent use.
package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/disintegration/gift"
	"golang.org/x/image/draw"

	"github.com/MeKo-Tech/noisefield/internal/field"
	"github.com/MeKo-Tech/noisefield/internal/noise"
	"github.com/MeKo-Tech/noisefield/internal/worker"
)

// Normalization modes.
const (
	// NormalizeRunning shades each pixel against the source's running extent
	// as it stands when the pixel is evaluated.
	NormalizeRunning = "running"
	// NormalizeTwoPass evaluates raw heights first and shades every pixel
	// against the extent of the full pass.
	NormalizeTwoPass = "two-pass"
)

// NormalizeModes lists the accepted normalization modes.
var NormalizeModes = []string{NormalizeRunning, NormalizeTwoPass}

// Options configures a Renderer.
type Options struct {
	Width      int
	Height     int
	Workers    int
	BandHeight int
	Normalize  string
	// Blur is the Gaussian blur sigma applied after shading; 0 disables it.
	Blur float32
	// Contrast is a percentage in [-100,100]; 0 disables it.
	Contrast float32
	// Resize scales the finished image; 0 and 1 leave it unchanged.
	Resize   float64
	Progress bool
}

// Renderer turns a field source into an image.
type Renderer struct {
	opts   Options
	logger *slog.Logger
}

// New validates opts and creates a Renderer.
func New(opts Options, logger *slog.Logger) (*Renderer, error) {
	if err := noise.CheckSize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	if opts.Normalize == "" {
		opts.Normalize = NormalizeRunning
	}
	if err := noise.CheckOption("normalize", opts.Normalize, NormalizeModes); err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.BandHeight <= 0 {
		opts.BandHeight = 16
	}
	if opts.Blur < 0 {
		return nil, fmt.Errorf("blur must not be negative")
	}
	if opts.Contrast < -100 || opts.Contrast > 100 {
		return nil, fmt.Errorf("contrast must be within [-100,100]")
	}
	if opts.Resize < 0 || math.IsNaN(opts.Resize) {
		return nil, fmt.Errorf("resize must not be negative")
	}
	return &Renderer{opts: opts, logger: logger}, nil
}

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// Render evaluates src over the configured canvas.
func (r *Renderer) Render(ctx context.Context, src field.Source) (*image.RGBA, error) {
	start := time.Now()
	bounds := image.Rect(0, 0, r.opts.Width, r.opts.Height)
	img := image.NewRGBA(bounds)
	tasks := worker.Bands(bounds, r.opts.BandHeight)

	var err error
	switch r.opts.Normalize {
	case NormalizeTwoPass:
		err = r.renderTwoPass(ctx, src, img, tasks)
	default:
		err = r.run(ctx, tasks, "shade", func(band image.Rectangle) {
			for y := band.Min.Y; y < band.Max.Y; y++ {
				for x := band.Min.X; x < band.Max.X; x++ {
					img.SetRGBA(x, y, src.Pixel(float64(x), float64(y)))
				}
			}
		})
	}
	if err != nil {
		return nil, err
	}

	out := r.postProcess(img)
	r.log().Debug("Field rendered",
		"width", out.Bounds().Dx(),
		"height", out.Bounds().Dy(),
		"normalize", r.opts.Normalize,
		"bands", len(tasks),
		"elapsed", time.Since(start),
	)
	return out, nil
}

func (r *Renderer) renderTwoPass(ctx context.Context, src field.Source, img *image.RGBA, tasks []worker.Task) error {
	w := r.opts.Width
	heights := make([]float64, w*r.opts.Height)

	err := r.run(ctx, tasks, "heights", func(band image.Rectangle) {
		for y := band.Min.Y; y < band.Max.Y; y++ {
			for x := band.Min.X; x < band.Max.X; x++ {
				heights[y*w+x] = src.Height(float64(x), float64(y))
			}
		}
	})
	if err != nil {
		return err
	}

	extent := field.Extent{Min: heights[0], Max: heights[0]}
	for _, h := range heights[1:] {
		extent = extent.Widen(h)
	}
	r.log().Debug("Two-pass extent", "min", extent.Min, "max", extent.Max)

	return r.run(ctx, tasks, "shade", func(band image.Rectangle) {
		for y := band.Min.Y; y < band.Max.Y; y++ {
			for x := band.Min.X; x < band.Max.X; x++ {
				img.SetRGBA(x, y, src.Shade(heights[y*w+x], extent))
			}
		}
	})
}

func (r *Renderer) run(ctx context.Context, tasks []worker.Task, stage string, fill func(band image.Rectangle)) error {
	cfg := worker.Config{
		Workers: r.opts.Workers,
		Generator: worker.GeneratorFunc(func(ctx context.Context, task worker.Task) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fill(task.Band)
			return nil
		}),
	}

	var progress *worker.Progress
	if r.opts.Progress {
		progress = worker.NewProgress(r.log(), stage, tasks)
		cfg.OnProgress = progress.Callback()
	}

	results := worker.New(cfg).Run(ctx, tasks)
	if progress != nil {
		r.log().Info("Stage complete", "stage", stage, "summary", progress.Snapshot().String())
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render %s cancelled: %w", stage, err)
	}
	if err := worker.FirstError(results); err != nil {
		return fmt.Errorf("render %s failed: %w", stage, err)
	}
	if len(results) != len(tasks) {
		return fmt.Errorf("render %s incomplete: %d/%d bands", stage, len(results), len(tasks))
	}
	return nil
}

func (r *Renderer) postProcess(img *image.RGBA) *image.RGBA {
	var filters []gift.Filter
	if r.opts.Blur > 0 {
		filters = append(filters, gift.GaussianBlur(r.opts.Blur))
	}
	if r.opts.Contrast != 0 {
		filters = append(filters, gift.Contrast(r.opts.Contrast))
	}
	if len(filters) > 0 {
		g := gift.New(filters...)
		dst := image.NewRGBA(g.Bounds(img.Bounds()))
		g.Draw(dst, img)
		img = dst
	}

	if r.opts.Resize > 0 && r.opts.Resize != 1 {
		b := img.Bounds()
		w := max(int(math.Round(float64(b.Dx())*r.opts.Resize)), 1)
		h := max(int(math.Round(float64(b.Dy())*r.opts.Resize)), 1)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}
	return img
}
