// Package worker provides a parallel pool that evaluates image bands.
package worker

import (
	"context"
	"image"
	"sync"
	"time"
)

// Generator fills one band of an image.
type Generator interface {
	Generate(ctx context.Context, task Task) error
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, task Task) error

func (f GeneratorFunc) Generate(ctx context.Context, task Task) error { return f(ctx, task) }

// Task is a rectangular band of pixels to evaluate.
type Task struct {
	Band  image.Rectangle
	Index int
}

// Result represents the outcome of a band task.
type Result struct {
	Task    Task
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called once per finished task, from a single goroutine.
type ProgressFunc func(Result)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Generator  Generator
	OnProgress ProgressFunc
}

// Pool evaluates bands in parallel.
type Pool struct {
	workers    int
	generator  Generator
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		generator:  cfg.Generator,
		onProgress: cfg.OnProgress,
	}
}

// Bands splits bounds into horizontal bands of at most rows rows.
func Bands(bounds image.Rectangle, rows int) []Task {
	if rows <= 0 {
		rows = 1
	}
	var tasks []Task
	for y := bounds.Min.Y; y < bounds.Max.Y; y += rows {
		maxY := min(y+rows, bounds.Max.Y)
		tasks = append(tasks, Task{
			Band:  image.Rect(bounds.Min.X, y, bounds.Max.X, maxY),
			Index: len(tasks),
		})
	}
	return tasks
}

// Run executes all tasks and returns results.
// Tasks are processed in parallel by the configured number of workers.
// The function blocks until all tasks complete or the context is cancelled.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)
			if p.onProgress != nil {
				p.onProgress(result)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

// worker processes tasks from the task channel and sends results to the result channel.
func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{
				Task: task,
				Err:  ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		err := p.generator.Generate(ctx, task)

		results <- Result{
			Task:    task,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}

// FirstError returns the first failed result's error, in task order.
func FirstError(results []Result) error {
	var (
		first error
		index = -1
	)
	for _, r := range results {
		if r.Err != nil && (index < 0 || r.Task.Index < index) {
			first, index = r.Err, r.Task.Index
		}
	}
	return first
}
