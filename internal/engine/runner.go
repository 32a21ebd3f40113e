package engine

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Runner runs the sampler and the renderer side by side. The two share no
// memory; the logs on disk are their only link.
type Runner struct {
	sampler  *Sampler
	renderer *Renderer
	logger   *log.Logger
}

// NewRunner pairs a sampler with a renderer.
func NewRunner(s *Sampler, r *Renderer, logger *log.Logger) *Runner {
	return &Runner{sampler: s, renderer: r, logger: logger}
}

// Run starts both workers and blocks until both have exited. Cancelling
// ctx stops both; if the sampler finishes its rounds first the renderer
// draws one final set of charts and stops.
func (r *Runner) Run(ctx context.Context) Outcome {
	var wg sync.WaitGroup
	samplerDone := make(chan struct{})

	wg.Add(2)
	go func() {
		defer wg.Done()
		defer close(samplerDone)
		r.sampler.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		r.renderer.Run(ctx, samplerDone)
	}()
	wg.Wait()

	si, ri := r.sampler.Info(), r.renderer.Info()
	r.logger.Info("workers stopped",
		"rounds", si.Rounds, "samples", si.Samples, "failures", si.Failures,
		"render_cycles", ri.Cycles, "charts", ri.Charts)

	if ctx.Err() != nil {
		return Interrupted
	}
	return Completed
}

// Sampler returns the runner's sampler.
func (r *Runner) Sampler() *Sampler { return r.sampler }

// Renderer returns the runner's renderer.
func (r *Runner) Renderer() *Renderer { return r.renderer }
