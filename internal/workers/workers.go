package workers

import "context"

type Workers struct {
	workers []Worker
}

// NewWorkers bundles the given workers into a single aggregate.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker with ctx. Cancelling ctx stops them all.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
