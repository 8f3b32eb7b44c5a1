// File: pkg/filter/worker.go
package filter

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// job is one walked file waiting for inspection. index is its position in
// walk order.
type job struct {
	index   int
	path    string
	relPath string
}

// inspectConcurrently runs inspect over jobs on a worker pool. The returned
// slice is indexed like jobs; rejected files leave a nil slot.
func inspectConcurrently(jobs []job, cfg Config, logger *zap.Logger) []*Candidate {
	results := make([]*Candidate, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	maxWorkers := cfg.Workers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	if maxWorkers > len(jobs) {
		maxWorkers = len(jobs)
	}
	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers), zap.Int("files", len(jobs)))

	queue := make(chan job, len(jobs))
	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go worker(queue, results, cfg, &wg, logger.With(zap.Int("workerID", w)))
	}
	wg.Wait()

	return results
}

// worker inspects files from queue. Each job owns its own result slot.
func worker(queue <-chan job, results []*Candidate, cfg Config, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()
	for j := range queue {
		if c, ok := inspect(j.path, j.relPath, cfg, logger); ok {
			results[j.index] = &c
		}
	}
}
