package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/vk/gridmirror/internal/config"
	"github.com/vk/gridmirror/internal/ctxlog"
	"github.com/vk/gridmirror/internal/grid"
	"github.com/vk/gridmirror/internal/megaverse"
)

// entityCall is one remote operation applied per entity (create or delete).
type entityCall func(ctx context.Context, e grid.Entity) megaverse.Result

// submitAll pushes every entity through the configured strategy with
// best-effort, collect-all semantics: one failure never aborts the batch.
func (d *Driver) submitAll(ctx context.Context, entities []grid.Entity, call entityCall) Summary {
	switch d.submit.Strategy {
	case config.StrategyBatch:
		return d.submitBatched(ctx, entities, call)
	default:
		return d.submitGated(ctx, entities, call)
	}
}

// submitGated launches one goroutine per entity, gated by a counting
// semaphore of the configured width, so at most K calls are ever in flight
// and the pipeline stays saturated at exactly K. Launch order is the entity
// list order; outcomes are logged in completion order.
func (d *Driver) submitGated(ctx context.Context, entities []grid.Entity, call entityCall) Summary {
	logger := ctxlog.FromContext(ctx)
	sem := semaphore.NewWeighted(int64(d.submit.Concurrency))

	var wg sync.WaitGroup
	var succeeded, failed atomic.Int64
	for _, entity := range entities {
		if err := sem.Acquire(ctx, 1); err != nil {
			logger.Warn("Submission admission interrupted.", "entity", entity.String(), "error", err)
			failed.Add(1)
			continue
		}
		wg.Add(1)
		go func(entity grid.Entity) {
			defer wg.Done()
			defer sem.Release(1)
			settle(ctx, entity, call(ctx, entity), &succeeded, &failed)
		}(entity)
	}
	wg.Wait()

	return Summary{Succeeded: int(succeeded.Load()), Failed: int(failed.Load())}
}

// submitBatched is the legacy realization of the same backpressure goal:
// fixed-size chunks with a fixed pause between them.
func (d *Driver) submitBatched(ctx context.Context, entities []grid.Entity, call entityCall) Summary {
	logger := ctxlog.FromContext(ctx)

	var succeeded, failed atomic.Int64
	for start := 0; start < len(entities); start += d.submit.BatchSize {
		end := start + d.submit.BatchSize
		if end > len(entities) {
			end = len(entities)
		}
		chunk := entities[start:end]
		logger.Debug("Submitting batch.", "from", start, "size", len(chunk))

		var wg sync.WaitGroup
		for _, entity := range chunk {
			wg.Add(1)
			go func(entity grid.Entity) {
				defer wg.Done()
				settle(ctx, entity, call(ctx, entity), &succeeded, &failed)
			}(entity)
		}
		wg.Wait()

		if end < len(entities) {
			pause(ctx, d.submit.BatchPause)
		}
	}

	return Summary{Succeeded: int(succeeded.Load()), Failed: int(failed.Load())}
}

// settle records and logs one entity outcome as it completes.
func settle(ctx context.Context, entity grid.Entity, res megaverse.Result, succeeded, failed *atomic.Int64) {
	logger := ctxlog.FromContext(ctx)
	if res.Success {
		succeeded.Add(1)
		logger.Info("Entity submission succeeded.", "entity", entity.String())
		return
	}
	failed.Add(1)
	logger.Error("Entity submission failed.", "entity", entity.String(), "message", res.Message)
}

// pause waits between batches, honoring context cancellation.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
