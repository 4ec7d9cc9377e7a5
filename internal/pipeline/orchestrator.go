package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/lessongest/internal/config"
	"github.com/dgallion1/lessongest/internal/outline"
	"github.com/dgallion1/lessongest/internal/parser"
	"github.com/dgallion1/lessongest/internal/snapshot"
)

// Orchestrator manages the lesson ingestion pipeline.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	store snapshot.Store
	index *HashIndex
	stats *BuildStats
	log   *slog.Logger
	cfg   config.Config

	heuristics outline.Heuristics
	parseOpts  parser.Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, store snapshot.Store, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:       NewJobStore(cfg.JobTTL),
		queue:      make(chan *Job, cfg.MaxQueueSize),
		store:      store,
		index:      NewHashIndex(),
		stats:      NewBuildStats(time.Hour),
		log:        log,
		cfg:        cfg,
		heuristics: cfg.Heuristics(),
		parseOpts: parser.Options{
			FallbackPdftotext: cfg.PDFFallbackPdftotext,
			OCRLanguages:      cfg.OCRLanguages,
		},
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.store, o.index, o.stats, o.log, o.heuristics, o.parseOpts)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Store returns the snapshot store for direct use by API handlers.
func (o *Orchestrator) Store() snapshot.Store {
	return o.store
}

// Heuristics returns the classifier settings used for builds.
func (o *Orchestrator) Heuristics() outline.Heuristics {
	return o.heuristics
}

// BuildStats returns the current build latency aggregate.
func (o *Orchestrator) BuildStats() StatsSnapshot {
	return o.stats.Snapshot()
}

// DeleteSession removes a stored lesson and its dedup entry.
func (o *Orchestrator) DeleteSession(ctx context.Context, sessionID string) error {
	if err := o.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	o.index.Forget(sessionID)
	return nil
}
