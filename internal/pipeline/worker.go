package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/lessongest/internal/outline"
	"github.com/dgallion1/lessongest/internal/parser"
	"github.com/dgallion1/lessongest/internal/snapshot"
)

// Worker processes a single lesson job.
type Worker struct {
	store      snapshot.Store
	index      *HashIndex
	stats      *BuildStats
	log        *slog.Logger
	heuristics outline.Heuristics
	parseOpts  parser.Options

	backoff func(attempt int) time.Duration
}

func NewWorker(store snapshot.Store, index *HashIndex, stats *BuildStats, log *slog.Logger, h outline.Heuristics, opts parser.Options) *Worker {
	return &Worker{
		store:      store,
		index:      index,
		stats:      stats,
		log:        log,
		heuristics: h,
		parseOpts:  opts,
		backoff:    Backoff,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "session_id", job.SessionID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	start := time.Now()
	doc, err := parser.Parse(bytes.NewReader(job.FileData()), job.Filename, w.parseOpts)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetPages(len(doc.Pages))

	// Phase 2: Build the outline.
	job.SetStatus(StatusBuilding, "building")
	b := outline.NewBuilder(w.heuristics)
	for _, p := range doc.Pages {
		if err := ctx.Err(); err != nil {
			job.AddError(fmt.Sprintf("build: %s", err))
			job.SetStatus(StatusFailed, "building")
			return
		}
		b.AddPage(p)
	}
	o := b.Finish()
	w.stats.Record(time.Since(start).Milliseconds(), len(doc.Pages))
	job.SetOutline(o)
	log.Info("outline built",
		"pages", len(doc.Pages),
		"headings", len(o.Headings),
		"paragraphs", len(o.Paragraphs),
		"bullet_groups", len(o.BulletGroups))

	text := o.Text()
	if text == "" {
		log.Warn("no text extracted")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "building")
		return
	}

	// Phase 2.5: Dedup check
	hash := ContentHashHex([]byte(text))
	job.SetContentHash(hash)
	if existing, claimed := w.index.Claim(hash, job.SessionID); !claimed {
		log.Info("duplicate lesson, skipping", "existing_session_id", existing)
		job.SetDuplicateOf(existing)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 3: Store the snapshot.
	job.SetStatus(StatusStoring, "storing")
	title := job.Title
	if title == "" {
		title = doc.Title
	}
	snap := &snapshot.Snapshot{
		ID:          job.SessionID,
		Filename:    job.Filename,
		Title:       title,
		ContentHash: hash,
		CreatedAt:   job.CreatedAt,
		PageCount:   len(doc.Pages),
		Outline:     o,
	}
	if err := w.put(ctx, log, snap); err != nil {
		log.Error("snapshot write failed", "error", err)
		w.index.Forget(job.SessionID)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	// The raw upload is no longer needed once the snapshot is stored.
	job.SetFileData(nil)
	log.Info("lesson stored")
	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) put(ctx context.Context, log *slog.Logger, snap *snapshot.Snapshot) error {
	var lastErr error
	for attempt := range MaxRetries {
		lastErr = w.store.Put(ctx, snap.ID, snap)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		log.Warn("retryable snapshot error", "attempt", attempt, "error", lastErr)
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(w.backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
