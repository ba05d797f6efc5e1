// pkg/enrich/merger.go
package enrich

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/startuppulse/ecosystem-ingress/pkg/model"
)

// Enricher fans out per-record fetches across the configured sources
// and merges the results into the batch. The source list order is the
// priority order: when two sources provide different values for the
// same field, the first non-null value from the highest-priority
// source wins.
type Enricher struct {
	sources []Source
	workers int
	timeout time.Duration
	logger  *zap.Logger
}

// NewEnricher creates an enricher over the given sources, listed in
// priority order.
func NewEnricher(logger *zap.Logger, sources ...Source) (*Enricher, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if len(sources) == 0 {
		return nil, errors.New("at least one enrichment source is required")
	}

	return &Enricher{
		sources: sources,
		workers: runtime.NumCPU(),
		timeout: 15 * time.Second,
		logger:  logger,
	}, nil
}

// WithWorkers sets the fan-out worker pool size.
func (e *Enricher) WithWorkers(workers int) *Enricher {
	if workers > 0 {
		e.workers = workers
	}
	return e
}

// WithTimeout bounds each individual source fetch. A timed-out fetch
// is treated exactly like a failed one.
func (e *Enricher) WithTimeout(timeout time.Duration) *Enricher {
	if timeout > 0 {
		e.timeout = timeout
	}
	return e
}

// fetchTask addresses one (record, source) fetch. Each task writes
// only its own result slot, so no two tasks share mutable state.
type fetchTask struct {
	row    int
	source int
}

// Enrich fetches supplementary fields for every record and merges
// them into a new batch. The input batch is never mutated; rows keep
// their original relative order. A fetch failure for one record and
// source logs an error and contributes nothing to that record.
func (e *Enricher) Enrich(ctx context.Context, batch model.Batch) (model.Batch, *model.EnrichReport, error) {
	if batch.Schema == nil {
		return model.Batch{}, nil, errors.New("batch has no schema")
	}

	report := model.NewEnrichReport(batch.Schema.Entity)

	results := make([][]model.Fields, batch.Len())
	failures := make([][]error, batch.Len())
	for i := range results {
		results[i] = make([]model.Fields, len(e.sources))
		failures[i] = make([]error, len(e.sources))
	}

	tasks := make(chan fetchTask)
	var wg sync.WaitGroup

	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				e.runFetch(ctx, batch, task, results, failures)
			}
		}()
	}

	for row := range batch.Rows {
		for source := range e.sources {
			tasks <- fetchTask{row: row, source: source}
		}
	}
	close(tasks)
	wg.Wait()

	for row := range failures {
		for source, err := range failures[row] {
			if err == nil {
				continue
			}
			report.FetchFailures[e.sources[source].Name()]++
			e.logger.Error("Enrichment fetch failed",
				zap.String("source", e.sources[source].Name()),
				zap.Int("row", row),
				zap.Error(err))
		}
	}

	merged := e.merge(batch, results, report)
	report.Complete(merged.Len())

	e.logger.Info("Enrichment completed",
		zap.Int("records", report.Records),
		zap.Int("fieldsMerged", report.FieldsMerged),
		zap.Int("fetchFailures", report.TotalFailures()),
		zap.Duration("duration", report.Duration()))

	return merged, report, nil
}

// runFetch performs a single bounded fetch and stores the outcome in
// the task's own slot.
func (e *Enricher) runFetch(ctx context.Context, batch model.Batch, task fetchTask, results [][]model.Fields, failures [][]error) {
	row := batch.Rows[task.row]

	id := Identity{
		Name:    batch.Schema.NameOf(row),
		Website: batch.Schema.WebsiteOf(row),
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	fields, err := e.sources[task.source].Fetch(fetchCtx, id)
	if err != nil {
		failures[task.row][task.source] = err
		return
	}
	results[task.row][task.source] = fields
}

// merge left-joins every source's results onto the batch. Every
// original record is preserved even when no source has data for it.
// Existing non-null base values always win over source values; among
// sources, priority order decides. Resolution is a pure function of
// the field values, never of fetch arrival order.
func (e *Enricher) merge(batch model.Batch, results [][]model.Fields, report *model.EnrichReport) model.Batch {
	out := batch.Clone()

	for i, row := range out.Rows {
		for _, field := range e.fieldUnion(results[i]) {
			providers := 0
			var value any
			var winner string

			for s := range e.sources {
				v, ok := results[i][s][field]
				if !ok || model.IsNull(v) {
					continue
				}
				providers++
				if value == nil {
					value = v
					winner = e.sources[s].Name()
				}
			}

			if value == nil {
				continue
			}
			if existing, ok := row[field]; ok && !model.IsNull(existing) {
				continue
			}

			row[field] = value
			report.FieldsMerged++
			if providers > 1 {
				report.ConflictsWon[winner]++
			}
		}
	}

	return out
}

// fieldUnion returns the sorted union of field names across one
// record's source results, keeping merge order deterministic.
func (e *Enricher) fieldUnion(sourceFields []model.Fields) []string {
	seen := make(map[string]bool)
	for _, fields := range sourceFields {
		for field := range fields {
			seen[field] = true
		}
	}

	union := make([]string, 0, len(seen))
	for field := range seen {
		union = append(union, field)
	}
	sort.Strings(union)
	return union
}
