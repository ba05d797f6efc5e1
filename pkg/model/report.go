// pkg/model/report.go
package model

import (
	"time"
)

// CleanReport accumulates the structured counts emitted by one run of
// the cleaning pipeline over a batch.
type CleanReport struct {
	Entity            string
	RowsIn            int
	RowsOut           int
	DuplicatesRemoved int
	RowsDropped       map[string]int // critical column -> rows dropped
	ValuesFilled      map[string]int // column -> missing values filled
	InvalidURLs       map[string]int // URL column -> invalid values blanked
	OutOfRange        map[string]int // numeric column -> values nulled and refilled
	Suspicious        map[string]int // numeric column -> values flagged
	InvalidDates      map[string]int // date column -> values flagged
	StartTime         time.Time
	EndTime           time.Time
}

// NewCleanReport initializes a report for one entity type.
func NewCleanReport(entity string) *CleanReport {
	return &CleanReport{
		Entity:       entity,
		RowsDropped:  make(map[string]int),
		ValuesFilled: make(map[string]int),
		InvalidURLs:  make(map[string]int),
		OutOfRange:   make(map[string]int),
		Suspicious:   make(map[string]int),
		InvalidDates: make(map[string]int),
		StartTime:    time.Now(),
	}
}

// Complete marks the report as finished.
func (r *CleanReport) Complete(rowsOut int) {
	r.RowsOut = rowsOut
	r.EndTime = time.Now()
}

// Duration returns the elapsed cleaning time.
func (r *CleanReport) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// TotalFilled returns the total number of missing values filled
// across all columns.
func (r *CleanReport) TotalFilled() int {
	total := 0
	for _, n := range r.ValuesFilled {
		total += n
	}
	return total
}

// TotalDropped returns the total number of rows dropped for missing
// critical columns.
func (r *CleanReport) TotalDropped() int {
	total := 0
	for _, n := range r.RowsDropped {
		total += n
	}
	return total
}

// EnrichReport accumulates the counts emitted by one enrichment run.
type EnrichReport struct {
	Entity        string
	Records       int
	FetchFailures map[string]int // source name -> failed fetches
	FieldsMerged  int
	ConflictsWon  map[string]int // source name -> conflicts resolved in its favor
	StartTime     time.Time
	EndTime       time.Time
}

// NewEnrichReport initializes a report for one enrichment run.
func NewEnrichReport(entity string) *EnrichReport {
	return &EnrichReport{
		Entity:        entity,
		FetchFailures: make(map[string]int),
		ConflictsWon:  make(map[string]int),
		StartTime:     time.Now(),
	}
}

// Complete marks the report as finished.
func (r *EnrichReport) Complete(records int) {
	r.Records = records
	r.EndTime = time.Now()
}

// Duration returns the elapsed enrichment time.
func (r *EnrichReport) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// TotalFailures returns the total failed fetches across sources.
func (r *EnrichReport) TotalFailures() int {
	total := 0
	for _, n := range r.FetchFailures {
		total += n
	}
	return total
}
