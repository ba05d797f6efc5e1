// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/startuppulse/ecosystem-ingress/pkg/model"
	"github.com/startuppulse/ecosystem-ingress/pkg/normalize"
)

// Earliest calendar date accepted for any date column. Anything
// before this is an obvious data-entry error.
var minValidDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// Cleaner runs the fixed sequence of cleaning stages over a record
// batch for one entity type. Stages are pure: every stage returns a
// new batch and never mutates its input.
type Cleaner struct {
	schema     *model.Schema
	rules      *normalize.Rules
	bounds     map[string]normalize.Bounds
	suspicious map[string]float64
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a cleaner for the given schema. Numeric bounds and
// suspicious-value thresholds default per entity type.
func New(schema *model.Schema, rules *normalize.Rules, logger *zap.Logger) (*Cleaner, error) {
	if schema == nil {
		return nil, errors.New("schema cannot be nil")
	}
	if rules == nil {
		return nil, errors.New("normalization rules cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Cleaner{
		schema:     schema,
		rules:      rules,
		bounds:     defaultBounds(schema.Entity),
		suspicious: defaultThresholds(schema.Entity),
		logger:     logger.With(zap.String("entity", schema.Entity)),
		now:        time.Now,
	}, nil
}

// NewStartupCleaner creates a cleaner configured for startup records.
func NewStartupCleaner(rules *normalize.Rules, logger *zap.Logger) (*Cleaner, error) {
	return New(model.StartupSchema(), rules, logger)
}

// NewInvestorCleaner creates a cleaner configured for investor records.
func NewInvestorCleaner(rules *normalize.Rules, logger *zap.Logger) (*Cleaner, error) {
	return New(model.InvestorSchema(), rules, logger)
}

// WithBounds overrides the plausible range for a numeric column.
func (c *Cleaner) WithBounds(column string, bounds normalize.Bounds) *Cleaner {
	c.bounds[column] = bounds
	return c
}

// WithClock overrides the clock used for future-date validation.
func (c *Cleaner) WithClock(now func() time.Time) *Cleaner {
	c.now = now
	return c
}

// defaultBounds returns the plausible numeric ranges per entity type.
func defaultBounds(entity string) map[string]normalize.Bounds {
	switch entity {
	case "startup":
		return map[string]normalize.Bounds{
			"employee_count": {Lower: 0, Upper: 1e6},
			"funding_amount": {Lower: 0, Upper: 1e9},
		}
	case "investor":
		return map[string]normalize.Bounds{
			"investment_amount": {Lower: 1e4, Upper: 1e10},
		}
	default:
		return map[string]normalize.Bounds{}
	}
}

// defaultThresholds returns the soft limits above which a numeric
// value is flagged suspicious rather than dropped.
func defaultThresholds(entity string) map[string]float64 {
	switch entity {
	case "startup":
		return map[string]float64{
			"employee_count": 1e5,
			"funding_amount": 1e8,
		}
	default:
		return map[string]float64{}
	}
}

// Clean runs the full cleaning pipeline: deduplication, missing-value
// handling, then per-column normalization and validation. Malformed
// values degrade to the column's fill policy; the only error is a
// schema violation, which fails the whole batch.
func (c *Cleaner) Clean(batch model.Batch) (model.Batch, *model.CleanReport, error) {
	report := model.NewCleanReport(c.schema.Entity)
	report.RowsIn = batch.Len()

	if err := c.schema.Validate(batch); err != nil {
		return model.Batch{}, nil, fmt.Errorf("batch failed schema validation: %w", err)
	}

	b := c.RemoveDuplicates(batch, report)
	b = c.HandleMissingValues(b, report)
	b = c.NormalizeNames(b)
	b = c.NormalizeURLs(b, report)
	b = c.NormalizeCategoricals(b)
	b = c.NormalizeFocus(b)
	b = c.CleanNumerics(b, report)
	b = c.CleanDates(b, report)

	report.Complete(b.Len())

	c.logger.Info("Cleaning completed",
		zap.Int("rowsIn", report.RowsIn),
		zap.Int("rowsOut", report.RowsOut),
		zap.Int("duplicatesRemoved", report.DuplicatesRemoved),
		zap.Int("rowsDropped", report.TotalDropped()),
		zap.Int("valuesFilled", report.TotalFilled()),
		zap.Duration("duration", report.Duration()))

	return b, report, nil
}

// sortedColumns returns the schema's policy columns in a stable order
// so stage behavior never depends on map iteration.
func (c *Cleaner) sortedColumns() []string {
	cols := make([]string, 0, len(c.schema.Policies))
	for col := range c.schema.Policies {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// tableFor returns the normalization table that applies to a
// categorical column.
func (c *Cleaner) tableFor(column string) map[string]string {
	switch column {
	case "industry", "sub_sector":
		return c.rules.Industries
	case "investor_type":
		return c.rules.InvestorTypes
	case "funding_round":
		return c.rules.FundingRounds
	default:
		return nil
	}
}
