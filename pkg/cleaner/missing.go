// pkg/cleaner/missing.go
package cleaner

import (
	"math"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/startuppulse/ecosystem-ingress/pkg/model"
	"github.com/startuppulse/ecosystem-ingress/pkg/normalize"
)

// HandleMissingValues applies each column's fill policy to the batch:
// critical columns drop the row, categorical columns fill "Unknown",
// numeric columns fill the column median and everything else fills
// the empty string. Critical drops happen before medians are computed
// so dropped rows never skew them.
func (c *Cleaner) HandleMissingValues(batch model.Batch, report *model.CleanReport) model.Batch {
	b := batch.Clone()

	for _, col := range c.sortedColumns() {
		if c.schema.PolicyFor(col) != model.PolicyCritical {
			continue
		}

		kept := make([]model.Record, 0, len(b.Rows))
		dropped := 0
		for _, row := range b.Rows {
			if model.IsNull(row[col]) {
				dropped++
				continue
			}
			kept = append(kept, row)
		}
		b.Rows = kept

		if dropped > 0 {
			if report != nil {
				report.RowsDropped[col] += dropped
			}
			c.logger.Info("Removed rows with missing critical column",
				zap.String("column", col),
				zap.Int("count", dropped))
		}
	}

	for _, col := range c.sortedColumns() {
		policy := c.schema.PolicyFor(col)
		if policy == model.PolicyCritical {
			continue
		}

		var fill any
		switch policy {
		case model.PolicyCategorical:
			fill = normalize.FallbackUnknown
		case model.PolicyNumeric:
			fill = c.columnMedian(b, col)
		default:
			fill = ""
		}

		filled := 0
		for _, row := range b.Rows {
			if model.IsNull(row[col]) {
				row[col] = fill
				filled++
			}
		}

		if filled > 0 {
			if report != nil {
				report.ValuesFilled[col] += filled
			}
			c.logger.Info("Filled missing values",
				zap.String("column", col),
				zap.Int("count", filled),
				zap.Any("fillValue", fill))
		}
	}

	return b
}

// columnMedian computes the median over the column's parseable values
// in the current batch. Medians are recomputed per run, never carried
// across batches. Returns 0 when no value parses.
func (c *Cleaner) columnMedian(b model.Batch, col string) float64 {
	values := make([]float64, 0, len(b.Rows))
	wide := normalize.Bounds{Lower: -math.MaxFloat64, Upper: math.MaxFloat64}

	for _, row := range b.Rows {
		switch v := row[col].(type) {
		case float64:
			values = append(values, v)
		case string:
			if parsed, ok := normalize.Count(v, wide); ok {
				values = append(values, parsed)
			}
		}
	}

	return medianOf(values)
}

// medianOf returns the median of the values, or 0 for an empty slice.
func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	median, err := stats.Median(values)
	if err != nil {
		return 0
	}
	return median
}
