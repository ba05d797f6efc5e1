// pkg/cleaner/dedupe.go
package cleaner

import (
	"time"

	"go.uber.org/zap"

	"github.com/startuppulse/ecosystem-ingress/pkg/model"
	"github.com/startuppulse/ecosystem-ingress/pkg/normalize"
)

// RemoveDuplicates partitions records by the normalized natural key
// and keeps one survivor per partition: the record with the most
// recent recency timestamp, with ties going to the earliest row.
// Discarded duplicates are dropped outright; their fields are not
// merged into the survivor. Survivors keep the relative order in
// which their key first appeared.
func (c *Cleaner) RemoveDuplicates(batch model.Batch, report *model.CleanReport) model.Batch {
	b := batch.Clone()

	type winner struct {
		idx     int
		updated time.Time
	}

	var order []model.Key
	winners := make(map[model.Key]winner)

	for i, row := range b.Rows {
		key := model.KeyOf(row, c.schema)
		updated := c.recencyOf(row)

		current, seen := winners[key]
		if !seen {
			order = append(order, key)
			winners[key] = winner{idx: i, updated: updated}
			continue
		}

		if updated.After(current.updated) {
			winners[key] = winner{idx: i, updated: updated}
		}
	}

	rows := make([]model.Record, 0, len(order))
	for _, key := range order {
		rows = append(rows, b.Rows[winners[key].idx])
	}

	removed := len(b.Rows) - len(rows)
	if report != nil {
		report.DuplicatesRemoved += removed
	}
	if removed > 0 {
		c.logger.Info("Removed duplicate entries", zap.Int("count", removed))
	}

	return model.NewBatch(b.Schema, rows)
}

// recencyOf extracts the recency timestamp used for duplicate
// tie-breaks. Records without a parseable timestamp sort oldest.
func (c *Cleaner) recencyOf(r model.Record) time.Time {
	if c.schema.UpdatedColumn == "" {
		return time.Time{}
	}
	t, ok := normalize.Date(r[c.schema.UpdatedColumn], minValidDate, c.now())
	if !ok {
		return time.Time{}
	}
	return t
}
