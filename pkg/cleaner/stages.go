// pkg/cleaner/stages.go
package cleaner

import (
	"time"

	"go.uber.org/zap"

	"github.com/startuppulse/ecosystem-ingress/pkg/model"
	"github.com/startuppulse/ecosystem-ingress/pkg/normalize"
)

// NormalizeNames standardizes the entity name column.
func (c *Cleaner) NormalizeNames(batch model.Batch) model.Batch {
	b := batch.Clone()
	col := c.schema.NameColumn

	for _, row := range b.Rows {
		row[col] = normalize.Name(row.String(col))
	}

	return b
}

// NormalizeURLs canonicalizes and validates every URL column. Values
// that fail validation are blanked and counted; an unvalidated URL is
// never kept.
func (c *Cleaner) NormalizeURLs(batch model.Batch, report *model.CleanReport) model.Batch {
	b := batch.Clone()

	for _, col := range c.schema.URLColumns {
		invalid := 0
		for _, row := range b.Rows {
			raw := row.String(col)
			cleaned := normalize.URL(raw)
			if raw != "" && cleaned == "" {
				invalid++
			}
			row[col] = cleaned
		}

		if invalid > 0 {
			if report != nil {
				report.InvalidURLs[col] += invalid
			}
			c.logger.Info("Removed invalid URLs",
				zap.String("column", col),
				zap.Int("count", invalid))
		}
	}

	return b
}

// NormalizeCategoricals maps each categorical column through its
// normalization table. Values outside the table's domain map to the
// fixed fallback, so normalization is total.
func (c *Cleaner) NormalizeCategoricals(batch model.Batch) model.Batch {
	b := batch.Clone()

	for _, col := range c.schema.Categorical {
		table := c.tableFor(col)
		if table == nil {
			continue
		}
		for _, row := range b.Rows {
			row[col] = normalize.Categorical(row.String(col), table, normalize.FallbackOther)
		}
	}

	return b
}

// NormalizeFocus splits delimited multi-value columns into canonical
// token sets and derives the broader sector tags. A no-op for schemas
// without list columns.
func (c *Cleaner) NormalizeFocus(batch model.Batch) model.Batch {
	if len(c.schema.Lists) == 0 {
		return batch.Clone()
	}

	b := batch.Clone()

	for _, col := range c.schema.Lists {
		for _, row := range b.Rows {
			tokens := listTokens(row[col])

			canonical := make([]string, 0, len(tokens))
			seen := make(map[string]bool)
			for _, tok := range tokens {
				mapped := normalize.Categorical(tok, c.rules.FocusAreas, normalize.FallbackOther)
				if !seen[mapped] {
					seen[mapped] = true
					canonical = append(canonical, mapped)
				}
			}
			row[col] = canonical

			sectors := make([]string, 0, len(canonical))
			seenSector := make(map[string]bool)
			for _, focus := range canonical {
				sector, ok := c.rules.Sectors[focus]
				if !ok {
					sector = normalize.FallbackOther
				}
				if !seenSector[sector] {
					seenSector[sector] = true
					sectors = append(sectors, sector)
				}
			}
			row["sector"] = sectors
		}
	}

	return b
}

// listTokens extracts tokens from a multi-value column that may hold
// either a comma-delimited string or an already-split list.
func listTokens(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case string:
		return normalize.Tokens(val, ",")
	default:
		return nil
	}
}

// CleanNumerics parses each numeric column into a plain USD amount or
// count, handling shorthand multipliers and ranges. Out-of-range
// values are nulled and refilled with the column median so no nulls
// remain; implausible outliers above the soft threshold are flagged
// in a suspicious_* column instead of being dropped.
func (c *Cleaner) CleanNumerics(batch model.Batch, report *model.CleanReport) model.Batch {
	b := batch.Clone()

	for _, col := range c.schema.Numeric {
		bounds, hasBounds := c.bounds[col]
		if !hasBounds {
			bounds = normalize.Bounds{Lower: 0, Upper: 1e12}
		}

		values := make([]float64, len(b.Rows))
		valid := make([]bool, len(b.Rows))
		parseable := make([]float64, 0, len(b.Rows))

		for i, row := range b.Rows {
			switch v := row[col].(type) {
			case float64:
				if bounds.Contains(v) {
					values[i], valid[i] = v, true
				}
			case string:
				if parsed, ok := normalize.Count(v, bounds); ok {
					values[i], valid[i] = parsed, true
				}
			}
			if valid[i] {
				parseable = append(parseable, values[i])
			}
		}

		median := medianOf(parseable)
		refilled := 0
		for i, row := range b.Rows {
			if valid[i] {
				row[col] = values[i]
			} else {
				row[col] = median
				refilled++
			}
		}

		if refilled > 0 {
			if report != nil {
				report.OutOfRange[col] += refilled
			}
			c.logger.Info("Replaced implausible numeric values with median",
				zap.String("column", col),
				zap.Int("count", refilled))
		}

		threshold, hasThreshold := c.suspicious[col]
		if !hasThreshold {
			continue
		}

		flagged := 0
		flagCol := model.SuspiciousPrefix + col
		for _, row := range b.Rows {
			value, _ := row.Float(col)
			isSuspicious := value > threshold
			row[flagCol] = isSuspicious
			if isSuspicious {
				flagged++
			}
		}

		if flagged > 0 {
			if report != nil {
				report.Suspicious[col] += flagged
			}
			c.logger.Warn("Flagged suspicious numeric values",
				zap.String("column", col),
				zap.Int("count", flagged),
				zap.Float64("threshold", threshold))
		}
	}

	return b
}

// CleanDates parses every date column to a calendar date and rejects
// dates before 1900 or in the future. Invalid dates become the zero
// time sentinel with an invalid_* flag set, never a null.
func (c *Cleaner) CleanDates(batch model.Batch, report *model.CleanReport) model.Batch {
	b := batch.Clone()
	maxDate := c.now()

	for _, col := range c.schema.Dates {
		invalid := 0
		flagCol := model.InvalidPrefix + col

		for _, row := range b.Rows {
			t, ok := normalize.Date(row[col], minValidDate, maxDate)
			if ok {
				row[col] = t
				row[flagCol] = false
				continue
			}
			row[col] = time.Time{}
			row[flagCol] = true
			invalid++
		}

		if invalid > 0 {
			if report != nil {
				report.InvalidDates[col] += invalid
			}
			c.logger.Info("Flagged invalid dates",
				zap.String("column", col),
				zap.Int("count", invalid))
		}
	}

	return b
}
