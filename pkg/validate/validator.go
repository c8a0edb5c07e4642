// Package validate scans a raw dataset and reports its data-quality issues:
// missing-value counts, numeric-coercion failures and probable categorical
// columns. Scanning is a pure function over the dataset; nothing is stored.
package validate

import (
	"sort"

	"github.com/olstudio/olstudio/pkg/domain"
)

// DefaultCategoricalThreshold flags a text column as categorical when its
// distinct text values are fewer than this fraction of the row count.
// A tunable heuristic, not an external contract.
const DefaultCategoricalThreshold = 0.5

// maxMismatchIndices caps how many offending row positions are reported per
// column; beyond that the count alone is actionable.
const maxMismatchIndices = 10

type config struct {
	categoricalThreshold float64
	maxMismatches        int
}

// Option configures a scan.
type Option func(*config)

// WithCategoricalThreshold overrides the categorical cardinality ratio.
func WithCategoricalThreshold(ratio float64) Option {
	return func(c *config) {
		c.categoricalThreshold = ratio
	}
}

// Scan inspects every column of the dataset and builds a ValidationReport.
// An empty dataset (zero rows or zero columns) yields an empty report.
func Scan(ds *domain.Dataset, opts ...Option) *domain.ValidationReport {
	cfg := config{
		categoricalThreshold: DefaultCategoricalThreshold,
		maxMismatches:        maxMismatchIndices,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	report := &domain.ValidationReport{
		MissingData:      make(map[string]int),
		TypeMismatches:   make(map[string][]int),
		CategoricalFlags: []string{},
	}
	if ds == nil || ds.NumRows() == 0 || ds.NumColumns() == 0 {
		return report
	}

	rows := ds.NumRows()
	for _, name := range ds.Columns() {
		col, _ := ds.Column(name)

		missing := 0
		var mismatches []int
		distinctText := make(map[string]struct{})

		for i, v := range col {
			if v.IsMissing() {
				missing++
				continue
			}
			if _, ok := v.Float(); ok {
				continue
			}
			// Non-missing, non-numeric: attempt coercion before flagging.
			if _, ok := v.Coerce().Float(); ok {
				continue
			}
			if len(mismatches) < cfg.maxMismatches {
				mismatches = append(mismatches, i)
			}
			if text, ok := v.Text(); ok {
				distinctText[text] = struct{}{}
			}
		}

		if missing > 0 {
			report.MissingData[name] = missing
		}
		if len(mismatches) > 0 {
			report.TypeMismatches[name] = mismatches
		}
		if len(distinctText) > 0 && float64(len(distinctText)) < cfg.categoricalThreshold*float64(rows) {
			report.CategoricalFlags = append(report.CategoricalFlags, name)
		}
	}
	sort.Strings(report.CategoricalFlags)
	return report
}
