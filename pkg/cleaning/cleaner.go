// Package cleaning applies per-column cleaning decisions to a dataset,
// producing the session's working dataset. Application is all-or-nothing:
// either every decision applies and a new dataset is returned, or an error
// is returned and nothing is mutated.
package cleaning

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/olstudio/olstudio/pkg/domain"
)

// Apply executes one cleaning strategy per decided column. Columns without
// a decision pass through unchanged, missing values included; decisions for
// columns the dataset does not have are skipped.
//
// Application order is fixed so the result never depends on map iteration:
// column drops first, then all non-deletion transforms, and only then are
// row deletions evaluated against a single shared survival mask. Removals
// accumulate across delete_rows decisions (a row survives only if every
// deciding column keeps it).
func Apply(ds *domain.Dataset, decisions domain.Decisions) (*domain.Dataset, error) {
	for col, d := range decisions {
		if _, err := domain.ParseCleaningDecision(string(d)); err != nil {
			return nil, &domain.ValidationError{Column: col, Reason: err.Error()}
		}
	}

	kept := make([]string, 0, ds.NumColumns())
	for _, name := range ds.Columns() {
		if decisions[name] == domain.DropColumn {
			continue
		}
		kept = append(kept, name)
	}

	// Working copy of every surviving column.
	work := make(map[string][]domain.Value, len(kept))
	for _, name := range kept {
		col, _ := ds.Column(name)
		work[name] = col
	}

	// Phase 1: non-deletion transforms.
	for _, name := range kept {
		var err error
		switch decisions[name] {
		case domain.ImputeMean:
			work[name], err = impute(name, work[name], mean)
		case domain.ImputeMedian:
			work[name], err = impute(name, work[name], median)
		case domain.ForwardFill:
			work[name] = forwardFill(work[name])
		case domain.ConvertToNumeric:
			work[name] = coerceAll(work[name])
		}
		if err != nil {
			return nil, err
		}
	}

	// Phase 2: row deletions over one shared survival mask.
	survives := make([]bool, ds.NumRows())
	for i := range survives {
		survives[i] = true
	}
	for _, name := range kept {
		if decisions[name] != domain.DeleteRows {
			continue
		}
		markDeletions(work[name], survives)
	}

	out, err := domain.NewDataset(kept)
	if err != nil {
		return nil, err
	}
	for i := 0; i < ds.NumRows(); i++ {
		if !survives[i] {
			continue
		}
		rec := make(map[string]domain.Value, len(kept))
		for _, name := range kept {
			rec[name] = work[name][i]
		}
		if err := out.AppendRow(rec); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// impute coerces the column to numeric and fills missing cells with a
// statistic of the non-missing values, computed pre-imputation.
func impute(name string, col []domain.Value, statFn func([]float64) float64) ([]domain.Value, error) {
	coerced := coerceAll(col)
	var nums []float64
	for _, v := range coerced {
		if f, ok := v.Float(); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return nil, &domain.ValidationError{Column: name, Reason: "no numeric values to impute from"}
	}
	fill := domain.NewNumber(statFn(nums))
	for i, v := range coerced {
		if v.IsMissing() {
			coerced[i] = fill
		}
	}
	return coerced, nil
}

func mean(nums []float64) float64 {
	return stat.Mean(nums, nil)
}

// median is the sorted middle value, averaging the two middle values for
// even counts.
func median(nums []float64) float64 {
	cp := append([]float64(nil), nums...)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 0 {
		return (cp[mid-1] + cp[mid]) / 2
	}
	return cp[mid]
}

// forwardFill replaces each missing cell with the nearest preceding
// non-missing value. A missing value at row 0 stays missing; there is no
// synthetic default.
func forwardFill(col []domain.Value) []domain.Value {
	out := append([]domain.Value(nil), col...)
	last := domain.Missing()
	for i, v := range out {
		if v.IsMissing() {
			out[i] = last
			continue
		}
		last = v
	}
	return out
}

func coerceAll(col []domain.Value) []domain.Value {
	out := make([]domain.Value, len(col))
	for i, v := range col {
		out[i] = v.Coerce()
	}
	return out
}

// markDeletions clears the survival flag for rows where the column is
// missing, or text while the column otherwise holds numbers.
func markDeletions(col []domain.Value, survives []bool) {
	numericTarget := false
	for _, v := range col {
		if _, ok := v.Float(); ok {
			numericTarget = true
			break
		}
	}
	for i, v := range col {
		if v.IsMissing() {
			survives[i] = false
			continue
		}
		if _, isText := v.Text(); isText && numericTarget {
			survives[i] = false
		}
	}
}
