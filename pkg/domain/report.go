package domain

// ValidationReport summarizes the data-quality issues of a dataset.
// It is derived on demand, never stored.
type ValidationReport struct {
	// MissingData counts missing cells per column; columns without missing
	// cells are omitted.
	MissingData map[string]int `json:"missing_data"`
	// TypeMismatches lists the 0-indexed row positions whose cells failed
	// numeric coercion, per column, in row order.
	TypeMismatches map[string][]int `json:"type_mismatches"`
	// CategoricalFlags names columns that look categorical (low-cardinality
	// text), sorted for a stable wire shape.
	CategoricalFlags []string `json:"categorical_flags"`
}

// IsCategorical reports whether the report flagged the column categorical.
func (r *ValidationReport) IsCategorical(column string) bool {
	for _, c := range r.CategoricalFlags {
		if c == column {
			return true
		}
	}
	return false
}
