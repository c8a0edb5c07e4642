package domain

import "fmt"

// CleaningDecision is one strategy applied to a single flagged column.
type CleaningDecision string

const (
	// DeleteRows removes every row where the column is missing, or text in
	// an otherwise numeric column.
	DeleteRows CleaningDecision = "delete_rows"
	// ImputeMean coerces the column to numeric and fills missing cells with
	// the mean of the remaining values.
	ImputeMean CleaningDecision = "impute_mean"
	// ImputeMedian coerces the column to numeric and fills missing cells
	// with the median of the remaining values.
	ImputeMedian CleaningDecision = "impute_median"
	// ForwardFill fills each missing cell with the nearest preceding
	// non-missing value. A missing value at row 0 stays missing.
	ForwardFill CleaningDecision = "forward_fill"
	// DropColumn removes the column entirely.
	DropColumn CleaningDecision = "drop_column"
	// ConvertToNumeric coerces every cell to numeric; unparsable cells
	// become missing rather than failing.
	ConvertToNumeric CleaningDecision = "convert_to_numeric"
)

// Decisions maps column names to the single strategy applied to each.
// Columns absent from the map are left untouched.
type Decisions map[string]CleaningDecision

// ParseCleaningDecision validates a raw decision string.
func ParseCleaningDecision(s string) (CleaningDecision, error) {
	switch d := CleaningDecision(s); d {
	case DeleteRows, ImputeMean, ImputeMedian, ForwardFill, DropColumn, ConvertToNumeric:
		return d, nil
	}
	return "", fmt.Errorf("unknown cleaning decision %q", s)
}
