package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the
// store, the session has ended, or no working dataset has been produced yet.
var ErrSessionNotFound = errors.New("session not found")

// ValidationError reports malformed cleaning or fitting input, such as an
// imputation requested on a column with no numeric values.
type ValidationError struct {
	Column string // offending column or model field, may be empty
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return e.Reason
	}
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}

// InvalidVariableError reports a non-numeric column requested where a fully
// numeric one is required.
type InvalidVariableError struct {
	Variable string
	Reason   string
}

func (e *InvalidVariableError) Error() string {
	return fmt.Sprintf("variable %q: %s", e.Variable, e.Reason)
}

// InsufficientDataError reports too few rows to fit a model with positive
// degrees of freedom.
type InsufficientDataError struct {
	Rows     int // rows available
	Required int // rows the fit would need at minimum
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d rows, need at least %d for positive degrees of freedom", e.Rows, e.Required)
}

// SingularMatrixError reports an uninvertible design matrix, e.g. perfectly
// collinear regressors. Distinct from the soft multicollinearity warning,
// which applies to invertible but ill-conditioned matrices.
type SingularMatrixError struct {
	Detail string
}

func (e *SingularMatrixError) Error() string {
	if e.Detail == "" {
		return "design matrix is singular"
	}
	return "design matrix is singular: " + e.Detail
}
