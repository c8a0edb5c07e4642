package regress_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olstudio/olstudio/pkg/domain"
	"github.com/olstudio/olstudio/pkg/regress"
)

func dataset(t *testing.T, columns map[string][]float64) *domain.Dataset {
	t.Helper()
	names := make([]string, 0, len(columns))
	n := -1
	for name, vals := range columns {
		names = append(names, name)
		if n == -1 {
			n = len(vals)
		}
		require.Equal(t, n, len(vals), "ragged column %q", name)
	}
	ds, err := domain.NewDataset(names)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		rec := make(map[string]domain.Value, len(names))
		for _, name := range names {
			rec[name] = domain.NewNumber(columns[name][i])
		}
		require.NoError(t, ds.AppendRow(rec))
	}
	return ds
}

func TestFit_PerfectLine(t *testing.T) {
	x := make([]float64, 10)
	y := make([]float64, 10)
	for i := range x {
		x[i] = float64(i + 1)
		y[i] = 2*x[i] + 3
	}
	ds := dataset(t, map[string][]float64{"x": x, "y": y})

	model, err := regress.Fit(ds, "y", []string{"x"}, "line")
	require.NoError(t, err)

	assert.InDelta(t, 3.0, model.Coefficients[domain.InterceptTerm].Coefficient, 1e-9)
	assert.InDelta(t, 2.0, model.Coefficients["x"].Coefficient, 1e-9)
	assert.InDelta(t, 1.0, model.RSquared, 1e-12)
	assert.Empty(t, model.Warnings, "an exact fit must carry no diagnostic warnings")
	assert.Equal(t, []string{domain.InterceptTerm, "x"}, model.Terms)
}

func TestFit_KnownInference(t *testing.T) {
	// Closed-form simple regression: slope 0.6, intercept 2.2, R² 0.6,
	// F = t² = 4.5.
	ds := dataset(t, map[string][]float64{
		"x": {1, 2, 3, 4, 5},
		"y": {2, 4, 5, 4, 5},
	})

	model, err := regress.Fit(ds, "y", []string{"x"}, "known")
	require.NoError(t, err)

	assert.InDelta(t, 2.2, model.Coefficients[domain.InterceptTerm].Coefficient, 1e-9)
	assert.InDelta(t, 0.6, model.Coefficients["x"].Coefficient, 1e-9)
	assert.InDelta(t, 0.6, model.RSquared, 1e-9)
	assert.InDelta(t, 0.4667, model.AdjRSquared, 1e-4)
	assert.InDelta(t, math.Sqrt(0.08), model.Coefficients["x"].StdError, 1e-9)
	assert.InDelta(t, 4.5, model.FStatistic, 1e-9)
	slope := model.Coefficients["x"]
	assert.InDelta(t, slope.TStatistic*slope.TStatistic, model.FStatistic, 1e-9)
	assert.Greater(t, slope.PValue, 0.0)
	assert.Less(t, slope.PValue, 1.0)
	// Simple regression: the slope's two-tailed p equals the F test's p.
	assert.InDelta(t, model.FPValue, slope.PValue, 1e-9)
}

func TestFit_ExactCollinearityFails(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6}
	x2 := make([]float64, len(x1))
	y := make([]float64, len(x1))
	for i := range x1 {
		x2[i] = 3 * x1[i]
		y[i] = x1[i] + 1
	}
	ds := dataset(t, map[string][]float64{"x1": x1, "x2": x2, "y": y})

	_, err := regress.Fit(ds, "y", []string{"x1", "x2"}, "collinear")
	var serr *domain.SingularMatrixError
	assert.ErrorAs(t, err, &serr)
}

func TestFit_NearCollinearityWarns(t *testing.T) {
	x1 := make([]float64, 10)
	x2 := make([]float64, 10)
	y := make([]float64, 10)
	for i := range x1 {
		x1[i] = float64(i + 1)
		jitter := 0.01
		if i%2 == 1 {
			jitter = -0.01
		}
		x2[i] = 3*x1[i] + jitter
		y[i] = x1[i] + x2[i] + 1 + 0.1*float64(i%3)
	}
	ds := dataset(t, map[string][]float64{"x1": x1, "x2": x2, "y": y})

	model, err := regress.Fit(ds, "y", []string{"x1", "x2"}, "near")
	require.NoError(t, err, "near collinearity is a warning, not a failure")

	require.NotEmpty(t, model.Warnings)
	assert.Contains(t, model.Warnings[0], "multicollinearity")
}

func TestFit_HeteroscedasticityWarns(t *testing.T) {
	// Paired observations with residuals of exactly ±0.3x: the line 2x+3 is
	// recovered exactly and the residual spread grows with x.
	var x, y []float64
	for i := 1; i <= 10; i++ {
		v := float64(i)
		x = append(x, v, v)
		y = append(y, 2*v+3+0.3*v, 2*v+3-0.3*v)
	}
	ds := dataset(t, map[string][]float64{"x": x, "y": y})

	model, err := regress.Fit(ds, "y", []string{"x"}, "hetero")
	require.NoError(t, err)

	require.NotEmpty(t, model.Warnings)
	assert.Contains(t, model.Warnings[0], "Heteroscedasticity")
}

func TestFit_InsufficientData(t *testing.T) {
	ds := dataset(t, map[string][]float64{
		"x1": {1, 2, 3},
		"x2": {2, 1, 5},
		"y":  {1, 2, 3},
	})

	_, err := regress.Fit(ds, "y", []string{"x1", "x2"}, "tiny")
	var derr *domain.InsufficientDataError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 3, derr.Rows)
	assert.Equal(t, 4, derr.Required)
}

func TestFit_RejectsBadVariableSets(t *testing.T) {
	ds := dataset(t, map[string][]float64{
		"x": {1, 2, 3, 4},
		"y": {1, 2, 3, 5},
	})

	_, err := regress.Fit(ds, "y", nil, "none")
	assert.Error(t, err)

	_, err = regress.Fit(ds, "y", []string{"y"}, "self")
	assert.Error(t, err)

	_, err = regress.Fit(ds, "y", []string{"x", "x"}, "dup")
	assert.Error(t, err)

	_, err = regress.Fit(ds, "y", []string{"x"}, "")
	assert.Error(t, err)

	_, err = regress.Fit(ds, "y", []string{"ghost"}, "unknown")
	var ierr *domain.InvalidVariableError
	assert.ErrorAs(t, err, &ierr)
}

func TestFit_Deterministic(t *testing.T) {
	ds := dataset(t, map[string][]float64{
		"x1": {1, 2, 3, 4, 5, 6, 7, 8},
		"x2": {3, 1, 4, 1, 5, 9, 2, 6},
		"y":  {2.1, 3.9, 6.2, 7.8, 10.1, 12.2, 13.8, 16.1},
	})

	first, err := regress.Fit(ds, "y", []string{"x1", "x2"}, "run")
	require.NoError(t, err)
	second, err := regress.Fit(ds, "y", []string{"x1", "x2"}, "run")
	require.NoError(t, err)
	assert.Equal(t, first, second, "same inputs must produce identical models")
}

func TestFit_ConditionNumberLimitOption(t *testing.T) {
	ds := dataset(t, map[string][]float64{
		"x": {1, 2, 3, 4, 5},
		"y": {2, 4, 5, 4, 5},
	})

	model, err := regress.Fit(ds, "y", []string{"x"}, "strict",
		regress.WithConditionNumberLimit(1))
	require.NoError(t, err)
	require.NotEmpty(t, model.Warnings)
	assert.Contains(t, model.Warnings[0], "multicollinearity")
}
