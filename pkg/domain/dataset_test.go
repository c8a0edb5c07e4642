package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olstudio/olstudio/pkg/domain"
)

func numbers(vals ...float64) []map[string]domain.Value {
	records := make([]map[string]domain.Value, len(vals))
	for i, v := range vals {
		records[i] = map[string]domain.Value{"x": domain.NewNumber(v)}
	}
	return records
}

func TestNewDataset_RejectsBadColumns(t *testing.T) {
	_, err := domain.NewDataset([]string{"a", ""})
	assert.Error(t, err)

	_, err = domain.NewDataset([]string{"a", "a"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "a", verr.Column)
}

func TestDataset_AppendRow(t *testing.T) {
	ds, err := domain.NewDataset([]string{"x", "y"})
	require.NoError(t, err)

	require.NoError(t, ds.AppendRow(map[string]domain.Value{"x": domain.NewNumber(1)}))
	assert.Equal(t, 1, ds.NumRows())

	// Absent keys become missing.
	row, ok := ds.Row(0)
	require.True(t, ok)
	assert.True(t, row["y"].IsMissing())

	// Unknown keys are rejected.
	err = ds.AppendRow(map[string]domain.Value{"z": domain.NewNumber(2)})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "z", verr.Column)
}

func TestDataset_NumericColumn(t *testing.T) {
	ds, err := domain.FromRecords([]string{"x"}, numbers(1, 2, 3))
	require.NoError(t, err)

	nums, err := ds.NumericColumn("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, nums)

	_, err = ds.NumericColumn("unknown")
	var ierr *domain.InvalidVariableError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "unknown", ierr.Variable)
}

func TestDataset_NumericColumn_RejectsTextAndMissing(t *testing.T) {
	ds, err := domain.FromRecords([]string{"a", "b"}, []map[string]domain.Value{
		{"a": domain.NewText("red"), "b": domain.NewNumber(1)},
		{"a": domain.NewNumber(2), "b": domain.Missing()},
	})
	require.NoError(t, err)

	_, err = ds.NumericColumn("a")
	var ierr *domain.InvalidVariableError
	require.ErrorAs(t, err, &ierr)
	assert.Contains(t, ierr.Reason, "non-numeric")

	_, err = ds.NumericColumn("b")
	require.ErrorAs(t, err, &ierr)
	assert.Contains(t, ierr.Reason, "missing")
}

func TestDataset_CloneIsolation(t *testing.T) {
	ds, err := domain.FromRecords([]string{"x"}, numbers(1, 2))
	require.NoError(t, err)

	cp := ds.Clone()
	require.NoError(t, cp.AppendRow(map[string]domain.Value{"x": domain.NewNumber(3)}))

	assert.Equal(t, 2, ds.NumRows())
	assert.Equal(t, 3, cp.NumRows())
}

func TestDataset_Head(t *testing.T) {
	ds, err := domain.FromRecords([]string{"x"}, numbers(1, 2, 3))
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Head(2).NumRows())
	assert.Equal(t, 3, ds.Head(10).NumRows())
	assert.Equal(t, 0, ds.Head(-1).NumRows())
}

func TestDataset_JSONRoundTrip(t *testing.T) {
	ds, err := domain.FromRecords([]string{"x", "label"}, []map[string]domain.Value{
		{"x": domain.NewNumber(1), "label": domain.NewText("a")},
		{"x": domain.Missing(), "label": domain.NewText("b")},
	})
	require.NoError(t, err)

	raw, err := json.Marshal(ds)
	require.NoError(t, err)

	var decoded domain.Dataset
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, ds.Columns(), decoded.Columns())
	assert.Equal(t, ds.NumRows(), decoded.NumRows())

	row, ok := decoded.Row(1)
	require.True(t, ok)
	assert.True(t, row["x"].IsMissing())
}
