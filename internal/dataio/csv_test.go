package dataio_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olstudio/olstudio/internal/dataio"
)

func TestReadCSV(t *testing.T) {
	in := strings.Join([]string{
		"x, label ,y",
		"1,red,10",
		"2,blue,NA",
		"3,red,30",
	}, "\n")

	ds, err := dataio.ReadCSV(strings.NewReader(in), ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "label", "y"}, ds.Columns())
	assert.Equal(t, 3, ds.NumRows())

	nums, err := ds.NumericColumn("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, nums)

	row, ok := ds.Row(1)
	require.True(t, ok)
	assert.True(t, row["y"].IsMissing(), "NA normalizes to missing")
	label, isText := row["label"].Text()
	require.True(t, isText)
	assert.Equal(t, "blue", label)
}

func TestReadCSV_ShortRowsPadded(t *testing.T) {
	in := "a,b,c\n1,2,3\n4,5\n6\n"

	ds, err := dataio.ReadCSV(strings.NewReader(in), ',')
	require.NoError(t, err)
	require.Equal(t, 3, ds.NumRows())

	row, _ := ds.Row(1)
	assert.True(t, row["c"].IsMissing())
	row, _ = ds.Row(2)
	assert.True(t, row["b"].IsMissing())
	assert.True(t, row["c"].IsMissing())
}

func TestReadCSV_EmptyFile(t *testing.T) {
	_, err := dataio.ReadCSV(strings.NewReader(""), ',')
	assert.Error(t, err)
}

func TestReadCSV_DuplicateHeader(t *testing.T) {
	_, err := dataio.ReadCSV(strings.NewReader("a,a\n1,2\n"), ',')
	assert.Error(t, err)
}

func TestLoadCSVFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("x,y\n1,2\n"), 0o644))
	ds, err := dataio.LoadCSVFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.NumRows())

	tsvPath := filepath.Join(dir, "data.tsv")
	require.NoError(t, os.WriteFile(tsvPath, []byte("x\ty\n1\t2\n"), 0o644))
	ds, err = dataio.LoadCSVFile(tsvPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ds.Columns())

	_, err = dataio.LoadCSVFile(filepath.Join(dir, "absent.csv"))
	assert.Error(t, err)
}
