package domain

import (
	"encoding/json"
	"fmt"
)

// Dataset is a tabular dataset: an ordered sequence of uniquely named
// columns and a sequence of rows. Values are stored column-major since
// every engine works column-wise. Column order is display order only;
// it carries no computational meaning.
type Dataset struct {
	columns []string
	data    map[string][]Value
	rows    int
}

// NewDataset creates an empty dataset with the given column order.
// Column names must be unique and non-empty.
func NewDataset(columns []string) (*Dataset, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if c == "" {
			return nil, &ValidationError{Reason: "empty column name"}
		}
		if _, dup := seen[c]; dup {
			return nil, &ValidationError{Column: c, Reason: "duplicate column name"}
		}
		seen[c] = struct{}{}
	}
	d := &Dataset{
		columns: append([]string(nil), columns...),
		data:    make(map[string][]Value, len(columns)),
	}
	for _, c := range d.columns {
		d.data[c] = nil
	}
	return d, nil
}

// FromRecords builds a dataset from row records. Keys absent from a record
// become missing values; unknown keys are rejected.
func FromRecords(columns []string, records []map[string]Value) (*Dataset, error) {
	d, err := NewDataset(columns)
	if err != nil {
		return nil, err
	}
	for i, rec := range records {
		if err := d.AppendRow(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return d, nil
}

// AppendRow adds one record. Columns absent from the record get a missing
// value; keys that are not dataset columns are an error.
func (d *Dataset) AppendRow(record map[string]Value) error {
	for k := range record {
		if _, ok := d.data[k]; !ok {
			return &ValidationError{Column: k, Reason: "unknown column"}
		}
	}
	for _, c := range d.columns {
		d.data[c] = append(d.data[c], record[c])
	}
	d.rows++
	return nil
}

// Columns returns the column names in display order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int { return d.rows }

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int { return len(d.columns) }

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.data[name]
	return ok
}

// Column returns a copy of the named column, preserving row order.
func (d *Dataset) Column(name string) ([]Value, bool) {
	col, ok := d.data[name]
	if !ok {
		return nil, false
	}
	return append([]Value(nil), col...), true
}

// Row returns the record at the given index.
func (d *Dataset) Row(i int) (map[string]Value, bool) {
	if i < 0 || i >= d.rows {
		return nil, false
	}
	rec := make(map[string]Value, len(d.columns))
	for _, c := range d.columns {
		rec[c] = d.data[c][i]
	}
	return rec, true
}

// NumericColumn extracts the named column as float64s. It fails with an
// InvalidVariableError if the column is unknown, contains text, or still
// contains missing values; numeric analyses never skip bad cells silently.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	col, ok := d.data[name]
	if !ok {
		return nil, &InvalidVariableError{Variable: name, Reason: "unknown column"}
	}
	out := make([]float64, len(col))
	for i, v := range col {
		f, isNum := v.Float()
		if !isNum {
			reason := "contains non-numeric values"
			if v.IsMissing() {
				reason = "contains missing values"
			}
			return nil, &InvalidVariableError{Variable: name, Reason: reason}
		}
		out[i] = f
	}
	return out, nil
}

// Clone returns a deep copy. Sessions hand out clones so no caller can
// mutate stored state through a retained reference.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	cp := &Dataset{
		columns: append([]string(nil), d.columns...),
		data:    make(map[string][]Value, len(d.columns)),
		rows:    d.rows,
	}
	for c, col := range d.data {
		cp.data[c] = append([]Value(nil), col...)
	}
	return cp
}

// Head returns a copy holding at most n leading rows, used for previews.
func (d *Dataset) Head(n int) *Dataset {
	if n > d.rows {
		n = d.rows
	}
	if n < 0 {
		n = 0
	}
	cp := &Dataset{
		columns: append([]string(nil), d.columns...),
		data:    make(map[string][]Value, len(d.columns)),
		rows:    n,
	}
	for c, col := range d.data {
		cp.data[c] = append([]Value(nil), col[:n]...)
	}
	return cp
}

// datasetJSON is the wire shape of a Dataset.
type datasetJSON struct {
	Columns []string           `json:"columns"`
	Rows    []map[string]Value `json:"rows"`
}

// MarshalJSON encodes the dataset as {columns, rows}, the only externally
// meaningful format of the pipeline.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	out := datasetJSON{Columns: d.Columns(), Rows: make([]map[string]Value, 0, d.rows)}
	for i := 0; i < d.rows; i++ {
		rec, _ := d.Row(i)
		out.Rows = append(out.Rows, rec)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the {columns, rows} shape.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var in datasetJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	parsed, err := FromRecords(in.Columns, in.Rows)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}
