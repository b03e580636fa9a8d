// Package dataset loads CSV datasets into an ordered, read-only table of
// string cells and validates their column schema.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
)

// Sentinel errors for dataset operations.
var (
	ErrLoad          = errors.New("failed to load dataset")
	ErrUnknownColumn = errors.New("unknown column")
)

// Row maps a column name to its cell value.
type Row map[string]string

// Dataset is an ordered sequence of rows with a fixed column order.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// LoadOptions configures CSV parsing.
type LoadOptions struct {
	Comma            rune // 0 = ','
	TrimLeadingSpace bool
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Column returns the values of the named column in row order.
func (d *Dataset) Column(name string) ([]string, error) {
	if !d.HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r[name]
	}
	return out, nil
}

// HasColumn reports whether name is one of the dataset's columns.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Load reads the CSV file at path. Every column is kept as text; empty
// cells become "".
func Load(ctx context.Context, path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path) // #nosec G304 -- path resolved by caller
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = f.Close() }()

	csvOpts := imports.CSVLoadOptions{
		Comma:            opts.Comma,
		TrimLeadingSpace: opts.TrimLeadingSpace,
	}
	if csvOpts.Comma == 0 {
		csvOpts.Comma = ','
	}

	df, err := imports.LoadFromCSV(ctx, f, csvOpts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	return fromDataFrame(df), nil
}

// utf8BOM is written at the start of CSV files by spreadsheet exports.
const utf8BOM = "\ufeff"

// fromDataFrame copies a dataframe into a Dataset. A byte order mark on the
// first column name is dropped.
func fromDataFrame(df *dataframe.DataFrame) *Dataset {
	names := append([]string(nil), df.Names()...)
	if len(names) > 0 {
		names[0] = strings.TrimPrefix(names[0], utf8BOM)
	}
	n := df.NRows()

	ds := &Dataset{
		Columns: names,
		Rows:    make([]Row, n),
	}
	for i := 0; i < n; i++ {
		ds.Rows[i] = make(Row, len(names))
	}

	for col, s := range df.Series {
		name := names[col]
		for i := 0; i < n; i++ {
			ds.Rows[i][name] = cellString(s.Value(i))
		}
	}
	return ds
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	default:
		return fmt.Sprint(val)
	}
}
