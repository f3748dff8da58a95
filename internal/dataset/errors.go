package dataset

import "fmt"

// ColumnNotFoundError indicates the requested column is absent from the dataset.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found (available: %v)", e.Column, e.Available)
}

// CoercionError indicates a non-missing cell could not be read as the requested kind.
type CoercionError struct {
	Column string
	Row    int
	Value  string
	Kind   Kind
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot read %q as %s", e.Column, e.Row, e.Value, e.Kind)
}

// UnsupportedFormatError indicates no loader handles the file.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported dataset format: %s (use .csv, .tsv, .xlsx, .db, .sqlite)", e.Path)
}
