// Package table reads and writes the row oriented CSV tables the pipeline consumes and produces
package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	perr "reviewlens/internal/platform/errors"
)

const bom = "\ufeff"

// Table is a header plus rows; every row has exactly len(Header) cells
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of the first header named col, or -1
func (t *Table) Index(col string) int {
	for i, h := range t.Header {
		if h == col {
			return i
		}
	}
	return -1
}

// Has reports whether col is a header
func (t *Table) Has(col string) bool { return t.Index(col) >= 0 }

// RequireColumns returns a schema error listing every absent column, in argument order
func (t *Table) RequireColumns(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		// message names the full required set, field lists what was absent
		return &perr.SchemaError{Missing: missing, Required: cols}
	}
	return nil
}

// Read parses a CSV document with a header row.
// A UTF-8 BOM on the first header is dropped, blank lines are skipped, short rows are padded
// with empty cells and a row longer than the header rejects the whole document
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, perr.Validationf("CSV is empty")
	}
	if err != nil {
		return nil, malformed(err)
	}
	header[0] = strings.TrimPrefix(header[0], bom)

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}
		switch {
		case len(rec) > len(header):
			line, _ := cr.FieldPos(0)
			return nil, perr.Validationf("CSV line %d has %d fields, header has %d", line, len(rec), len(header))
		case len(rec) < len(header):
			rec = append(rec, make([]string, len(header)-len(rec))...)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// ReadBytes is Read over an in memory document
func ReadBytes(b []byte) (*Table, error) { return Read(bytes.NewReader(b)) }

func malformed(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return perr.Wrapf(err, perr.ErrorCodeValidation, "malformed CSV at line %d", pe.Line)
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "malformed CSV")
}

// Write encodes t as CSV with a header row
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("table: write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("table: write rows: %w", err)
	}
	return nil
}

// Bytes is Write into a buffer
func (t *Table) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
