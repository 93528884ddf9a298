package errors

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns absent from an input table
// it is the only hard failure of a classification run
type SchemaError struct {
	Missing  []string
	Required []string // the full required set named in the message; Missing when empty
}

// NewSchema returns a *SchemaError for the given missing columns
func NewSchema(missing ...string) error {
	return &SchemaError{Missing: append([]string(nil), missing...)}
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e == nil {
		return "<nil>"
	}
	named := e.Required
	if len(named) == 0 {
		named = e.Missing
	}
	quoted := make([]string, len(named))
	for i, m := range named {
		quoted[i] = fmt.Sprintf("'%s'", m)
	}
	return "CSV must contain " + strings.Join(quoted, " and ") + " columns"
}

func (e *SchemaError) fieldList() string { return strings.Join(e.Missing, ",") }
