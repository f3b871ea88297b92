package dataset

import (
	"fmt"
	"strings"
)

// SchemaError reports a sheet or required column that could not be resolved.
// The merge cannot proceed without the join key and the name field, so the
// caller is expected to abort before any output is written.
type SchemaError struct {
	Kind      string   // "sheet" or "column"
	Missing   string   // the logical name that was wanted
	Available []string // what the workbook actually offered
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing %s %q, available: %s",
		e.Kind, e.Missing, strings.Join(e.Available, ", "))
}
