package resulttable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Row is a single record: column name to value.
type Row map[string]any

// Table is the uniform list-of-rows output of a fetch: an ordered column set
// plus zero or more rows. A Table is always usable; the zero value is an empty
// table.
type Table struct {
	Columns []string
	Rows    []Row
}

// New returns an empty table with the given column order.
func New(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...), Rows: []Row{}}
}

// FromRecords builds a table from pre-shaped rows. The column order is taken
// from the columns argument; rows are used verbatim. A nil or empty record
// list yields an empty table.
func FromRecords(columns []string, records []Row) *Table {
	t := New(columns)
	for _, r := range records {
		t.Rows = append(t.Rows, r)
	}
	return t
}

// Append adds one row.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Values returns the row's values in column order, stringified.
func (t *Table) Values(r Row) []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, ValueString(r[c]))
	}
	return out
}

// String renders a compact preview of the table for logs: the header row and
// up to ten data rows.
func (t *Table) String() string {
	if t == nil {
		return "(nil table)"
	}
	var b strings.Builder
	b.WriteString(strings.Join(t.Columns, " | "))
	b.WriteString("\n")
	const previewRows = 10
	for i, r := range t.Rows {
		if i == previewRows {
			fmt.Fprintf(&b, "... (%d more rows)\n", len(t.Rows)-previewRows)
			break
		}
		b.WriteString(strings.Join(t.Values(r), " | "))
		b.WriteString("\n")
	}
	return b.String()
}

// ValueString converts an arbitrary cell value to its string form. Integers
// avoid scientific notation; nil becomes the empty string; composites fall
// back to JSON.
func ValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		b = bytes.TrimSpace(b)
		if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
			return string(b[1 : len(b)-1])
		}
		return string(b)
	}
}
