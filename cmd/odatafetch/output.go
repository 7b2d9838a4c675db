package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kovnat/sapodataoperator/pkg/resulttable"
)

// emit writes the result table to w in the requested format. "csv" and
// "json" are machine formats; anything else renders the compact preview.
func emit(w io.Writer, format string, tbl *resulttable.Table) error {
	switch format {
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write(tbl.Columns); err != nil {
			return err
		}
		for _, row := range tbl.Rows {
			if err := cw.Write(tbl.Values(row)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case "json":
		doc := struct {
			Columns []string          `json:"columns"`
			Rows    []resulttable.Row `json:"rows"`
		}{Columns: tbl.Columns, Rows: tbl.Rows}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "", "table":
		_, err := fmt.Fprint(w, tbl.String())
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
