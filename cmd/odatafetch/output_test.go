package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kovnat/sapodataoperator/pkg/resulttable"
)

func sampleTable() *resulttable.Table {
	return resulttable.FromRecords([]string{"id", "total"}, []resulttable.Row{
		{"id": float64(1), "total": float64(100)},
		{"id": float64(2), "total": float64(50)},
	})
}

func TestEmit_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := emit(&buf, "csv", sampleTable()); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	want := "id,total\n1,100\n2,50\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestEmit_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := emit(&buf, "json", sampleTable()); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	var doc struct {
		Columns []string         `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(doc.Columns) != 2 || len(doc.Rows) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Rows[0]["id"] != float64(1) {
		t.Fatalf("unexpected first row: %v", doc.Rows[0])
	}
}

func TestEmit_TablePreviewDefault(t *testing.T) {
	var buf bytes.Buffer
	if err := emit(&buf, "", sampleTable()); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "id | total\n") {
		t.Fatalf("unexpected preview: %q", buf.String())
	}
}

func TestEmit_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := emit(&buf, "xml", sampleTable()); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
