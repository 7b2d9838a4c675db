package sqlite

import (
	"testing"

	"github.com/kovnat/sapodataoperator/pkg/resulttable"
)

func openTestSink(t *testing.T) *Sink {
	t.Helper()
	s := New(":memory:")
	if err := s.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSink_EnsureAndWrite(t *testing.T) {
	s := openTestSink(t)

	tbl := resulttable.FromRecords([]string{"name", "city"}, []resulttable.Row{
		{"name": "Alice", "city": "Berlin"},
		{"name": "Bob", "city": "Hamburg"},
	})
	if err := s.Ensure("customers", tbl.Columns); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	n, err := s.Write("customers", tbl)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows written, got %d", n)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM "customers"`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 stored rows, got %d", count)
	}

	var city string
	if err := s.db.QueryRow(`SELECT "city" FROM "customers" WHERE "name" = ?`, "Alice").Scan(&city); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if city != "Berlin" {
		t.Fatalf("expected Berlin, got %q", city)
	}
}

func TestSink_WriteEmptyTable(t *testing.T) {
	s := openTestSink(t)
	tbl := resulttable.New([]string{"a"})
	if err := s.Ensure("empty", tbl.Columns); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	n, err := s.Write("empty", tbl)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows, got %d", n)
	}
}

func TestSink_EnsureIsIdempotent(t *testing.T) {
	s := openTestSink(t)
	for i := 0; i < 2; i++ {
		if err := s.Ensure("twice", []string{"x"}); err != nil {
			t.Fatalf("ensure run %d failed: %v", i+1, err)
		}
	}
}

func TestDialect_Statements(t *testing.T) {
	d := NewDialect()
	ensure := d.EnsureStatement("t", []string{"a", "b"})
	if ensure != `CREATE TABLE IF NOT EXISTS "t" ("a" TEXT, "b" TEXT)` {
		t.Fatalf("unexpected ensure statement: %s", ensure)
	}
	ins := d.InsertStatement("t", []string{"a", "b"})
	if ins != `INSERT INTO "t"("a", "b") VALUES(?,?)` {
		t.Fatalf("unexpected insert statement: %s", ins)
	}
}
