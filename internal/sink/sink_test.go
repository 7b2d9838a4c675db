package sink

import "testing"

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpen_Sqlite(t *testing.T) {
	s, err := Open(Config{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = s.Close() }()
	if err := s.Ensure("t", []string{"a"}); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
}
