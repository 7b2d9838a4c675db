package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const (
	busyTimeoutMS = 5000
)

// Dialect implements SQL dialect details for SQLite.
type Dialect struct{}

func NewDialect() *Dialect {
	return &Dialect{}
}

// Connect opens an SQLite database with conservative pool settings (SQLite
// allows only one writer).
func (d *Dialect) Connect(dsn string) (*sql.DB, error) {
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_busy_timeout=%d", dsn, busyTimeoutMS)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(10 * time.Minute)
	return db, nil
}

// QuoteIdent quotes a table or column identifier.
func (d *Dialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// EnsureStatement builds the CREATE TABLE IF NOT EXISTS statement with text
// columns.
func (d *Dialect) EnsureStatement(table string, columns []string) string {
	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, d.QuoteIdent(c)+" TEXT")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.QuoteIdent(table), strings.Join(cols, ", "))
}

// InsertStatement builds the INSERT statement with ?-placeholders.
func (d *Dialect) InsertStatement(table string, columns []string) string {
	cols := make([]string, 0, len(columns))
	marks := make([]string, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, d.QuoteIdent(c))
		marks = append(marks, "?")
	}
	return fmt.Sprintf("INSERT INTO %s(%s) VALUES(%s)",
		d.QuoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ","))
}
