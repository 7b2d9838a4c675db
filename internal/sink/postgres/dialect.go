package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Dialect implements SQL dialect details for PostgreSQL.
type Dialect struct{}

func NewDialect() *Dialect {
	return &Dialect{}
}

// Connect opens a PostgreSQL database with connection pooling.
func (d *Dialect) Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return db, nil
}

// QuoteIdent quotes a table or column identifier.
func (d *Dialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Placeholder returns $n-style placeholders.
func (d *Dialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
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

// InsertStatement builds the INSERT statement with $n placeholders.
func (d *Dialect) InsertStatement(table string, columns []string) string {
	cols := make([]string, 0, len(columns))
	marks := make([]string, 0, len(columns))
	for i, c := range columns {
		cols = append(cols, d.QuoteIdent(c))
		marks = append(marks, d.Placeholder(i+1))
	}
	return fmt.Sprintf("INSERT INTO %s(%s) VALUES(%s)",
		d.QuoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ","))
}
