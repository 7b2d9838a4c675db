package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kovnat/sapodataoperator/internal/common"
	"github.com/kovnat/sapodataoperator/pkg/resulttable"
)

// Sink writes Result Tables into a PostgreSQL database.
type Sink struct {
	DSN     string
	db      *sql.DB
	dialect *Dialect
}

// New creates a PostgreSQL sink for the given DSN.
func New(dsn string) *Sink {
	return &Sink{DSN: dsn, dialect: NewDialect()}
}

// Connect opens the database connection.
func (s *Sink) Connect() error {
	if s.DSN == "" {
		return fmt.Errorf("postgres sink requires a dsn")
	}
	db, err := s.dialect.Connect(s.DSN)
	if err != nil {
		return err
	}
	s.db = db

	logger := common.GetLogger().WithSink("postgres")
	logger.Debug("postgres sink connection established")
	return nil
}

// Close closes the database connection.
func (s *Sink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure creates the target table with text columns when missing.
func (s *Sink) Ensure(table string, columns []string) error {
	q := s.dialect.EnsureStatement(table, columns)
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("failed to ensure sink table %s: %w", table, err)
	}
	return nil
}

// Write inserts all rows of the table.
func (s *Sink) Write(table string, t *resulttable.Table) (int, error) {
	logger := common.GetLogger().WithSink("postgres")
	if t.Empty() {
		logger.Debug("nothing to write, table is empty", "table", table)
		return 0, nil
	}

	q := s.dialect.InsertStatement(table, t.Columns)
	stmt, err := s.db.Prepare(q)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare sink insert for %s: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	n := 0
	for _, row := range t.Rows {
		vals := t.Values(row)
		args := make([]any, len(vals))
		for i, v := range vals {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return n, fmt.Errorf("failed to insert row into %s: %w", table, err)
		}
		n++
	}

	logger.Info("result table written", "table", table, "rows", n)
	return n, nil
}
