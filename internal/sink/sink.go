package sink

import (
	"fmt"
	"strings"

	"github.com/kovnat/sapodataoperator/internal/sink/postgres"
	"github.com/kovnat/sapodataoperator/internal/sink/sqlite"
	"github.com/kovnat/sapodataoperator/pkg/resulttable"
)

// Config selects and configures a sink driver.
type Config struct {
	Driver string `mapstructure:"driver" yaml:"driver"` // "sqlite" or "postgres"
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
	Table  string `mapstructure:"table" yaml:"table"`
}

// Sink materializes a Result Table into an external store. The fetch task
// itself never writes anywhere; sinks are a caller-side concern.
type Sink interface {
	Connect() error
	// Ensure creates the target table with the given text columns when it
	// does not exist yet.
	Ensure(table string, columns []string) error
	// Write inserts all rows of the table and returns the row count.
	Write(table string, t *resulttable.Table) (int, error)
	Close() error
}

// Open returns a connected sink for the configured driver.
func Open(cfg Config) (Sink, error) {
	var s Sink
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "sqlite":
		s = sqlite.New(cfg.DSN)
	case "postgres", "postgresql":
		s = postgres.New(cfg.DSN)
	default:
		return nil, fmt.Errorf("sink: unsupported driver %q", cfg.Driver)
	}
	if err := s.Connect(); err != nil {
		return nil, err
	}
	return s, nil
}
