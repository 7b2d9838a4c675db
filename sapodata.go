package sapodataoperator

import (
	"context"

	"github.com/kovnat/sapodataoperator/internal/common"
	"github.com/kovnat/sapodataoperator/internal/connection"
	"github.com/kovnat/sapodataoperator/internal/fetch"
	"github.com/kovnat/sapodataoperator/pkg/resulttable"
)

// Re-export commonly used types for public API

// Spec describes one fetch: the service URL, the selector (function or
// entity with optional navigation property), the parameters and the
// transport provider.
type Spec = fetch.Spec

// Task executes one fetch pipeline per invocation.
type Task = fetch.Task

// Step identifies the pipeline stage carried by an ExecutionError.
type Step = fetch.Step

// ExecutionError is the single composite failure surfaced by Execute.
type ExecutionError = fetch.ExecutionError

// Table is the uniform list-of-rows output of a fetch.
type Table = resulttable.Table

// Row is a single record of a Table.
type Row = resulttable.Row

// Connection is a named connection configuration (base URL plus credentials).
type Connection = connection.Config

// ConnectionAuth selects the credential type of a Connection.
type ConnectionAuth = connection.AuthConfig

// Hook is a transport handle with a mutable base URL and scoped sessions.
type Hook = connection.Hook

// Registry resolves connection ids to Hooks.
type Registry = connection.Registry

// Error sentinels of the fetch pipeline.
var (
	ErrConfiguration        = fetch.ErrConfiguration
	ErrTransportUnavailable = fetch.ErrTransportUnavailable
	ErrUnknownConnection    = connection.ErrUnknownConnection
)

// NewHook builds a transport Hook from a connection configuration.
func NewHook(cfg Connection) *Hook { return connection.NewHook(cfg) }

// NewRegistry returns an empty connection registry.
func NewRegistry() *Registry { return connection.NewRegistry() }

// NewTask validates the spec eagerly and returns a Task. The registry may be
// nil when the spec carries a pre-built Hook.
func NewTask(spec Spec, registry *Registry) (*Task, error) {
	return fetch.New(spec, registry)
}

// Fetch is a convenience wrapper: validate, execute once, return the table.
func Fetch(ctx context.Context, spec Spec, registry *Registry) (*Table, error) {
	t, err := fetch.New(spec, registry)
	if err != nil {
		return nil, err
	}
	return t.Execute(ctx)
}

// SetLogging replaces the default logger. Format "json" selects JSON output;
// anything else selects text.
func SetLogging(level, format string) {
	l := common.ParseLogLevel(level)
	if format == "json" {
		common.SetDefaultLogger(common.NewJSONLogger(l))
		return
	}
	common.SetDefaultLogger(common.NewLogger(l))
}
