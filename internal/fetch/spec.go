package fetch

import (
	"fmt"
	"strings"

	"github.com/kovnat/sapodataoperator/internal/connection"
)

// Spec is the immutable description of one fetch: where to ask, what to ask
// for, and how to reach the service. Exactly one of Function and Entity is
// used; when both are set Function wins and Entity is ignored.
type Spec struct {
	// ServiceURL is the absolute URL of the OData service. Required.
	ServiceURL string `mapstructure:"service_url" yaml:"service_url"`
	// Function names a function import providing the data.
	Function string `mapstructure:"function" yaml:"function"`
	// Entity names an entity set providing the data.
	Entity string `mapstructure:"entity" yaml:"entity"`
	// Property is the navigation property traversed on the entity path.
	// Defaults to Entity when empty.
	Property string `mapstructure:"property" yaml:"property"`
	// Parameters are bound as function parameters or as the entity key
	// predicate, depending on the selector.
	Parameters map[string]any `mapstructure:"parameters" yaml:"parameters"`

	// Hook is a pre-built transport handle. When set, ConnectionID is
	// ignored.
	Hook *connection.Hook `mapstructure:"-" yaml:"-"`
	// ConnectionID names a registered connection used to build a hook when
	// none is supplied.
	ConnectionID string `mapstructure:"connection_id" yaml:"connection_id"`
}

// Validate checks the Spec eagerly; it fails fast before any network
// activity. Transport availability is deliberately not checked here: the
// hook-vs-id fallback is resolved at execution time.
func (s *Spec) Validate() error {
	if strings.TrimSpace(s.ServiceURL) == "" {
		return fmt.Errorf("%w: service_url must be provided", ErrConfiguration)
	}
	if strings.TrimSpace(s.Function) == "" && strings.TrimSpace(s.Entity) == "" {
		return fmt.Errorf("%w: either function or entity must be provided", ErrConfiguration)
	}
	return nil
}

// property returns the effective navigation property for the entity path.
func (s *Spec) property() string {
	if strings.TrimSpace(s.Property) == "" {
		return s.Entity
	}
	return s.Property
}
