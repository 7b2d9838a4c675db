package connection

import (
	"errors"
	"fmt"
	"strings"
)

// Config describes a named connection as declared in configuration. It is the
// analog of an orchestrator connection entry: a base address plus the
// credential material needed to open sessions against it.
type Config struct {
	BaseURL string            `mapstructure:"base_url" yaml:"base_url"`
	Auth    AuthConfig        `mapstructure:"auth" yaml:"auth"`
	Headers map[string]string `mapstructure:"headers" yaml:"headers"`
	// Explicit TLS options only
	Insecure      bool   `mapstructure:"insecure" yaml:"insecure"`
	MinTLSVersion string `mapstructure:"min_tls_version" yaml:"min_tls_version"`
	MaxTLSVersion string `mapstructure:"max_tls_version" yaml:"max_tls_version"`
}

// AuthConfig selects the credential type for a connection.
type AuthConfig struct {
	// Type is the credential provider key: "none", "basic" or
	// "oauth2_client_credentials". Empty means none.
	Type string `mapstructure:"type" yaml:"type"`
	// basic
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	// oauth2 client credentials
	ClientID     string   `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string   `mapstructure:"client_secret" yaml:"client_secret"`
	TokenURL     string   `mapstructure:"token_url" yaml:"token_url"`
	Scopes       []string `mapstructure:"scopes" yaml:"scopes"`
}

// ErrUnknownConnection is returned when a connection id is not registered.
var ErrUnknownConnection = errors.New("connection: unknown connection id")

// Registry resolves connection ids to Hooks. It plays the role of the
// orchestrator's connection registry for standalone runs.
type Registry struct {
	conns map[string]Config
}

func NewRegistry() *Registry {
	return &Registry{conns: map[string]Config{}}
}

// Register adds or replaces a named connection.
func (r *Registry) Register(id string, cfg Config) {
	r.conns[strings.TrimSpace(id)] = cfg
}

// Hook builds a transport Hook from a registered connection id.
func (r *Registry) Hook(id string) (*Hook, error) {
	id = strings.TrimSpace(id)
	cfg, ok := r.conns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnection, id)
	}
	return NewHook(cfg), nil
}

// IDs returns the registered connection ids (unordered).
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.conns))
	for id := range r.conns {
		out = append(out, id)
	}
	return out
}
