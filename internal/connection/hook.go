package connection

import (
	"context"
	"errors"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/kovnat/sapodataoperator/internal/httpc"
	"golang.org/x/oauth2/clientcredentials"
)

// Hook is a transport handle: a session factory with a mutable BaseURL. The
// fetch task rewrites BaseURL to the target service host before opening a
// session, so a generically configured connection can be redirected without
// touching its credentials.
type Hook struct {
	BaseURL string

	auth    AuthConfig
	headers map[string]string
	tls     tlsOptions
}

type tlsOptions struct {
	insecure   bool
	minVersion string
	maxVersion string
}

// NewHook builds a Hook from a connection config.
func NewHook(cfg Config) *Hook {
	return &Hook{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		auth:    cfg.Auth,
		headers: cfg.Headers,
		tls: tlsOptions{
			insecure:   cfg.Insecure,
			minVersion: cfg.MinTLSVersion,
			maxVersion: cfg.MaxTLSVersion,
		},
	}
}

// Session is a scoped HTTP session. Close releases idle transport resources;
// callers are expected to defer it on every exit path.
type Session struct {
	client *resty.Client
}

// Client exposes the underlying resty client for request building.
func (s *Session) Client() *resty.Client {
	return s.client
}

// Close releases the session.
func (s *Session) Close() {
	if s == nil || s.client == nil {
		return
	}
	s.client.GetClient().CloseIdleConnections()
}

// GetConn opens a session bound to the hook's BaseURL with the configured
// credentials applied. Each call returns an independent session; the hook
// itself holds no open resources.
func (h *Hook) GetConn(ctx context.Context) (*Session, error) {
	if h == nil {
		return nil, errors.New("connection: nil hook")
	}
	hc := httpc.Httpc{TlsConfig: httpc.FromOptions(h.tls.insecure, h.tls.minVersion, h.tls.maxVersion)}
	c := hc.New()
	if h.BaseURL != "" {
		c.SetBaseURL(h.BaseURL)
	}
	for k, v := range h.headers {
		c.SetHeader(k, v)
	}
	if err := applyCredential(ctx, c, h.auth); err != nil {
		return nil, err
	}
	return &Session{client: c}, nil
}

// applyCredential configures the client according to the connection's
// credential type.
func applyCredential(ctx context.Context, c *resty.Client, a AuthConfig) error {
	switch strings.ToLower(strings.TrimSpace(a.Type)) {
	case "", "none":
		return nil
	case "basic":
		u := strings.TrimSpace(a.Username)
		p := a.Password
		if u == "" || p == "" {
			return errors.New("connection: basic auth requires username and password")
		}
		c.SetBasicAuth(u, p)
		return nil
	case "oauth2_client_credentials":
		if strings.TrimSpace(a.TokenURL) == "" || strings.TrimSpace(a.ClientID) == "" {
			return errors.New("connection: oauth2 client credentials require token_url and client_id")
		}
		cc := clientcredentials.Config{
			ClientID:     a.ClientID,
			ClientSecret: a.ClientSecret,
			TokenURL:     a.TokenURL,
			Scopes:       a.Scopes,
		}
		tok, err := cc.Token(ctx)
		if err != nil {
			return err
		}
		c.SetAuthToken(tok.AccessToken)
		return nil
	default:
		return errors.New("connection: unsupported auth type: " + a.Type)
	}
}
