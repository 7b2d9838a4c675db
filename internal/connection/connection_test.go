package connection

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegistry_HookUnknownID(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Hook("missing"); !errors.Is(err, ErrUnknownConnection) {
		t.Fatalf("expected ErrUnknownConnection, got %v", err)
	}
}

func TestRegistry_HookKnownID(t *testing.T) {
	r := NewRegistry()
	r.Register("sap_default", Config{BaseURL: "http://gw.example.com:8000/"})
	h, err := r.Hook("sap_default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.BaseURL != "http://gw.example.com:8000" {
		t.Fatalf("expected trailing slash trimmed, got %q", h.BaseURL)
	}
}

func TestHook_GetConn_BasicAuthApplied(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		w.WriteHeader(200)
	}))
	defer srv.Close()

	h := NewHook(Config{
		BaseURL: srv.URL,
		Auth:    AuthConfig{Type: "basic", Username: "sapuser", Password: "secret"},
		Headers: map[string]string{"sap-client": "100"},
	})
	sess, err := h.GetConn(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sess.Close()

	resp, err := sess.Client().R().Get("/sap/opu/odata/ping")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode())
	}
	if !gotOK || gotUser != "sapuser" || gotPass != "secret" {
		t.Fatalf("basic auth not applied: ok=%v user=%q", gotOK, gotUser)
	}
}

func TestHook_GetConn_BasicAuthIncomplete(t *testing.T) {
	h := NewHook(Config{Auth: AuthConfig{Type: "basic", Username: "only-user"}})
	if _, err := h.GetConn(context.Background()); err == nil {
		t.Fatal("expected error for incomplete basic auth")
	}
}

func TestHook_GetConn_UnsupportedAuthType(t *testing.T) {
	h := NewHook(Config{Auth: AuthConfig{Type: "kerberos"}})
	if _, err := h.GetConn(context.Background()); err == nil {
		t.Fatal("expected error for unsupported auth type")
	}
}

func TestHook_GetConn_OAuth2ClientCredentials(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	defer tokenSrv.Close()

	var gotAuthz string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthz = r.Header.Get("Authorization")
		w.WriteHeader(200)
	}))
	defer apiSrv.Close()

	h := NewHook(Config{
		BaseURL: apiSrv.URL,
		Auth: AuthConfig{
			Type:     "oauth2_client_credentials",
			ClientID: "cid",
			TokenURL: tokenSrv.URL + "/token",
		},
	})
	sess, err := h.GetConn(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sess.Close()

	if _, err := sess.Client().R().Get("/"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotAuthz != "Bearer tok-123" {
		t.Fatalf("expected bearer token applied, got %q", gotAuthz)
	}
}

func TestHook_GetConn_OAuth2MissingTokenURL(t *testing.T) {
	h := NewHook(Config{Auth: AuthConfig{Type: "oauth2_client_credentials", ClientID: "cid"}})
	if _, err := h.GetConn(context.Background()); err == nil {
		t.Fatal("expected error for missing token_url")
	}
}

func TestHook_BaseURLIsMutable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	h := NewHook(Config{BaseURL: "http://configured-elsewhere.invalid"})
	h.BaseURL = srv.URL // the fetch task rewrites this before opening a session

	sess, err := h.GetConn(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sess.Close()

	resp, err := sess.Client().R().Get("/")
	if err != nil || resp.StatusCode() != 200 {
		t.Fatalf("expected rewritten base url to be used, got code=%d err=%v", resp.StatusCode(), err)
	}
}
