package httpc

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew_DefaultClientWorksAgainstPlainHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(204)
	}))
	defer srv.Close()

	h := Httpc{}
	c := h.New()
	resp, err := c.R().Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != 204 {
		t.Fatalf("expected 204, got %d", resp.StatusCode())
	}
}

func TestNew_InsecureAllowsSelfSigned(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// default: unknown authority
	h := Httpc{}
	if _, err := h.New().R().Get(srv.URL); err == nil {
		t.Fatal("expected error without insecure TLS, got nil")
	}

	// insecure: succeeds
	hi := Httpc{TlsConfig: &tls.Config{InsecureSkipVerify: true}} // #nosec G402 -- test server
	resp, err := hi.New().R().Get(srv.URL)
	if err != nil || resp.StatusCode() != 200 {
		t.Fatalf("expected 200 with insecure, got code=%d err=%v", resp.StatusCode(), err)
	}
}

func TestNew_DefaultsMinVersion(t *testing.T) {
	h := Httpc{TlsConfig: &tls.Config{}} // #nosec G402 -- version set below
	c := h.New()
	tr, _ := c.GetClient().Transport.(*http.Transport)
	if tr == nil || tr.TLSClientConfig == nil {
		t.Fatal("expected TLS config on transport")
	}
	if tr.TLSClientConfig.MinVersion != tls.VersionTLS12 {
		t.Fatalf("expected TLS1.2 default min, got %v", tr.TLSClientConfig.MinVersion)
	}
}

func TestFromOptions(t *testing.T) {
	if cfg := FromOptions(false, "", ""); cfg != nil {
		t.Fatal("expected nil config for defaults")
	}
	cfg := FromOptions(true, "1.2", "1.3")
	if cfg == nil || !cfg.InsecureSkipVerify {
		t.Fatal("expected insecure config")
	}
	if cfg.MinVersion != tls.VersionTLS12 || cfg.MaxVersion != tls.VersionTLS13 {
		t.Fatalf("unexpected version bounds: min=%v max=%v", cfg.MinVersion, cfg.MaxVersion)
	}
}

// FuzzParseTLSVersion ensures parseTLSVersion handles arbitrary strings safely
// and only returns known TLS versions or 0.
func FuzzParseTLSVersion(f *testing.F) {
	f.Add("")
	f.Add("1.2")
	f.Add("tls1.3")
	f.Add("TLS13")
	f.Add("weird-input!!")

	f.Fuzz(func(t *testing.T, s string) {
		v := parseTLSVersion(s)
		if v != 0 && v != tls.VersionTLS10 && v != tls.VersionTLS11 && v != tls.VersionTLS12 && v != tls.VersionTLS13 {
			t.Fatalf("unexpected tls version: %v", v)
		}
	})
}
