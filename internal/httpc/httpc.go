package httpc

import (
	"crypto/tls"

	"github.com/go-resty/resty/v2"
)

type Httpc struct {
	TlsConfig *tls.Config
}

// New returns a resty.Client configured according to the receiver's TLS settings.
// Defaults: MinVersion TLS1.2 when MinVersion is zero (SAP gateways commonly
// terminate TLS1.2).
func (h *Httpc) New() *resty.Client {
	c := resty.New()
	cfg := h.TlsConfig
	if cfg == nil {
		return c
	}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS12
	}
	c.SetTLSClientConfig(cfg)
	return c
}

// FromOptions builds a tls.Config from the explicit client options used in
// configuration files. Returns nil when everything is default.
func FromOptions(insecure bool, minVersion, maxVersion string) *tls.Config {
	if !insecure && minVersion == "" && maxVersion == "" {
		return nil
	}
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if insecure {
		cfg.InsecureSkipVerify = true
	}
	if v := parseTLSVersion(minVersion); v != 0 {
		cfg.MinVersion = v
	}
	if v := parseTLSVersion(maxVersion); v != 0 {
		cfg.MaxVersion = v
	}
	return cfg
}

// parseTLSVersion maps a human version string ("1.2", "tls1.3", "TLS12") to a
// tls.VersionTLSxx constant; unknown inputs return 0.
func parseTLSVersion(s string) uint16 {
	switch normalizeTLSVersion(s) {
	case "1.0":
		return tls.VersionTLS10
	case "1.1":
		return tls.VersionTLS11
	case "1.2":
		return tls.VersionTLS12
	case "1.3":
		return tls.VersionTLS13
	default:
		return 0
	}
}

func normalizeTLSVersion(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c == '.':
			out = append(out, c)
		}
	}
	switch string(out) {
	case "10":
		return "1.0"
	case "11":
		return "1.1"
	case "12":
		return "1.2"
	case "13":
		return "1.3"
	}
	return string(out)
}
