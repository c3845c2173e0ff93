package collector

import (
	"os"
	"path/filepath"
	"testing"

	"ipoalert/internal/config"
)

func TestRetryCondition(t *testing.T) {
	for status, want := range map[int]bool{
		429: true,
		500: true,
		502: true,
		503: true,
		504: true,
		400: false,
		401: false,
		403: false,
		404: false,
		200: false,
		301: false,
	} {
		if got := retryStatuses[status]; got != want {
			t.Errorf("retry on %d = %v, want %v", status, got, want)
		}
	}
}

func TestTLSConfig_InsecureOverride(t *testing.T) {
	cfg := &config.Config{}
	cfg.TLS.AllowInsecure = true
	cfg.TLS.CABundle = "/does/not/matter"

	tc := tlsConfig(cfg)
	if tc == nil || !tc.InsecureSkipVerify {
		t.Fatalf("insecure override not applied: %+v", tc)
	}
}

func TestTLSConfig_MissingFilesFallBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.TLS.CABundle = filepath.Join(t.TempDir(), "absent.pem")
	cfg.TLS.CertFile = filepath.Join(t.TempDir(), "also-absent.pem")

	if tc := tlsConfig(cfg); tc != nil {
		t.Errorf("expected system roots (nil config), got %+v", tc)
	}
}

func TestTLSConfig_GarbageBundleFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pem")
	if err := os.WriteFile(path, []byte("this is not a certificate"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	cfg := &config.Config{}
	cfg.TLS.CABundle = path

	if tc := tlsConfig(cfg); tc != nil {
		t.Errorf("expected fallback to system roots, got %+v", tc)
	}
}

func TestTLSConfig_Default(t *testing.T) {
	if tc := tlsConfig(&config.Config{}); tc != nil {
		t.Errorf("expected nil config for system roots, got %+v", tc)
	}
}
