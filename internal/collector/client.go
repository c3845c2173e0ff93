package collector

import (
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"os"
	"time"

	"resty.dev/v3"

	"ipoalert/internal/config"
)

const (
	requestTimeout   = 30 * time.Second
	retryCount       = 3
	retryWaitTime    = 1 * time.Second
	retryMaxWaitTime = 10 * time.Second
)

// Browser-like headers; some market-data endpoints reject default Go agents.
var commonHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Accept":          "application/json,text/plain,*/*",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
}

var retryStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// NewHTTPClient creates the API client with retry logic and exponential
// backoff, browser-like headers, and the configured TLS and proxy settings.
func NewHTTPClient(cfg *config.Config) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.Finnhub.BaseURL).
		SetTimeout(requestTimeout).
		SetHeaders(commonHeaders).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryConditions(retryCondition).
		AddRetryHooks(retryHook)

	if tc := tlsConfig(cfg); tc != nil {
		client.SetTLSClientConfig(tc)
	}
	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
	}
	return client
}

// retryCondition retries transport-level failures and a fixed set of
// retryable statuses. Other 4xx responses are final.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return retryStatuses[r.StatusCode()]
}

func retryHook(r *resty.Response, err error) {
	if err != nil {
		slog.Debug("retrying request due to error",
			"url", r.Request.URL,
			"attempt", r.Request.Attempt,
			"error", err.Error())
		return
	}
	slog.Debug("retrying request due to status code",
		"url", r.Request.URL,
		"attempt", r.Request.Attempt,
		"status_code", r.StatusCode())
}

// tlsConfig resolves the TLS trust source: the insecure escape hatch wins,
// then the CA bundle, then the cert file, then nil for system roots. A file
// that cannot be used logs a warning and falls through.
func tlsConfig(cfg *config.Config) *tls.Config {
	if cfg.TLS.AllowInsecure {
		slog.Warn("TLS certificate verification disabled")
		return &tls.Config{InsecureSkipVerify: true}
	}
	for _, path := range []string{cfg.TLS.CABundle, cfg.TLS.CertFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		pem, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("cannot read CA file, falling back", "file", path, "error", err)
			continue
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			slog.Warn("no certificates found in CA file, falling back", "file", path)
			continue
		}
		return &tls.Config{RootCAs: pool}
	}
	return nil
}
