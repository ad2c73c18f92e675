package santricity

import (
	"net/http"
	"strings"
	"time"

	"github.com/eseries-community/go-santricity/core"
)

const defaultTimeout = 30 * time.Second

// ClientConfig carries everything needed to construct a Client. The zero
// value is not usable; BaseURL and Auth are mandatory.
type ClientConfig struct {
	// BaseURL is the API root, e.g. https://array.example.com/devmgr/v2.
	// A trailing slash is stripped. The URL may already embed a
	// /storage-systems/<id> scope segment, in which case automatic scope
	// injection is disabled.
	BaseURL string
	// Auth supplies credentials for every outgoing request.
	Auth core.AuthStrategy
	// SkipVerify disables TLS certificate verification. CABundle, when set,
	// points at a PEM file with additional trusted roots and wins over
	// SkipVerify.
	SkipVerify bool
	CABundle   string
	// Timeout bounds each request end to end. Zero means 30s.
	Timeout time.Duration
	// DefaultHeaders and QueryDefaults are merged into every request.
	// Per-call values win on key collision; auth headers win over both.
	DefaultHeaders map[string]string
	QueryDefaults  core.Params
	// ReleaseVersion selects the capability profile. Empty means newest.
	ReleaseVersion string
	// SystemID pins the storage-system scope. Empty triggers lazy discovery
	// via GET /storage-systems on first scoped request.
	SystemID string
	// HTTPClient overrides the constructed client. TLS settings above are
	// ignored when it is set.
	HTTPClient *http.Client
}

type configValidator func(*ClientConfig) error

// Validate normalizes the config in place and applies the given validators
// in order, stopping at the first failure.
func (c *ClientConfig) Validate(validators ...configValidator) error {
	for _, validate := range validators {
		if err := validate(c); err != nil {
			return err
		}
	}
	return nil
}

func withBaseURL() configValidator {
	return func(c *ClientConfig) error {
		if strings.TrimSpace(c.BaseURL) == "" {
			return &core.ValidationError{Message: "base URL is required"}
		}
		c.BaseURL = strings.TrimRight(c.BaseURL, "/")
		return nil
	}
}

func withAuth() configValidator {
	return func(c *ClientConfig) error {
		if c.Auth == nil {
			return &core.ValidationError{Message: "an auth strategy is required"}
		}
		return nil
	}
}

func withTimeout() configValidator {
	return func(c *ClientConfig) error {
		if c.Timeout <= 0 {
			c.Timeout = defaultTimeout
		}
		return nil
	}
}
