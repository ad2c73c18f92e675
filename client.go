package santricity

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eseries-community/go-santricity/core"
)

var logger = logrus.WithField("component", "santricity-client")

// Client wraps the SANtricity REST API. It owns a single underlying
// http.Client reused across all requests and exposes one facade per
// resource family. Construct with NewClient and release with Close.
//
// A Client is not safe for concurrent use: lazy system-id discovery writes
// internal state without locking.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	capabilities core.CapabilityProfile

	injectScope bool
	systemID    string
	scopePrefix string

	Volumes    *Volumes
	Pools      *Pools
	Hosts      *Hosts
	Mappings   *Mappings
	Clones     *Clones
	Snapshots  *Snapshots
	Interfaces *Interfaces
	System     *System
}

// NewClient validates the config, resolves the capability profile for the
// configured release, and fails fast on an auth strategy the profile does
// not support. No network calls are made.
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, &core.ValidationError{Message: "config is required"}
	}
	if err := config.Validate(withBaseURL(), withAuth(), withTimeout()); err != nil {
		return nil, err
	}

	scoped, parsedID := detectScopedBase(config.BaseURL)
	systemID := config.SystemID
	if systemID == "" {
		systemID = parsedID
	}

	capabilities := core.ResolveCapabilities(config.ReleaseVersion)
	if _, usesJWT := config.Auth.(*core.JWTAuth); usesJWT && !capabilities.SupportsJWT {
		return nil, &core.AuthenticationError{
			Message: fmt.Sprintf(
				"JWT authentication is unavailable on SANtricity release %s",
				capabilities.DescribeRelease(),
			),
		}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		var err error
		if httpClient, err = buildHTTPClient(config); err != nil {
			return nil, err
		}
	}

	client := &Client{
		config:       config,
		httpClient:   httpClient,
		capabilities: capabilities,
		injectScope:  !scoped,
		systemID:     systemID,
	}
	client.Volumes = &Volumes{client: client}
	client.Pools = &Pools{client: client}
	client.Hosts = &Hosts{client: client}
	client.Mappings = &Mappings{client: client}
	client.Clones = &Clones{client: client}
	client.Snapshots = &Snapshots{client: client}
	client.Interfaces = &Interfaces{client: client}
	client.System = &System{client: client}
	return client, nil
}

// Capabilities returns the resolved capability profile (a value copy).
func (c *Client) Capabilities() core.CapabilityProfile {
	return c.capabilities
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Close releases idle connections held by the underlying http.Client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Request dispatches a system-scoped API call. Relative paths are prefixed
// with /storage-systems/<id> unless the base URL already embeds a scope.
func (c *Client) Request(
	ctx context.Context,
	method, path string,
	params core.Params,
	body core.Params,
) (core.Renderable, error) {
	return c.RequestWithScope(ctx, method, path, params, body, true)
}

// RequestWithScope is Request with explicit control over scope injection.
// Pass systemScope=false for endpoints that live outside the storage-system
// scope, such as /storage-systems itself or firmware utilities.
func (c *Client) RequestWithScope(
	ctx context.Context,
	method, path string,
	params core.Params,
	body core.Params,
	systemScope bool,
) (core.Renderable, error) {
	requestURL, err := c.resolveURL(ctx, path, systemScope)
	if err != nil {
		return nil, err
	}

	headers := c.prepareHeaders()
	if err := c.config.Auth.Apply(headers); err != nil {
		return nil, err
	}

	merged := core.Params{}
	merged.Update(c.config.QueryDefaults, true)
	merged.Update(params, true)

	systemID := c.systemID
	if systemID == "" {
		systemID = "unspecified"
	}
	logger.WithFields(logrus.Fields{
		"method":    method,
		"url":       requestURL,
		"system_id": systemID,
	}).Debug("dispatching SANtricity request")

	response, err := core.Do(ctx, c.httpClient, method, requestURL, merged, headers, body)
	if err != nil {
		if core.ExpectStatusCodes(err, http.StatusUnauthorized) {
			return nil, &core.AuthenticationError{
				Message:    "SANtricity API rejected the supplied credentials",
				StatusCode: http.StatusUnauthorized,
				Details:    err.Error(),
			}
		}
		return nil, err
	}
	return response.Data, nil
}

// SystemID returns the storage-system identifier, discovering and caching
// it on first use. Discovery issues an unscoped GET /storage-systems and
// takes the first entry's wwn, falling back to its id.
func (c *Client) SystemID(ctx context.Context) (string, error) {
	if c.systemID != "" {
		return c.systemID, nil
	}
	data, err := c.RequestWithScope(ctx, http.MethodGet, "/storage-systems", nil, nil, false)
	if err != nil {
		return "", err
	}
	systems, ok := data.(core.RecordSet)
	if !ok || len(systems) == 0 {
		return "", &core.RequestError{
			Message: "unable to determine a storage-system identifier from /storage-systems",
		}
	}
	id, ok := systems[0].FirstString("wwn", "id")
	if !ok {
		return "", &core.RequestError{
			Message: "unable to determine a storage-system identifier from /storage-systems",
		}
	}
	c.systemID = strings.TrimSpace(id)
	c.config.SystemID = c.systemID
	return c.systemID, nil
}

func (c *Client) resolveURL(ctx context.Context, path string, systemScope bool) (string, error) {
	if parsed, err := url.Parse(path); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		return path, nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if systemScope && c.injectScope && !strings.HasPrefix(path, "/storage-systems/") {
		prefix, err := c.systemScopePrefix(ctx)
		if err != nil {
			return "", err
		}
		path = prefix + path
	}
	return c.config.BaseURL + path, nil
}

func (c *Client) systemScopePrefix(ctx context.Context) (string, error) {
	if c.scopePrefix != "" {
		return c.scopePrefix, nil
	}
	systemID, err := c.SystemID(ctx)
	if err != nil {
		return "", err
	}
	c.scopePrefix = "/storage-systems/" + systemID
	return c.scopePrefix, nil
}

func (c *Client) prepareHeaders() http.Header {
	headers := http.Header{}
	headers.Set(core.HeaderAccept, core.ContentTypeJSON)
	headers.Set(core.HeaderContentType, core.ContentTypeJSON)
	for key, value := range c.config.DefaultHeaders {
		headers.Set(key, value)
	}
	return headers
}

// detectScopedBase reports whether the base URL already embeds a
// /storage-systems/<id> segment and extracts the id when it does.
func detectScopedBase(baseURL string) (bool, string) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return false, ""
	}
	segments := strings.Split(parsed.Path, "/")
	for i, segment := range segments {
		if segment == "storage-systems" && i+1 < len(segments) && segments[i+1] != "" {
			return true, segments[i+1]
		}
	}
	return false, ""
}

func buildHTTPClient(config *ClientConfig) (*http.Client, error) {
	tlsConfig := &tls.Config{}
	if config.CABundle != "" {
		pem, err := os.ReadFile(config.CABundle)
		if err != nil {
			return nil, &core.ValidationError{
				Message: fmt.Sprintf("failed to read CA bundle %s: %v", config.CABundle, err),
			}
		}
		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, &core.ValidationError{
				Message: fmt.Sprintf("CA bundle %s contains no usable certificates", config.CABundle),
			}
		}
		tlsConfig.RootCAs = pool
	} else if config.SkipVerify {
		tlsConfig.InsecureSkipVerify = true
		logger.Warn("TLS certificate verification is disabled")
	}
	return &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: tlsConfig,
		},
	}, nil
}
