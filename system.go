package santricity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/eseries-community/go-santricity/core"
)

// System exposes firmware and build metadata endpoints. These live outside
// the storage-system scope.
type System struct {
	client *Client
}

// BuildInfo returns the /utils/buildinfo payload. The endpoint sits under
// the /devmgr root rather than the versioned API base, so the base path is
// rewritten at the /devmgr marker.
func (s *System) BuildInfo(ctx context.Context) (core.Record, error) {
	return request[core.Record](ctx, s.client, http.MethodGet, s.buildInfoURL(), nil, nil)
}

// FirmwareVersions returns the embedded firmware code versions.
func (s *System) FirmwareVersions(ctx context.Context) (core.Record, error) {
	data, err := s.client.RequestWithScope(
		ctx, http.MethodGet, "/firmware/embedded-firmware/1/versions", nil, nil, false,
	)
	if err != nil {
		return nil, err
	}
	return asRecordUnion[core.Record](data)
}

// ReleaseSummary queries the firmware-version and buildinfo endpoints and
// picks the best-known software version across them, in priority order
// bundleDisplay, management, symbolApi, symbolVersion. Endpoint failures
// are collected into the errors field instead of failing the summary; only
// when every source fails is the version left empty.
func (s *System) ReleaseSummary(ctx context.Context) (core.Record, error) {
	summary := core.Record{
		"version":       nil,
		"source":        nil,
		"bundleDisplay": nil,
		"management":    nil,
		"symbolApi":     nil,
		"symbolVersion": nil,
	}
	errors := []any{}

	if firmware, err := s.FirmwareVersions(ctx); err != nil {
		errors = append(errors, fmt.Sprintf("firmware versions: %v", err))
	} else {
		summary["bundleDisplay"] = extractCodeVersion(firmware, "bundleDisplay")
		summary["management"] = extractCodeVersion(firmware, "management")
	}

	if buildInfo, err := s.BuildInfo(ctx); err != nil {
		errors = append(errors, fmt.Sprintf("buildinfo: %v", err))
	} else {
		summary["symbolApi"] = extractComponent(buildInfo, "symbolapi")
		summary["symbolVersion"] = extractComponent(buildInfo, "symbolversion")
	}

	for _, key := range []string{"bundleDisplay", "management", "symbolApi", "symbolVersion"} {
		if value, ok := summary[key].(string); ok && strings.TrimSpace(value) != "" {
			summary["version"] = value
			summary["source"] = key
			break
		}
	}
	summary["errors"] = errors
	return summary, nil
}

func (s *System) buildInfoURL() string {
	return s.devmgrRoot() + "/utils/buildinfo"
}

// devmgrRoot rewrites the base URL to the bare /devmgr prefix, dropping any
// versioned API segments after it.
func (s *System) devmgrRoot() string {
	baseURL := s.client.BaseURL()
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	hostRoot := parsed.Scheme + "://" + parsed.Host
	prefix := "/devmgr"
	if marker := strings.Index(parsed.Path, "/devmgr"); marker != -1 {
		prefix = parsed.Path[:marker] + "/devmgr"
	}
	return hostRoot + strings.TrimRight(prefix, "/")
}

// extractCodeVersion pulls the versionString of the named codeModule out of
// a firmware-versions payload.
func extractCodeVersion(payload core.Record, moduleName string) any {
	entries, _ := payload["codeVersions"].([]any)
	target := strings.ToLower(moduleName)
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		module, _ := entry["codeModule"].(string)
		version, _ := entry["versionString"].(string)
		if strings.ToLower(module) == target && strings.TrimSpace(version) != "" {
			return strings.TrimSpace(version)
		}
	}
	return nil
}

// extractComponent pulls the version of the named component out of a
// buildinfo payload.
func extractComponent(payload core.Record, componentName string) any {
	entries, _ := payload["components"].([]any)
	target := strings.ToLower(componentName)
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		version, _ := entry["version"].(string)
		if strings.ToLower(name) == target && strings.TrimSpace(version) != "" {
			return strings.TrimSpace(version)
		}
	}
	return nil
}
