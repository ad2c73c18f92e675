package core

import (
	"strings"

	version "github.com/hashicorp/go-version"
	"github.com/sirupsen/logrus"
)

// CapabilityProfile describes the feature surface of a SANtricity release
// family: which auth mechanisms are available and which URL shape each
// capability-dependent endpoint uses. Profiles are resolved once per client
// and treated as immutable afterwards.
type CapabilityProfile struct {
	Label                 string
	MinVersion            *version.Version
	SupportsJWT           bool
	MappingEndpoint       string
	LegacyMappingEndpoint string
	CloneEndpoint         string
	LegacyCloneEndpoint   string
	DetectedRelease       string
	IsFutureRelease       bool
}

// DescribeRelease returns the release string the profile was resolved for,
// falling back to the profile label.
func (p CapabilityProfile) DescribeRelease() string {
	if p.DetectedRelease != "" {
		return p.DetectedRelease
	}
	return p.Label
}

// baseProfiles is ordered by ascending minimum version. Resolution walks the
// table keeping the highest qualifying candidate.
var baseProfiles = []CapabilityProfile{
	{
		Label:                 "11.80",
		MinVersion:            version.Must(version.NewVersion("11.80.0")),
		SupportsJWT:           false,
		MappingEndpoint:       "/volume-mappings",
		LegacyMappingEndpoint: "/volume-mappings",
		CloneEndpoint:         "/volume-clones",
		LegacyCloneEndpoint:   "/volume-clones",
	},
	{
		Label:                 "11.90",
		MinVersion:            version.Must(version.NewVersion("11.90.0")),
		SupportsJWT:           true,
		MappingEndpoint:       "/volume-mappings",
		LegacyMappingEndpoint: "/volume-mappings",
		CloneEndpoint:         "/volume-clones",
		LegacyCloneEndpoint:   "/volume-clones",
	},
	{
		Label:                 "12.00",
		MinVersion:            version.Must(version.NewVersion("12.0.0")),
		SupportsJWT:           true,
		MappingEndpoint:       "/v2/volume-mappings",
		LegacyMappingEndpoint: "/volume-mappings",
		CloneEndpoint:         "/v2/volume-clones",
		LegacyCloneEndpoint:   "/volume-clones",
	},
}

// ResolveCapabilities maps a free-form release string to the capability
// profile for that release family. An empty release selects the newest
// profile. Out-of-range releases degrade with a warning instead of failing:
// releases below the oldest profile use the oldest profile, releases beyond
// the newest use the newest and set IsFutureRelease.
func ResolveCapabilities(release string) CapabilityProfile {
	requested := parseRelease(release)
	profile := baseProfiles[len(baseProfiles)-1]
	isFuture := false

	if requested != nil {
		profile = baseProfiles[0]
		for _, candidate := range baseProfiles {
			if requested.GreaterThanOrEqual(candidate.MinVersion) {
				profile = candidate
			}
		}
		if requested.LessThan(baseProfiles[0].MinVersion) {
			logrus.Warnf(
				"SANtricity releases older than %s receive limited support in this client",
				baseProfiles[0].Label,
			)
		} else if requested.GreaterThan(baseProfiles[len(baseProfiles)-1].MinVersion) {
			isFuture = true
			logrus.Warn("using latest capability profile for an unknown future SANtricity release")
		}
	}

	resolved := profile
	resolved.DetectedRelease = release
	if resolved.DetectedRelease == "" {
		resolved.DetectedRelease = profile.Label
	}
	resolved.IsFutureRelease = isFuture
	return resolved
}

// parseRelease turns a free-form release string into a comparable 3-part
// version. Non-numeric fragments count as zero, missing components default
// to zero. An empty input yields nil, meaning "use latest".
func parseRelease(release string) *version.Version {
	if release == "" {
		return nil
	}
	parts := strings.Split(release, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	components := make([]string, 0, 3)
	for _, part := range parts {
		var digits strings.Builder
		for _, ch := range part {
			if ch >= '0' && ch <= '9' {
				digits.WriteRune(ch)
			}
		}
		if digits.Len() == 0 {
			components = append(components, "0")
		} else {
			components = append(components, digits.String())
		}
	}
	for len(components) < 3 {
		components = append(components, "0")
	}
	parsed, err := version.NewVersion(strings.Join(components, "."))
	if err != nil {
		return nil
	}
	return parsed
}
