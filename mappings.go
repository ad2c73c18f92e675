package santricity

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eseries-community/go-santricity/core"
)

// Mappings exposes volume-mapping operations. List and Create route through
// the capability profile's mapping endpoint with a single legacy fallback.
type Mappings struct {
	client *Client
}

func (m *Mappings) List(ctx context.Context) (core.RecordSet, error) {
	profile := m.client.Capabilities()
	return requestWithFallback[core.RecordSet](
		ctx, m.client, http.MethodGet,
		profile.MappingEndpoint, profile.LegacyMappingEndpoint,
		nil, nil,
	)
}

func (m *Mappings) Create(ctx context.Context, payload core.Params) (core.Record, error) {
	profile := m.client.Capabilities()
	return requestWithFallback[core.Record](
		ctx, m.client, http.MethodPost,
		profile.MappingEndpoint, profile.LegacyMappingEndpoint,
		nil, payload,
	)
}

// MapTarget identifies the host or host group receiving a mapping. Exactly
// one of the four identifying fields must be effectively set: labels are
// resolved against the live array, refs are used verbatim.
type MapTarget struct {
	Host       string
	HostRef    string
	HostGroup  string
	ClusterRef string
	LUN        *int
	Perms      *int
}

// MapVolume resolves the target to an opaque reference and creates the
// mapping. Ambiguous or missing target options fail with a ResolutionError
// before any mutating call is issued.
func (m *Mappings) MapVolume(ctx context.Context, volumeRef string, target MapTarget) (core.Record, error) {
	targetID, err := m.resolveTargetID(ctx, target)
	if err != nil {
		return nil, err
	}
	payload := core.Params{
		"mappableObjectId": volumeRef,
		"targetId":         targetID,
	}
	if target.LUN != nil {
		payload["lun"] = *target.LUN
	}
	if target.Perms != nil {
		payload["perms"] = *target.Perms
	}
	return m.Create(ctx, payload)
}

func (m *Mappings) resolveTargetID(ctx context.Context, target MapTarget) (string, error) {
	if target.Host == "" && target.HostRef == "" && target.HostGroup == "" && target.ClusterRef == "" {
		return "", &core.ResolutionError{
			Message: "provide host/host-ref or host-group/cluster-ref when mapping a volume",
		}
	}
	if target.HostRef != "" && target.ClusterRef != "" {
		return "", &core.ResolutionError{
			Message: "specify only one of host-ref or cluster-ref for direct mappings",
		}
	}
	if target.HostRef != "" && (target.Host != "" || target.HostGroup != "") {
		return "", &core.ResolutionError{
			Message: "host-ref cannot be combined with other target options",
		}
	}
	if target.ClusterRef != "" && (target.Host != "" || target.HostGroup != "") {
		return "", &core.ResolutionError{
			Message: "cluster-ref cannot be combined with other target options",
		}
	}
	if target.HostRef != "" {
		return target.HostRef, nil
	}
	if target.ClusterRef != "" {
		return target.ClusterRef, nil
	}
	if target.Host != "" {
		host, err := m.client.Hosts.FindHost(ctx, target.Host)
		if err != nil {
			return "", err
		}
		hostRef, ok := host.FirstString("hostRef")
		if !ok {
			return "", &core.ResolutionError{
				Message: fmt.Sprintf("host %q did not include a hostRef field", target.Host),
			}
		}
		return hostRef, nil
	}
	group, err := m.client.Hosts.FindGroup(ctx, target.HostGroup)
	if err != nil {
		return "", err
	}
	clusterRef, ok := group.FirstString("clusterRef")
	if !ok {
		return "", &core.ResolutionError{
			Message: fmt.Sprintf("host group %q did not include a clusterRef field", target.HostGroup),
		}
	}
	return clusterRef, nil
}
