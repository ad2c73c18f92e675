package santricity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/eseries-community/go-santricity/core"
)

// Hosts exposes host and host-group operations.
type Hosts struct {
	client *Client
}

func (h *Hosts) List(ctx context.Context) (core.RecordSet, error) {
	return request[core.RecordSet](ctx, h.client, http.MethodGet, "/hosts", nil, nil)
}

func (h *Hosts) Get(ctx context.Context, hostRef string) (core.Record, error) {
	return request[core.Record](ctx, h.client, http.MethodGet, "/hosts/"+hostRef, nil, nil)
}

func (h *Hosts) ListGroups(ctx context.Context) (core.RecordSet, error) {
	return request[core.RecordSet](ctx, h.client, http.MethodGet, "/host-groups", nil, nil)
}

// InitiatorOptions tunes AddInitiator. Type defaults to iscsi; nvmeof is
// the other accepted value. ChapSecret only applies to iscsi initiators.
type InitiatorOptions struct {
	Type       string
	Label      string
	ChapSecret string
}

// AddInitiator registers an initiator port (IQN for iSCSI, NQN for NVMe)
// on the host.
func (h *Hosts) AddInitiator(ctx context.Context, hostRef, port string, opts InitiatorOptions) (core.Record, error) {
	initiatorType := opts.Type
	if initiatorType == "" {
		initiatorType = "iscsi"
	}
	payload := core.Params{
		"type": initiatorType,
		"port": port,
	}
	if opts.Label != "" {
		payload["label"] = opts.Label
	}
	if opts.ChapSecret != "" {
		payload["iscsiChapSecret"] = opts.ChapSecret
	}
	path := fmt.Sprintf("/hosts/%s/initiators", hostRef)
	return request[core.Record](ctx, h.client, http.MethodPost, path, nil, payload)
}

// FindHost resolves a host label to its record. A missing host is a
// ResolutionError naming the label.
func (h *Hosts) FindHost(ctx context.Context, label string) (core.Record, error) {
	hosts, err := h.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, host := range hosts {
		if hostLabel, ok := host.FirstString("label"); ok && hostLabel == label {
			return host, nil
		}
	}
	return nil, &core.ResolutionError{
		Message: fmt.Sprintf("host %q was not found on the array", label),
	}
}

// FindGroup resolves a host-group label to its record.
func (h *Hosts) FindGroup(ctx context.Context, label string) (core.Record, error) {
	groups, err := h.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		if groupLabel, ok := group.FirstString("label"); ok && groupLabel == label {
			return group, nil
		}
	}
	return nil, &core.ResolutionError{
		Message: fmt.Sprintf("host group %q was not found on the array", label),
	}
}

// DeleteGroup removes a host group. Without force it refuses to delete a
// group that still has member hosts, naming them; force skips the check.
func (h *Hosts) DeleteGroup(ctx context.Context, groupRef string, force bool) (core.Record, error) {
	if !force {
		hosts, err := h.List(ctx)
		if err != nil {
			return nil, err
		}
		var members []string
		for _, host := range hosts {
			if clusterRef, ok := host.FirstString("clusterRef"); ok && clusterRef == groupRef {
				label, _ := host.FirstString("label", "hostName", "name")
				if label == "" {
					label, _ = host.FirstString("hostRef", "id")
				}
				members = append(members, label)
			}
		}
		if len(members) > 0 {
			return nil, &core.ValidationError{
				Message: fmt.Sprintf(
					"host group still contains hosts: %s (use force to delete anyway)",
					strings.Join(members, ", "),
				),
			}
		}
	}
	return request[core.Record](ctx, h.client, http.MethodDelete, "/host-groups/"+groupRef, nil, nil)
}

// Membership joins hosts against host groups, reporting for each host
// whether it belongs to a group and which one.
func (h *Hosts) Membership(ctx context.Context) (core.RecordSet, error) {
	hosts, err := h.List(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := h.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	groupLabels := map[string]string{}
	for _, group := range groups {
		label, _ := group.FirstString("label", "hostGroupLabel", "name")
		for _, key := range []string{"clusterRef", "id", "hostGroupRef"} {
			if ref, ok := group.FirstString(key); ok {
				if _, exists := groupLabels[ref]; !exists {
					groupLabels[ref] = label
				}
			}
		}
	}
	memberships := core.RecordSet{}
	for _, host := range hosts {
		hostRef, _ := host.FirstString("hostRef", "id")
		clusterRef, _ := host.FirstString("clusterRef")
		groupLabel := groupLabels[clusterRef]
		memberships = append(memberships, core.Record{
			"hostLabel":      host["label"],
			"hostRef":        hostRef,
			"clusterRef":     clusterRef,
			"hostGroup":      groupLabel,
			"belongsToGroup": groupLabel != "",
		})
	}
	return memberships, nil
}
