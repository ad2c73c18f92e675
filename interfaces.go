package santricity

import (
	"context"
	"net/http"

	"github.com/eseries-community/go-santricity/core"
)

// Interfaces exposes controller interface metadata and per-protocol target
// settings.
type Interfaces struct {
	client *Client
}

func (i *Interfaces) List(ctx context.Context) (core.RecordSet, error) {
	return request[core.RecordSet](ctx, i.client, http.MethodGet, "/interfaces", nil, nil)
}

func (i *Interfaces) Get(ctx context.Context, interfaceID string) (core.Record, error) {
	return request[core.Record](ctx, i.client, http.MethodGet, "/interfaces/"+interfaceID, nil, nil)
}

// ISCSITargetSettings returns the array's iSCSI target settings, including
// the target IQN and portals.
func (i *Interfaces) ISCSITargetSettings(ctx context.Context) (core.Record, error) {
	return request[core.Record](ctx, i.client, http.MethodGet, "/iscsi/target-settings", nil, nil)
}

// FCTargetSettings returns the Fibre Channel target interfaces.
func (i *Interfaces) FCTargetSettings(ctx context.Context) (core.RecordSet, error) {
	return request[core.RecordSet](ctx, i.client, http.MethodGet, "/fibre-channel/interface", nil, nil)
}

// NVMeTargetSettings returns the NVMe-oF target settings. Some controllers
// answer without a portal list; in that case portals are discovered by
// walking each interface's nvme command-protocol properties.
func (i *Interfaces) NVMeTargetSettings(ctx context.Context) (core.Record, error) {
	settings, err := request[core.Record](ctx, i.client, http.MethodGet, "/nvmeof/target-settings", nil, nil)
	if err != nil {
		return nil, err
	}
	if hasPortals(settings) {
		return settings, nil
	}
	interfaces, err := i.List(ctx)
	if err != nil {
		return nil, err
	}
	portals := discoverNVMePortals(interfaces)
	if len(portals) > 0 {
		settings["portals"] = portals
	}
	return settings, nil
}

func hasPortals(settings core.Record) bool {
	portals, ok := settings["portals"]
	if !ok || portals == nil {
		return false
	}
	list, ok := portals.([]any)
	return !ok || len(list) > 0
}

func discoverNVMePortals(interfaces core.RecordSet) []core.Record {
	var portals []core.Record
	for _, iface := range interfaces {
		protoList := childRecord(iface, "commandProtocolPropertiesList")
		props, _ := protoList["commandProtocolProperties"].([]any)
		for _, raw := range props {
			prop, ok := raw.(map[string]any)
			if !ok || prop["commandProtocol"] != "nvme" {
				continue
			}
			nvmeofProps := childRecord(childRecord(prop, "nvmeProperties"), "nvmeofProperties")
			for _, key := range []string{"ibProperties", "roceV2Properties"} {
				transport := childRecord(nvmeofProps, key)
				addrData := childRecord(transport, "ipAddressData")
				ipv4 := childRecord(addrData, "ipv4Data")
				address, _ := ipv4["ipv4Address"].(string)
				if address == "" || address == "0.0.0.0" {
					continue
				}
				port := transport["listeningPort"]
				if port == nil {
					port = 4420
				}
				portals = append(portals, core.Record{
					"address": address,
					"port":    port,
				})
				break
			}
		}
	}
	return portals
}

func childRecord(parent map[string]any, key string) map[string]any {
	if parent == nil {
		return nil
	}
	child, _ := parent[key].(map[string]any)
	return child
}
