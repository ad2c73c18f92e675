package santricity

import (
	"context"

	"github.com/eseries-community/go-santricity/core"
)

var (
	volumeKeyFields  = []string{"volumeRef", "id", "mappableObjectId", "volumeId"}
	poolKeyFields    = []string{"poolRef", "id", "volumeGroupRef", "storagePoolId"}
	hostKeyFields    = []string{"hostRef", "id"}
	groupKeyFields   = []string{"clusterRef", "id", "hostGroupRef"}
	mappingVolFields = []string{"volumeRef", "mappableObjectId", "volumeId", "id"}
	mappingTgtFields = []string{"targetId", "mapRef", "targetRef", "targetObjectId"}
)

// MappingsReport joins volumes, pools, hosts, and host groups onto the
// array's volume mappings, producing one denormalized row per mapping in
// the order the array returned them. Field names vary across firmware
// releases, so entities are indexed under every plausible identifier field
// and rows are matched through candidate-key lists. Augmentation never
// overwrites a field already present on the raw mapping.
func (c *Client) MappingsReport(ctx context.Context) (core.RecordSet, error) {
	volumes, err := c.Volumes.List(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := c.Pools.List(ctx)
	if err != nil {
		return nil, err
	}
	hosts, err := c.Hosts.List(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := c.Hosts.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	mappings, err := c.Mappings.List(ctx)
	if err != nil {
		return nil, err
	}

	volumeIndex := indexRecords(volumes, volumeKeyFields)
	poolIndex := indexRecords(pools, poolKeyFields)
	hostIndex := indexRecords(hosts, hostKeyFields)
	groupIndex := indexRecords(groups, groupKeyFields)

	report := make(core.RecordSet, 0, len(mappings))
	for _, mapping := range mappings {
		row := cloneRecord(mapping)
		augmentVolumeFields(row, volumeIndex, poolIndex)
		augmentTargetFields(row, hostIndex, groupIndex)
		if mappingRef, ok := row.FirstString("mapRef", "lunMappingRef", "id"); ok {
			row.SetMissingValue("mappingRef", mappingRef)
		}
		report = append(report, row)
	}
	return report, nil
}

// indexRecords builds a lookup table keyed by every listed identifier field
// each record exposes. Multiple keys may point at the same record; the
// first writer wins per key.
func indexRecords(records core.RecordSet, keyFields []string) map[string]core.Record {
	index := map[string]core.Record{}
	for _, record := range records {
		for _, field := range keyFields {
			key, ok := record.FirstString(field)
			if !ok {
				continue
			}
			if _, exists := index[key]; !exists {
				index[key] = record
			}
		}
	}
	return index
}

func augmentVolumeFields(row core.Record, volumeIndex, poolIndex map[string]core.Record) {
	volume, ok := lookupByCandidates(row, mappingVolFields, volumeIndex)
	if !ok {
		return
	}
	if name, found := volume.FirstString("name", "label"); found {
		row.SetMissingValue("mappableObjectName", name)
	}
	if capacity, found := volume.FirstPresent("capacity", "reportedSize", "currentVolumeSize"); found {
		row.SetMissingValue("capacity", capacity)
	}
	poolRef, found := volume.FirstString("volumeGroupRef", "poolId", "poolRef")
	if !found {
		return
	}
	pool, found := poolIndex[poolRef]
	if !found {
		return
	}
	if name, ok := pool.FirstString("label", "name", "volumeGroupName"); ok {
		row.SetMissingValue("poolName", name)
	}
	if freeSpace, ok := pool.FirstPresent("freeSpace", "availableSpace"); ok {
		row.SetMissingValue("poolFreeSpace", freeSpace)
	}
	if raidLevel, ok := resolveRaidLevel(pool); ok {
		row.SetMissingValue("raidLevel", raidLevel)
	}
}

// augmentTargetFields resolves the mapping target, preferring a host match
// over a host-group match over echoing the raw identifier.
func augmentTargetFields(row core.Record, hostIndex, groupIndex map[string]core.Record) {
	if host, ok := lookupByCandidates(row, mappingTgtFields, hostIndex); ok {
		if label, found := host.FirstString("label", "hostName", "name"); found {
			row.SetMissingValue("hostLabel", label)
			row.SetMissingValue("targetLabel", label)
		}
		return
	}
	if group, ok := lookupByCandidates(row, mappingTgtFields, groupIndex); ok {
		if label, found := group.FirstString("hostGroupLabel", "label", "name"); found {
			row.SetMissingValue("targetLabel", label)
		}
		return
	}
	if echo, ok := row.FirstString(mappingTgtFields...); ok {
		row.SetMissingValue("targetLabel", echo)
	}
}

// resolveRaidLevel falls back from the pool's top-level raidLevel to the
// first extent's raidLevel to the pool type field.
func resolveRaidLevel(pool core.Record) (string, bool) {
	if level, ok := pool.FirstString("raidLevel"); ok {
		return level, true
	}
	if extents, ok := pool["extents"].([]any); ok && len(extents) > 0 {
		if extent, ok := extents[0].(map[string]any); ok {
			if level, ok := core.Record(extent).FirstString("raidLevel"); ok {
				return level, true
			}
		}
	}
	return pool.FirstString("type")
}

func lookupByCandidates(row core.Record, fields []string, index map[string]core.Record) (core.Record, bool) {
	for _, field := range fields {
		key, ok := row.FirstString(field)
		if !ok {
			continue
		}
		if match, found := index[key]; found {
			return match, true
		}
	}
	return nil, false
}

func cloneRecord(record core.Record) core.Record {
	clone := make(core.Record, len(record))
	for key, value := range record {
		clone[key] = value
	}
	return clone
}
