package santricity

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eseries-community/go-santricity/core"
)

func reportFixtureHandler(t *testing.T) http.Handler {
	t.Helper()
	fixtures := map[string]any{
		testAPIBase + "/storage-systems/sys1/volumes": []core.Record{{
			"name":           "data-vol",
			"capacity":       10000000,
			"volumeRef":      "1111",
			"volumeGroupRef": "2222",
			"id":             "1111",
		}},
		testAPIBase + "/storage-systems/sys1/storage-pools": []core.Record{{
			"id":              "2222",
			"volumeGroupName": "pool-a",
			"freeSpace":       5000000,
			"raidLevel":       "raid6",
		}},
		testAPIBase + "/storage-systems/sys1/hosts": []core.Record{
			{"hostRef": "3333", "hostName": "host-a", "id": "3333"},
			{"hostRef": "5555", "label": "host-b", "id": "5555"},
		},
		testAPIBase + "/storage-systems/sys1/host-groups": []core.Record{
			{"clusterRef": "4444", "hostGroupLabel": "host-group-a", "id": "4444"},
		},
		testAPIBase + "/storage-systems/sys1/volume-mappings": []core.Record{
			{"lunMappingRef": "m1", "lun": 1, "volumeRef": "1111", "mapRef": "8500", "id": "m1", "targetId": "3333"},
			{"lunMappingRef": "m2", "lun": 2, "volumeRef": "1111", "mapRef": "8501", "id": "m2", "targetId": "4444"},
			{"lunMappingRef": "m3", "lun": 3, "volumeRef": "1111", "mapRef": "5555", "id": "m3"},
		},
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := fixtures[r.URL.Path]
		if !ok {
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	})
}

func TestMappingsReportResolvesNamesAndPools(t *testing.T) {
	client := newTestClient(t, reportFixtureHandler(t), nil)

	report, err := client.MappingsReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 3)

	first := report[0]
	assert.Equal(t, "data-vol", first["mappableObjectName"])
	assert.Equal(t, float64(10000000), first["capacity"])
	assert.Equal(t, "pool-a", first["poolName"])
	assert.Equal(t, float64(5000000), first["poolFreeSpace"])
	assert.Equal(t, "raid6", first["raidLevel"])
	assert.Equal(t, "host-a", first["hostLabel"])
	assert.Equal(t, "8500", first["mappingRef"])

	second := report[1]
	assert.Equal(t, "host-group-a", second["targetLabel"])
	assert.Equal(t, "8501", second["mappingRef"])

	// The third mapping has no targetId; its mapRef matches a host directly.
	third := report[2]
	assert.Equal(t, "host-b", third["hostLabel"])
	assert.Equal(t, "host-b", third["targetLabel"])
	assert.Equal(t, "5555", third["mappingRef"])
}

func TestMappingsReportPreservesExistingFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case testAPIBase + "/storage-systems/sys1/volumes":
			_, _ = w.Write([]byte(`[{"name":"vol1","volumeRef":"v1","capacity":42}]`))
		case testAPIBase + "/storage-systems/sys1/volume-mappings":
			_, _ = w.Write([]byte(`[{"volumeRef":"v1","capacity":"already-set","mappingRef":"keep"}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}), nil)

	report, err := client.MappingsReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "already-set", report[0]["capacity"])
	assert.Equal(t, "keep", report[0]["mappingRef"])
	assert.Equal(t, "vol1", report[0]["mappableObjectName"])
}

func TestMappingsReportToleratesEmptyEntities(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == testAPIBase+"/storage-systems/sys1/volume-mappings" {
			_, _ = w.Write([]byte(`[{"lunMappingRef":"m1","targetId":"t1"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}), nil)

	report, err := client.MappingsReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 1)
	// With nothing to match against, the raw identifier is echoed.
	assert.Equal(t, "t1", report[0]["targetLabel"])
}
