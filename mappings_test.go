package santricity

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eseries-community/go-santricity/core"
)

func TestMappingsCreateFallsBackToLegacyEndpoint(t *testing.T) {
	var paths []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == testAPIBase+"/storage-systems/sys1/v2/volume-mappings" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"lun":1}`))
	}), func(config *ClientConfig) {
		config.ReleaseVersion = "12.00"
	})

	_, err := client.Mappings.Create(context.Background(), core.Params{"targetId": "h1"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		testAPIBase + "/storage-systems/sys1/v2/volume-mappings",
		testAPIBase + "/storage-systems/sys1/volume-mappings",
	}, paths)
}

func TestMappingsServerErrorNeverRetries(t *testing.T) {
	var calls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}), func(config *ClientConfig) {
		config.ReleaseVersion = "12.00"
	})

	_, err := client.Mappings.List(context.Background())
	require.Error(t, err)
	assert.True(t, core.ExpectStatusCodes(err, http.StatusInternalServerError))
	assert.Equal(t, 1, calls)
}

func TestMappingsNoFallbackWhenEndpointsMatch(t *testing.T) {
	// On 11.90 the legacy endpoint equals the current one, so 404 is final.
	var calls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}), func(config *ClientConfig) {
		config.ReleaseVersion = "11.90"
	})

	_, err := client.Mappings.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestMapVolumeRejectsAmbiguousTargets(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("ambiguous targets must fail before any network call")
	}), nil)

	ctx := context.Background()
	cases := []MapTarget{
		{},
		{HostRef: "h1", ClusterRef: "c1"},
		{HostRef: "h1", Host: "web01"},
		{HostRef: "h1", HostGroup: "grp"},
		{ClusterRef: "c1", Host: "web01"},
		{ClusterRef: "c1", HostGroup: "grp"},
	}
	for _, target := range cases {
		_, err := client.Mappings.MapVolume(ctx, "vol1", target)
		require.Error(t, err)
		assert.True(t, core.IsResolutionErr(err), "target %+v", target)
	}
}

func TestMapVolumeResolvesHostLabel(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case testAPIBase + "/storage-systems/sys1/hosts":
			_, _ = w.Write([]byte(`[{"label":"web01","hostRef":"h-ref-1"}]`))
		case testAPIBase + "/storage-systems/sys1/volume-mappings":
			gotBody = decodeBody(t, r)
			_, _ = w.Write([]byte(`{"lun":7}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}), nil)

	lun := 7
	_, err := client.Mappings.MapVolume(context.Background(), "vol1", MapTarget{Host: "web01", LUN: &lun})
	require.NoError(t, err)
	assert.Equal(t, "vol1", gotBody["mappableObjectId"])
	assert.Equal(t, "h-ref-1", gotBody["targetId"])
	assert.Equal(t, float64(7), gotBody["lun"])
}

func TestMapVolumeUnknownHostLabel(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}), nil)

	_, err := client.Mappings.MapVolume(context.Background(), "vol1", MapTarget{Host: "ghost"})
	require.Error(t, err)
	assert.True(t, core.IsResolutionErr(err))
	assert.Contains(t, err.Error(), "ghost")
}

func TestMapVolumeResolvesGroupLabel(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case testAPIBase + "/storage-systems/sys1/host-groups":
			_, _ = w.Write([]byte(`[{"label":"grp","clusterRef":"c-ref-1"}]`))
		case testAPIBase + "/storage-systems/sys1/volume-mappings":
			gotBody = decodeBody(t, r)
			_, _ = w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}), nil)

	_, err := client.Mappings.MapVolume(context.Background(), "vol1", MapTarget{HostGroup: "grp"})
	require.NoError(t, err)
	assert.Equal(t, "c-ref-1", gotBody["targetId"])
}

func TestMapVolumeHostMissingRefField(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"web01"}]`))
	}), nil)

	_, err := client.Mappings.MapVolume(context.Background(), "vol1", MapTarget{Host: "web01"})
	require.Error(t, err)
	assert.True(t, core.IsResolutionErr(err))
	assert.Contains(t, err.Error(), "hostRef")
}
