package santricity

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eseries-community/go-santricity/core"
)

func TestAddInitiatorDefaultsToISCSI(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = decodeBody(t, r)
		_, _ = w.Write([]byte(`{}`))
	}), nil)

	_, err := client.Hosts.AddInitiator(
		context.Background(), "h1", "iqn.1998-01.com.example:host", InitiatorOptions{},
	)
	require.NoError(t, err)
	assert.Equal(t, testAPIBase+"/storage-systems/sys1/hosts/h1/initiators", gotPath)
	assert.Equal(t, map[string]any{
		"type": "iscsi",
		"port": "iqn.1998-01.com.example:host",
	}, gotBody)
}

func TestAddInitiatorWithChapSecret(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody = decodeBody(t, r)
		_, _ = w.Write([]byte(`{}`))
	}), nil)

	_, err := client.Hosts.AddInitiator(
		context.Background(), "h1", "iqn.1998-01.com.example:host",
		InitiatorOptions{ChapSecret: "s3cret"},
	)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", gotBody["iscsiChapSecret"])
}

func TestAddInitiatorNVMeWithLabel(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody = decodeBody(t, r)
		_, _ = w.Write([]byte(`{}`))
	}), nil)

	_, err := client.Hosts.AddInitiator(
		context.Background(), "h1", "nqn.2014-08.org.nvmexpress:host",
		InitiatorOptions{Type: "nvmeof", Label: "port0"},
	)
	require.NoError(t, err)
	assert.Equal(t, "nvmeof", gotBody["type"])
	assert.Equal(t, "port0", gotBody["label"])
	assert.NotContains(t, gotBody, "iscsiChapSecret")
}

func TestFindHostAndGroup(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case testAPIBase + "/storage-systems/sys1/hosts":
			_, _ = w.Write([]byte(`[{"label":"web01","hostRef":"h1"}]`))
		case testAPIBase + "/storage-systems/sys1/host-groups":
			_, _ = w.Write([]byte(`[{"label":"grp","clusterRef":"c1"}]`))
		}
	}), nil)

	ctx := context.Background()
	host, err := client.Hosts.FindHost(ctx, "web01")
	require.NoError(t, err)
	assert.Equal(t, "h1", host["hostRef"])

	group, err := client.Hosts.FindGroup(ctx, "grp")
	require.NoError(t, err)
	assert.Equal(t, "c1", group["clusterRef"])

	_, err = client.Hosts.FindHost(ctx, "nope")
	assert.True(t, core.IsResolutionErr(err))
	_, err = client.Hosts.FindGroup(ctx, "nope")
	assert.True(t, core.IsResolutionErr(err))
}

func TestDeleteGroupGuardsNonEmptyGroups(t *testing.T) {
	var deleted bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(`[{"label":"web01","clusterRef":"c1"},{"label":"web02","clusterRef":"other"}]`))
	}), nil)

	_, err := client.Hosts.DeleteGroup(context.Background(), "c1", false)
	require.Error(t, err)
	assert.True(t, core.IsValidationErr(err))
	assert.Contains(t, err.Error(), "web01")
	assert.NotContains(t, err.Error(), "web02")
	assert.False(t, deleted, "no delete call may be issued while hosts remain in the group")
}

func TestDeleteGroupForceSkipsGuard(t *testing.T) {
	var paths []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}), nil)

	_, err := client.Hosts.DeleteGroup(context.Background(), "c1", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE " + testAPIBase + "/storage-systems/sys1/host-groups/c1"}, paths)
}

func TestHostMembership(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case testAPIBase + "/storage-systems/sys1/hosts":
			_, _ = w.Write([]byte(`[
				{"label":"web01","hostRef":"h1","clusterRef":"c1"},
				{"label":"web02","hostRef":"h2","clusterRef":""}
			]`))
		case testAPIBase + "/storage-systems/sys1/host-groups":
			_, _ = w.Write([]byte(`[{"label":"grp","clusterRef":"c1"}]`))
		}
	}), nil)

	memberships, err := client.Hosts.Membership(context.Background())
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, "grp", memberships[0]["hostGroup"])
	assert.Equal(t, true, memberships[0]["belongsToGroup"])
	assert.Equal(t, false, memberships[1]["belongsToGroup"])
}
