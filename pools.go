package santricity

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eseries-community/go-santricity/core"
)

// Pools exposes storage-pool operations.
type Pools struct {
	client *Client
}

func (p *Pools) List(ctx context.Context) (core.RecordSet, error) {
	return request[core.RecordSet](ctx, p.client, http.MethodGet, "/storage-pools", nil, nil)
}

func (p *Pools) Get(ctx context.Context, poolRef string) (core.Record, error) {
	return request[core.Record](ctx, p.client, http.MethodGet, "/storage-pools/"+poolRef, nil, nil)
}

// GetByName finds a pool whose label or name matches exactly. A missing
// pool is a ResolutionError, not a nil result.
func (p *Pools) GetByName(ctx context.Context, name string) (core.Record, error) {
	pools, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, pool := range pools {
		if label, ok := pool.FirstString("label", "name"); ok && label == name {
			return pool, nil
		}
	}
	return nil, &core.ResolutionError{
		Message: fmt.Sprintf("storage pool %q was not found on the array", name),
	}
}

// CreateVolume provisions a volume inside the pool. Releases without the
// pool-local endpoint answer 404 or 405; those fall back to the flat
// /volumes endpoint with the pool id injected into the payload.
func (p *Pools) CreateVolume(ctx context.Context, poolRef string, payload core.Params) (core.Record, error) {
	body := core.Params{"poolId": poolRef}
	body.Update(payload, true)
	path := fmt.Sprintf("/storage-pools/%s/volumes", poolRef)
	out, err := request[core.Record](ctx, p.client, http.MethodPost, path, nil, body)
	if err != nil && core.ExpectStatusCodes(err, http.StatusNotFound, http.StatusMethodNotAllowed) {
		return p.client.Volumes.Create(ctx, body)
	}
	return out, err
}
