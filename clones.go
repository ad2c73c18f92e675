package santricity

import (
	"context"
	"net/http"

	"github.com/eseries-community/go-santricity/core"
)

// Clones exposes volume-clone operations through the capability profile's
// clone endpoint with a single legacy fallback.
type Clones struct {
	client *Client
}

func (c *Clones) List(ctx context.Context) (core.RecordSet, error) {
	profile := c.client.Capabilities()
	return requestWithFallback[core.RecordSet](
		ctx, c.client, http.MethodGet,
		profile.CloneEndpoint, profile.LegacyCloneEndpoint,
		nil, nil,
	)
}

func (c *Clones) Create(ctx context.Context, payload core.Params) (core.Record, error) {
	profile := c.client.Capabilities()
	return requestWithFallback[core.Record](
		ctx, c.client, http.MethodPost,
		profile.CloneEndpoint, profile.LegacyCloneEndpoint,
		nil, payload,
	)
}
