package santricity

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eseries-community/go-santricity/core"
)

// Snapshots exposes snapshot-group and snapshot-image operations.
type Snapshots struct {
	client *Client
}

func (s *Snapshots) ListGroups(ctx context.Context) (core.RecordSet, error) {
	return request[core.RecordSet](ctx, s.client, http.MethodGet, "/snapshot-groups", nil, nil)
}

func (s *Snapshots) CreateGroup(ctx context.Context, payload core.Params) (core.Record, error) {
	return request[core.Record](ctx, s.client, http.MethodPost, "/snapshot-groups", nil, payload)
}

func (s *Snapshots) ListImages(ctx context.Context, groupRef string) (core.RecordSet, error) {
	path := fmt.Sprintf("/snapshot-groups/%s/images", groupRef)
	return request[core.RecordSet](ctx, s.client, http.MethodGet, path, nil, nil)
}
