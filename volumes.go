package santricity

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/eseries-community/go-santricity/core"
)

// sizeUnitMultipliers maps expansion unit tags to byte multipliers. Decimal
// units use powers of 1000, binary units powers of 1024.
var sizeUnitMultipliers = map[string]float64{
	"bytes": 1,
	"b":     1,
	"mb":    1000 * 1000,
	"gb":    1000 * 1000 * 1000,
	"tb":    1000 * 1000 * 1000 * 1000,
	"mib":   1024 * 1024,
	"gib":   1024 * 1024 * 1024,
	"tib":   1024 * 1024 * 1024 * 1024,
}

// Volumes exposes volume operations.
type Volumes struct {
	client *Client
}

func (v *Volumes) List(ctx context.Context) (core.RecordSet, error) {
	return request[core.RecordSet](ctx, v.client, http.MethodGet, "/volumes", nil, nil)
}

func (v *Volumes) Get(ctx context.Context, volumeRef string) (core.Record, error) {
	return request[core.Record](ctx, v.client, http.MethodGet, "/volumes/"+volumeRef, nil, nil)
}

func (v *Volumes) Create(ctx context.Context, payload core.Params) (core.Record, error) {
	return request[core.Record](ctx, v.client, http.MethodPost, "/volumes", nil, payload)
}

func (v *Volumes) Delete(ctx context.Context, volumeRef string) (core.Record, error) {
	return request[core.Record](ctx, v.client, http.MethodDelete, "/volumes/"+volumeRef, nil, nil)
}

// MapToHost maps a volume through the volume-local mappings endpoint. For
// label-based target resolution use Mappings.MapVolume instead.
func (v *Volumes) MapToHost(ctx context.Context, volumeRef string, payload core.Params) (core.Record, error) {
	path := fmt.Sprintf("/volumes/%s/mappings", volumeRef)
	return request[core.Record](ctx, v.client, http.MethodPost, path, nil, payload)
}

// Expand grows a volume by the given amount. The unit tag selects a byte
// multiplier from a fixed table; an unknown unit fails locally before any
// network call. The computed byte count is always sent with
// sizeUnit "bytes" regardless of the caller's unit.
func (v *Volumes) Expand(ctx context.Context, volumeRef string, amount float64, unit string) (core.Record, error) {
	expansionBytes, err := toBytes(amount, unit)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/volumes/%s/expand", volumeRef)
	payload := core.Params{
		"expansionSize": expansionBytes,
		"sizeUnit":      "bytes",
	}
	return request[core.Record](ctx, v.client, http.MethodPost, path, nil, payload)
}

// EnsureUniqueName fails with a ValidationError when any existing volume
// already carries the given name or label.
func (v *Volumes) EnsureUniqueName(ctx context.Context, name string) error {
	volumes, err := v.List(ctx)
	if err != nil {
		return err
	}
	for _, volume := range volumes {
		if label, ok := volume.FirstString("name", "label"); ok && label == name {
			return &core.ValidationError{
				Message: fmt.Sprintf("a volume named %q already exists on the array", name),
			}
		}
	}
	return nil
}

// DuplicateNames reports every volume name carried by more than one volume,
// with the number of volumes and their references.
func (v *Volumes) DuplicateNames(ctx context.Context) (core.RecordSet, error) {
	volumes, err := v.List(ctx)
	if err != nil {
		return nil, err
	}
	buckets := map[string][]core.Record{}
	for _, volume := range volumes {
		label, ok := volume.FirstString("name", "label")
		if !ok {
			continue
		}
		buckets[label] = append(buckets[label], volume)
	}
	names := make([]string, 0, len(buckets))
	for name, items := range buckets {
		if len(items) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	duplicates := core.RecordSet{}
	for _, name := range names {
		refs := make([]any, 0, len(buckets[name]))
		for _, volume := range buckets[name] {
			refs = append(refs, volume["volumeRef"])
		}
		duplicates = append(duplicates, core.Record{
			"name":       name,
			"count":      len(buckets[name]),
			"volumeRefs": refs,
		})
	}
	return duplicates, nil
}

func toBytes(amount float64, unit string) (int64, error) {
	multiplier, ok := sizeUnitMultipliers[strings.ToLower(unit)]
	if !ok {
		units := make([]string, 0, len(sizeUnitMultipliers))
		for tag := range sizeUnitMultipliers {
			units = append(units, tag)
		}
		sort.Strings(units)
		return 0, &core.ValidationError{
			Message: fmt.Sprintf(
				"invalid size unit %q, valid units: %s", unit, strings.Join(units, ", "),
			),
		}
	}
	return int64(math.Round(amount * multiplier)), nil
}
