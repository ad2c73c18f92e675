package santricity

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eseries-community/go-santricity/core"
)

// request dispatches a scoped API call and coerces the response into the
// requested shape. An empty-body success coerces into either shape.
func request[T core.RecordUnion](
	ctx context.Context,
	client *Client,
	method, path string,
	params core.Params,
	body core.Params,
) (T, error) {
	var zero T
	data, err := client.Request(ctx, method, path, params, body)
	if err != nil {
		return zero, err
	}
	return asRecordUnion[T](data)
}

// requestWithFallback retries a capability-dependent call once against the
// legacy path when the primary returns 404 or 405 and a distinct legacy path
// exists. Whatever the legacy call returns, success or failure, is final.
func requestWithFallback[T core.RecordUnion](
	ctx context.Context,
	client *Client,
	method, primaryPath, legacyPath string,
	params core.Params,
	body core.Params,
) (T, error) {
	out, err := request[T](ctx, client, method, primaryPath, params, body)
	if err != nil &&
		legacyPath != "" &&
		legacyPath != primaryPath &&
		core.ExpectStatusCodes(err, http.StatusNotFound, http.StatusMethodNotAllowed) {
		return request[T](ctx, client, method, legacyPath, params, body)
	}
	return out, err
}

func asRecordUnion[T core.RecordUnion](data core.Renderable) (T, error) {
	var zero T
	switch typed := data.(type) {
	case core.Record:
		if out, ok := any(typed).(T); ok {
			return out, nil
		}
		// A bodyless success parses as an empty Record; callers expecting
		// a set get an empty one.
		if typed.Empty() {
			if out, ok := any(core.RecordSet{}).(T); ok {
				return out, nil
			}
		}
	case core.RecordSet:
		if out, ok := any(typed).(T); ok {
			return out, nil
		}
	}
	return zero, &core.UnexpectedResponseError{
		Message: fmt.Sprintf("unexpected response shape %T", data),
	}
}
