package core

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPResponse is the parsed envelope of a single API call. Data is a
// Record or RecordSet (an empty Record for bodyless success responses).
type HTTPResponse struct {
	StatusCode int
	Data       Renderable
	Headers    http.Header
}

// Do executes a single HTTP call and returns a parsed response envelope.
// Failures are always typed: transport-level errors and non-2xx statuses
// raise a RequestError, a success response with a garbled body raises an
// UnexpectedResponseError. The underlying cause is never swallowed; it is
// carried in the error's Details.
func Do(
	ctx context.Context,
	client *http.Client,
	method, rawURL string,
	params Params,
	headers http.Header,
	body Params,
) (*HTTPResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestURL, err := appendQuery(rawURL, params)
	if err != nil {
		return nil, &RequestError{
			Message: fmt.Sprintf("invalid request URL %q: %v", rawURL, err),
			Details: err.Error(),
		}
	}

	var payload io.Reader
	if body != nil {
		if payload, err = body.ToBody(); err != nil {
			return nil, &RequestError{
				Message: fmt.Sprintf("failed to encode request body: %v", err),
				Details: err.Error(),
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, payload)
	if err != nil {
		return nil, &RequestError{
			Message: fmt.Sprintf("failed to build %s request to %s: %v", method, requestURL, err),
			Details: err.Error(),
		}
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	response, err := client.Do(req)
	if err != nil {
		return nil, &RequestError{
			Message: fmt.Sprintf("failed to communicate with SANtricity API: %v", err),
			Details: err.Error(),
		}
	}

	if err := validateResponse(response); err != nil {
		return nil, err
	}

	data, err := unmarshalToRecordUnion(response)
	if err != nil {
		return nil, err
	}
	return &HTTPResponse{
		StatusCode: response.StatusCode,
		Data:       data,
		Headers:    response.Header,
	}, nil
}

// validateResponse raises a RequestError for anything outside [200, 300).
// The error message carries a truncated body snippet; the full body is
// preserved in Details for diagnostics.
func validateResponse(response *http.Response) error {
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	defer response.Body.Close()
	raw, _ := io.ReadAll(response.Body)
	bodyText := string(raw)
	snippet := bodyText
	if len(snippet) > errorBodySnippetLimit {
		snippet = snippet[:errorBodySnippetLimit]
	}
	return &RequestError{
		Message:    fmt.Sprintf("SANtricity API error %d: %s", response.StatusCode, snippet),
		StatusCode: response.StatusCode,
		Details:    bodyText,
	}
}

func appendQuery(rawURL string, params Params) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	for key, value := range params {
		query.Set(key, fmt.Sprint(value))
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
