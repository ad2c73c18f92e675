package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/bndr/gotabulate"
)

//  ######################################################
//              FUNCTION PARAMS
//  ######################################################

// Params represents a generic set of key-value parameters, used for
// constructing query strings or JSON request bodies.
type Params map[string]any

// ToQuery serializes the Params into a URL-encoded query string.
func (pr Params) ToQuery() string {
	values := url.Values{}
	for k, v := range pr {
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// ToBody serializes the Params into a JSON-encoded io.Reader, suitable for
// use as the body of an HTTP POST, PUT, or PATCH request.
func (pr Params) ToBody() (io.Reader, error) {
	buffer, err := json.Marshal(pr)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(buffer), nil
}

// Update merges another Params map into the receiver. Keys already present
// are kept unless override is true.
func (pr Params) Update(other Params, override bool) {
	for key, value := range other {
		if _, exists := pr[key]; exists && !override {
			continue
		}
		pr[key] = value
	}
}

// Without removes the given keys from the Params map.
func (pr Params) Without(keys ...string) {
	for _, key := range keys {
		delete(pr, key)
	}
}

//  ######################################################
//              RETURN TYPES
//  ######################################################

// Renderable is implemented by types that can render themselves into a
// human-readable form, typically for CLI display or logging.
type Renderable interface {
	PrettyTable() string
	PrettyJson(indent ...string) string
}

// Record represents a single generic data object as a key-value map.
// Field names are dictated by the remote API and vary across firmware
// releases, so no fixed schema is enforced; callers read known keys
// defensively and tolerate absence. An empty response (e.g. 204 No Content)
// yields an empty Record{}.
type Record map[string]any

// RecordSet represents a list of Record objects.
type RecordSet []Record

// RecordUnion defines the supported response shapes for generic request
// helpers: a single Record or a RecordSet.
type RecordUnion interface {
	Record | RecordSet
}

// FirstPresent returns the value of the first key present (and non-nil) in
// the record, along with a flag reporting whether any key matched.
func (r Record) FirstPresent(keys ...string) (any, bool) {
	for _, key := range keys {
		if val, ok := r[key]; ok && val != nil {
			return val, true
		}
	}
	return nil, false
}

// FirstString is like FirstPresent but additionally requires the value to
// be a non-empty string.
func (r Record) FirstString(keys ...string) (string, bool) {
	for _, key := range keys {
		if val, ok := r[key]; ok {
			if s, isStr := val.(string); isStr && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}

// SetMissingValue sets key to value only if the key is not already present.
func (r Record) SetMissingValue(key string, value any) {
	if _, exists := r[key]; !exists {
		r[key] = value
	}
}

func (r Record) Empty() bool {
	return len(r) == 0
}

// PrettyTable renders the Record as a two-column attr/value table.
func (r Record) PrettyTable() string {
	if len(r) == 0 {
		return "<>"
	}
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var rows [][]any
	for _, key := range keys {
		val := r[key]
		if val == nil {
			continue
		}
		rows = append(rows, []any{key, fmt.Sprintf("%v", val)})
	}
	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"attr", "value"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	return fmt.Sprintf("\n%s", t.Render("grid"))
}

// PrettyJson renders the Record as JSON, optionally indented.
func (r Record) PrettyJson(indent ...string) string {
	return marshalPretty(r, indent...)
}

func (r Record) String() string {
	return r.PrettyTable()
}

func (rs RecordSet) Empty() bool {
	return len(rs) == 0
}

// PrettyTable renders each Record of the set in order.
func (rs RecordSet) PrettyTable() string {
	if len(rs) == 0 {
		return "[]"
	}
	var out strings.Builder
	out.WriteString("[\n")
	for i, record := range rs {
		out.WriteString(record.PrettyTable())
		if i < len(rs)-1 {
			out.WriteString("\n\n")
		}
	}
	out.WriteString("\n]")
	return out.String()
}

// PrettyJson renders the RecordSet as JSON, optionally indented.
func (rs RecordSet) PrettyJson(indent ...string) string {
	return marshalPretty(rs, indent...)
}

func marshalPretty(v any, indent ...string) string {
	var (
		b   []byte
		err error
	)
	if len(indent) > 0 {
		b, err = json.MarshalIndent(v, "", indent[0])
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

// ToRecord converts a raw map into a Record.
func ToRecord(m map[string]any) Record {
	return Record(m)
}

// unmarshalToRecordUnion parses a response body into a Record (JSON object)
// or RecordSet (JSON array). Empty bodies yield an empty Record{}: callers
// must treat "no content" as valid success. A non-empty body that is not
// valid JSON raises an UnexpectedResponseError.
func unmarshalToRecordUnion(response *http.Response) (Renderable, error) {
	defer response.Body.Close()

	if response.ContentLength == 0 || response.StatusCode == http.StatusNoContent {
		return Record{}, nil
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &RequestError{
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Details: err.Error(),
		}
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Record{}, nil
	}
	switch trimmed[0] {
	case '{':
		var rec Record
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			return nil, &UnexpectedResponseError{
				Message: "response did not contain valid JSON",
				Details: string(body),
			}
		}
		return rec, nil
	case '[':
		var recSet RecordSet
		if err := json.Unmarshal(trimmed, &recSet); err != nil {
			return nil, &UnexpectedResponseError{
				Message: "response did not contain a valid JSON array of objects",
				Details: string(body),
			}
		}
		return recSet, nil
	default:
		return nil, &UnexpectedResponseError{
			Message: "response did not contain valid JSON",
			Details: string(body),
		}
	}
}
