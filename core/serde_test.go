package core

import (
	"strings"
	"testing"
)

func TestParamsToQuery(t *testing.T) {
	params := Params{"controller": "auto", "count": 3}
	query := params.ToQuery()
	if !strings.Contains(query, "controller=auto") || !strings.Contains(query, "count=3") {
		t.Errorf("unexpected query string %q", query)
	}
}

func TestParamsUpdate(t *testing.T) {
	params := Params{"a": 1}
	params.Update(Params{"a": 2, "b": 3}, false)
	if params["a"] != 1 || params["b"] != 3 {
		t.Errorf("non-override update changed existing keys: %v", params)
	}
	params.Update(Params{"a": 2}, true)
	if params["a"] != 2 {
		t.Errorf("override update did not replace existing key: %v", params)
	}
	params.Without("b")
	if _, ok := params["b"]; ok {
		t.Error("Without did not remove the key")
	}
}

func TestRecordFirstPresent(t *testing.T) {
	record := Record{"wwn": "abc", "id": "def", "empty": nil}
	value, ok := record.FirstPresent("missing", "empty", "wwn", "id")
	if !ok || value != "abc" {
		t.Errorf("expected first non-nil candidate, got %v ok=%v", value, ok)
	}
	if _, ok := record.FirstPresent("missing"); ok {
		t.Error("expected no match for a missing key")
	}
}

func TestRecordFirstString(t *testing.T) {
	record := Record{"count": 5, "label": "  ", "name": "vol1"}
	value, ok := record.FirstString("count", "label", "name")
	if !ok || value != "vol1" {
		t.Errorf("expected non-empty string candidate, got %q ok=%v", value, ok)
	}
}

func TestRecordSetMissingValue(t *testing.T) {
	record := Record{"capacity": 100}
	record.SetMissingValue("capacity", 200)
	record.SetMissingValue("poolName", "pool-a")
	if record["capacity"] != 100 {
		t.Error("SetMissingValue overwrote an existing field")
	}
	if record["poolName"] != "pool-a" {
		t.Error("SetMissingValue did not set a missing field")
	}
}

func TestRecordPrettyJson(t *testing.T) {
	record := Record{"name": "vol1"}
	if got := record.PrettyJson(); got != `{"name":"vol1"}` {
		t.Errorf("unexpected JSON %q", got)
	}
	indented := record.PrettyJson("  ")
	if !strings.Contains(indented, "\n") {
		t.Errorf("expected indented output, got %q", indented)
	}
}

func TestRecordSetPrettyTableEmpty(t *testing.T) {
	if got := (RecordSet{}).PrettyTable(); got != "[]" {
		t.Errorf("unexpected rendering for an empty set: %q", got)
	}
}
