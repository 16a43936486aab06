package shape

import (
	"testing"
	"time"
)

func TestNormalizeTime(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	got := Normalize(ts)
	if got != "2024-03-01T12:30:00Z" {
		t.Errorf("unexpected time form: %v", got)
	}
}

func TestNormalizeContainers(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	obj := NewObject()
	obj.Set("when", ts)
	obj.Set("list", []any{ts, "x"})
	obj.Set("plain", map[string]any{"inner": ts})

	got := Normalize(obj).(*Object)

	if v, _ := got.Get("when"); v != "2024-03-01T00:00:00Z" {
		t.Errorf("object value not normalized: %v", v)
	}
	list, _ := got.Get("list")
	if list.([]any)[0] != "2024-03-01T00:00:00Z" {
		t.Errorf("array element not normalized: %v", list)
	}
	plain, _ := got.Get("plain")
	if plain.(map[string]any)["inner"] != "2024-03-01T00:00:00Z" {
		t.Errorf("map value not normalized: %v", plain)
	}
}

func TestNormalizeScalarsPassThrough(t *testing.T) {
	t.Parallel()
	for _, v := range []any{nil, "s", true, 42, 4.2} {
		if got := Normalize(v); got != v {
			t.Errorf("Normalize(%v) = %v", v, got)
		}
	}
}
