package shape

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func mustObject(t *testing.T, raw string) *Object {
	t.Helper()
	var obj Object
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	return &obj
}

func TestGrepEmptyPatternKeepsEverything(t *testing.T) {
	t.Parallel()
	items := []*Object{
		mustObject(t, `{"id":1,"title":"Breaking Bad"}`),
		mustObject(t, `{"id":2,"title":"The Wire"}`),
	}
	got, err := Grep(items, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 items, got %d", len(got))
	}
}

func TestGrepCaseInsensitive(t *testing.T) {
	t.Parallel()
	items := []*Object{
		mustObject(t, `{"id":1,"title":"Breaking Bad"}`),
		mustObject(t, `{"id":2,"title":"The Wire"}`),
	}
	got, err := Grep(items, "BREAKING")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if id, _ := got[0].Get("id"); id.(json.Number).String() != "1" {
		t.Errorf("wrong item matched: %v", id)
	}
}

func TestGrepMatchesNestedFieldsAndKeys(t *testing.T) {
	t.Parallel()
	items := []*Object{
		mustObject(t, `{"id":1,"statistics":{"percentOfEpisodes":98.5}}`),
		mustObject(t, `{"id":2,"statistics":{"percentOfEpisodes":100}}`),
	}

	// Matches a nested value.
	got, err := Grep(items, "98\\.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("nested value: expected 1 item, got %d", len(got))
	}

	// Matches a key name, so both items hit.
	got, err = Grep(items, "percentOfEpisodes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("key match: expected 2 items, got %d", len(got))
	}
}

func TestGrepPreservesOrder(t *testing.T) {
	t.Parallel()
	items := []*Object{
		mustObject(t, `{"id":3,"status":"continuing"}`),
		mustObject(t, `{"id":1,"status":"ended"}`),
		mustObject(t, `{"id":2,"status":"continuing"}`),
	}
	got, err := Grep(items, "continuing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	first, _ := got[0].Get("id")
	second, _ := got[1].Get("id")
	if first.(json.Number).String() != "3" || second.(json.Number).String() != "2" {
		t.Errorf("order changed: %v, %v", first, second)
	}
}

func TestGrepInvalidPattern(t *testing.T) {
	t.Parallel()
	items := []*Object{mustObject(t, `{"id":1}`)}

	_, err := Grep(items, "[bad(regex")
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	var perr *PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PatternError, got %T", err)
	}
	if !strings.Contains(err.Error(), "[bad(regex") {
		t.Errorf("error should name the pattern: %v", err)
	}
}

func TestGrepNoMatches(t *testing.T) {
	t.Parallel()
	items := []*Object{mustObject(t, `{"id":1,"title":"Severance"}`)}
	got, err := Grep(items, "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 items, got %d", len(got))
	}
}
