package shape

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSummarizeItemPinsIDAndPicksSmallest(t *testing.T) {
	t.Parallel()
	item := mustObject(t, `{"id":7,"title":"`+strings.Repeat("A", 300)+`","year":2020,"monitored":true}`)

	got := SummarizeItem(item, 3)

	// id always first, then the smallest scalars: true (4) and 2020 (4)
	// beat the 302-byte title.
	keys := got.Keys()
	if len(keys) != 3 {
		t.Fatalf("expected 3 fields, got %v", keys)
	}
	if keys[0] != "id" {
		t.Errorf("expected id first, got %q", keys[0])
	}
	if _, ok := got.Get("title"); ok {
		t.Error("oversized title should have been dropped")
	}
	if _, ok := got.Get("monitored"); !ok {
		t.Error("monitored should have been kept")
	}
	if _, ok := got.Get("year"); !ok {
		t.Error("year should have been kept")
	}
}

func TestSummarizeItemTieBreakKeepsSourceOrder(t *testing.T) {
	t.Parallel()
	// All values serialize to the same length; selection must keep the
	// document's field order.
	item := mustObject(t, `{"zz":11,"aa":22,"mm":33}`)

	got := SummarizeItem(item, 2)

	keys := got.Keys()
	if len(keys) != 2 || keys[0] != "zz" || keys[1] != "aa" {
		t.Errorf("expected [zz aa], got %v", keys)
	}
}

func TestSummarizeItemSkipsContainersAndNilID(t *testing.T) {
	t.Parallel()
	item := mustObject(t, `{"id":null,"seasons":[1,2,3],"images":{"poster":"x"},"status":"ended"}`)

	got := SummarizeItem(item, 5)

	if _, ok := got.Get("id"); ok {
		t.Error("null id should not be pinned")
	}
	if _, ok := got.Get("seasons"); ok {
		t.Error("array field should not appear in summary")
	}
	if _, ok := got.Get("images"); ok {
		t.Error("object field should not appear in summary")
	}
	if v, _ := got.Get("status"); v != "ended" {
		t.Errorf("expected status kept, got %v", v)
	}
}

func TestSummarizeItemFewerFieldsThanBudget(t *testing.T) {
	t.Parallel()
	item := mustObject(t, `{"id":1,"title":"Up"}`)
	got := SummarizeItem(item, 10)
	if got.Len() != 2 {
		t.Errorf("expected 2 fields, got %d", got.Len())
	}
}

func TestSummarizeList(t *testing.T) {
	t.Parallel()
	items := []*Object{
		mustObject(t, `{"id":1,"title":"One","monitored":true}`),
		mustObject(t, `{"id":2,"title":"Two","monitored":false}`),
	}

	got := SummarizeList(items, ListOptions{
		MaxFields: 5,
		Aggregate: func(items []*Object) []Stat {
			monitored := 0
			for _, it := range items {
				if v, _ := it.Get("monitored"); v == true {
					monitored++
				}
			}
			return []Stat{{Name: "monitored", Value: monitored}}
		},
	})

	summary, ok := got.Get("summary")
	if !ok {
		t.Fatal("summary block missing")
	}
	sum := summary.(*Object)
	if v, _ := sum.Get("total"); v != 2 {
		t.Errorf("expected total 2, got %v", v)
	}
	if v, _ := sum.Get("monitored"); v != 1 {
		t.Errorf("expected monitored 1, got %v", v)
	}

	rawItems, _ := got.Get("items")
	list := rawItems.([]any)
	if len(list) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(list))
	}
}

func TestSummarizeListPreserve(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", 500)
	items := []*Object{
		mustObject(t, `{"id":9,"a":1,"b":2,"outputPath":"`+long+`"}`),
	}

	got := SummarizeList(items, ListOptions{
		MaxFields: 2,
		Preserve:  []string{"outputPath", "absent"},
	})

	rawItems, _ := got.Get("items")
	item := rawItems.([]any)[0].(*Object)

	v, ok := item.Get("outputPath")
	if !ok {
		t.Fatal("preserved field missing")
	}
	if v != long {
		t.Errorf("preserved value changed: %v", v)
	}
	if _, ok := item.Get("absent"); ok {
		t.Error("absent preserve field should not be invented")
	}
}

func TestSummarizeListEmpty(t *testing.T) {
	t.Parallel()
	got := SummarizeList(nil, ListOptions{})

	summary, _ := got.Get("summary")
	if v, _ := summary.(*Object).Get("total"); v != 0 {
		t.Errorf("expected total 0, got %v", v)
	}
	rawItems, _ := got.Get("items")
	if len(rawItems.([]any)) != 0 {
		t.Error("expected no items")
	}
}

func TestFullDetailNormalizes(t *testing.T) {
	t.Parallel()
	item := mustObject(t, `{"id":1,"nested":{"deep":[1,2]}}`)
	got := FullDetail(item)

	out, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"id":1,"nested":{"deep":[1,2]}}` {
		t.Errorf("unexpected detail: %s", out)
	}
}

func TestLiteralLen(t *testing.T) {
	t.Parallel()
	cases := []struct {
		v    any
		want int
	}{
		{nil, 4},                // null
		{true, 4},               // true
		{false, 5},              // false
		{"ab", 4},               // "ab" with quotes
		{json.Number("2020"), 4}, // literal digits
	}
	for _, c := range cases {
		if got := literalLen(c.v); got != c.want {
			t.Errorf("literalLen(%v) = %d, want %d", c.v, got, c.want)
		}
	}
}
