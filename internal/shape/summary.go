package shape

import (
	"encoding/json"
	"math"
	"sort"
)

// DefaultMaxFields caps how many fields an item summary carries when the
// caller does not say otherwise.
const DefaultMaxFields = 10

// Stat is one aggregate entry in a list summary block.
type Stat struct {
	Name  string
	Value any
}

// ListOptions controls list summarization.
type ListOptions struct {
	// MaxFields caps fields per item summary; DefaultMaxFields when zero.
	MaxFields int

	// Aggregate computes extra summary stats from the full, unsummarized
	// collection, so it can read fields the per-item summaries drop.
	Aggregate func(items []*Object) []Stat

	// Preserve names fields that are always copied into each item summary
	// after size selection, even when they are large. Preserved fields
	// never displace selected ones.
	Preserve []string
}

// SummarizeItem returns a compact preview of one item: the "id" field if
// present, then the scalar fields with the smallest serialized values,
// ascending, until maxFields slots are used. Ties keep original field
// order. Container-valued fields never appear; an agent wanting them asks
// for full detail by id.
func SummarizeItem(item *Object, maxFields int) *Object {
	full := normalizeObject(item)
	out := NewObject()

	budget := maxFields
	if id, ok := full.Get("id"); ok && id != nil {
		out.Set("id", id)
		budget--
	}

	type ranked struct {
		key  string
		val  any
		size int
	}
	fields := make([]ranked, 0, full.Len())
	for _, k := range full.Keys() {
		if k == "id" {
			continue
		}
		v, _ := full.Get(k)
		if !isScalar(v) {
			continue
		}
		fields = append(fields, ranked{key: k, val: v, size: literalLen(v)})
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].size < fields[j].size })

	for _, f := range fields {
		if budget <= 0 {
			break
		}
		out.Set(f.key, f.val)
		budget--
	}
	return out
}

// SummarizeList wraps SummarizeItem over a collection and prepends an
// aggregate block: {summary: {total, ...stats}, items: [...]}. The total
// always equals the (post-filter) input length.
func SummarizeList(items []*Object, opts ListOptions) *Object {
	maxFields := opts.MaxFields
	if maxFields <= 0 {
		maxFields = DefaultMaxFields
	}

	summary := NewObject()
	summary.Set("total", len(items))
	if opts.Aggregate != nil {
		for _, st := range opts.Aggregate(items) {
			summary.Set(st.Name, st.Value)
		}
	}

	summarized := make([]any, 0, len(items))
	for _, item := range items {
		s := SummarizeItem(item, maxFields)
		if len(opts.Preserve) > 0 {
			full := normalizeObject(item)
			for _, name := range opts.Preserve {
				if _, ok := s.Get(name); ok {
					continue
				}
				if v, ok := full.Get(name); ok {
					s.Set(name, v)
				}
			}
		}
		summarized = append(summarized, s)
	}

	out := NewObject()
	out.Set("summary", summary)
	out.Set("items", summarized)
	return out
}

// FullDetail returns the complete normalized form of one item, untruncated.
func FullDetail(item *Object) *Object {
	return normalizeObject(item)
}

func normalizeObject(item *Object) *Object {
	return Normalize(item).(*Object)
}

// isScalar reports whether a normalized value is a JSON leaf. After
// Normalize, containers are only *Object, map[string]any or []any.
func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, json.Number, float64, int, int64:
		return true
	}
	return false
}

// literalLen is the length of the value's minimal JSON literal: strings
// count their quotes, numbers and bools their literal text, nil is "null".
func literalLen(v any) int {
	b, err := json.Marshal(v)
	if err != nil {
		return math.MaxInt
	}
	return len(b)
}
