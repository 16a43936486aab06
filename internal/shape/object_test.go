package shape

import (
	"encoding/json"
	"testing"
)

func TestObjectPreservesFieldOrder(t *testing.T) {
	t.Parallel()
	raw := `{"zebra":1,"apple":{"nested":true,"also":2},"mango":[1,2,{"x":"y"}]}`

	var obj Object
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"zebra", "apple", "mango"}
	got := obj.Keys()
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	out, err := json.Marshal(&obj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Errorf("round trip changed document:\n in: %s\nout: %s", raw, out)
	}
}

func TestObjectNestedValuesAreOrdered(t *testing.T) {
	t.Parallel()
	var obj Object
	if err := json.Unmarshal([]byte(`{"outer":{"b":1,"a":2}}`), &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	v, ok := obj.Get("outer")
	if !ok {
		t.Fatal("outer missing")
	}
	inner, ok := v.(*Object)
	if !ok {
		t.Fatalf("expected nested *Object, got %T", v)
	}
	keys := inner.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("nested order lost: %v", keys)
	}
}

func TestObjectNumbersKeepLiteralText(t *testing.T) {
	t.Parallel()
	var obj Object
	if err := json.Unmarshal([]byte(`{"a":1000000,"b":7.50}`), &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	a, _ := obj.Get("a")
	n, ok := a.(json.Number)
	if !ok {
		t.Fatalf("expected json.Number, got %T", a)
	}
	if n.String() != "1000000" {
		t.Errorf("expected literal 1000000, got %s", n)
	}
	b, _ := obj.Get("b")
	if b.(json.Number).String() != "7.50" {
		t.Errorf("expected literal 7.50, got %v", b)
	}
}

func TestObjectSet(t *testing.T) {
	t.Parallel()
	obj := NewObject()
	obj.Set("first", 1)
	obj.Set("second", 2)
	obj.Set("first", 10) // overwrite keeps position

	keys := obj.Keys()
	if len(keys) != 2 || keys[0] != "first" || keys[1] != "second" {
		t.Errorf("unexpected keys: %v", keys)
	}
	v, _ := obj.Get("first")
	if v != 10 {
		t.Errorf("expected 10, got %v", v)
	}
}

func TestObjectEmpty(t *testing.T) {
	t.Parallel()
	var obj Object
	if err := json.Unmarshal([]byte(`{}`), &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if obj.Len() != 0 {
		t.Errorf("expected empty object, got %d keys", obj.Len())
	}
	out, err := json.Marshal(&obj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "{}" {
		t.Errorf("expected {}, got %s", out)
	}
}
