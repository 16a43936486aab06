package mcp

import (
	"encoding/json"
	"testing"
)

func TestFlexStringAcceptsStringOrNumber(t *testing.T) {
	t.Parallel()
	var args struct {
		Series flexString `json:"series"`
	}

	if err := json.Unmarshal([]byte(`{"series":"The Wire"}`), &args); err != nil {
		t.Fatalf("string: %v", err)
	}
	if args.Series != "The Wire" {
		t.Errorf("unexpected value: %q", args.Series)
	}

	if err := json.Unmarshal([]byte(`{"series":42}`), &args); err != nil {
		t.Fatalf("number: %v", err)
	}
	if args.Series != "42" {
		t.Errorf("number should keep its literal text: %q", args.Series)
	}

	if err := json.Unmarshal([]byte(`{"series":null}`), &args); err != nil {
		t.Fatalf("null: %v", err)
	}
	if args.Series != "" {
		t.Errorf("null should decode empty: %q", args.Series)
	}
}

func TestObjSchemaRequired(t *testing.T) {
	t.Parallel()
	schema := objSchema(map[string]any{"a": strProp("x")}, "a")
	req, ok := schema["required"].([]any)
	if !ok || len(req) != 1 || req[0] != "a" {
		t.Errorf("unexpected required list: %v", schema["required"])
	}

	schema = objSchema(map[string]any{"a": strProp("x")})
	if _, ok := schema["required"]; ok {
		t.Error("required should be omitted when empty")
	}
}
