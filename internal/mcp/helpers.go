package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}

// errorBody is the structured shape for expected domain failures, returned
// as a normal tool result so the calling agent can branch on it.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func notFound(msg string) *mcpsdk.CallToolResult {
	res, _ := toolJSON(errorBody{Error: "not_found", Message: msg})
	return res
}

func invalidParams(msg string) *mcpsdk.CallToolResult {
	res, _ := toolJSON(errorBody{Error: "invalid_params", Message: msg})
	return res
}

// successBody acknowledges a mutation that has no interesting payload.
type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func success(format string, args ...any) (*mcpsdk.CallToolResult, error) {
	return toolJSON(successBody{Success: true, Message: fmt.Sprintf(format, args...)})
}

// parseArgs decodes the raw tool arguments into out. Absent arguments are
// fine; out keeps its zero values.
func parseArgs(req *mcpsdk.CallToolRequest, out any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, out)
}

// flexString accepts a JSON string or number, for parameters that take a
// human-readable name or a numeric ID. Numbers keep their literal text.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

// Schema builders. The SDK accepts plain JSON-schema maps.

func objSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		schema["required"] = req
	}
	return schema
}

func strProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func intProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func boolProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func intArrayProp(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "integer"},
		"description": desc,
	}
}

func grepProp() map[string]any {
	return strProp("Regex pattern to filter results, matched case-insensitively against each item's full JSON form")
}

func nameOrIDProp(desc string) map[string]any {
	// string or integer
	return map[string]any{
		"type":        []any{"string", "integer"},
		"description": desc,
	}
}
