package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avelasquez/homearr/internal/arr"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newFakeService runs an httptest server with the given mux and returns an
// upstream client pointed at it.
func newFakeService(t *testing.T, mux *http.ServeMux) *arr.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return arr.New(server.URL, "test-api-key", discardLogger)
}

func jsonResponse(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(v)
	}
}

func callTool(t *testing.T, srv *Server, toolName string, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	_, err := srv.MCPServer().Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call tool %s: %v", toolName, err)
	}
	return result
}

func resultText(t *testing.T, result *mcpsdk.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content block, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(*mcpsdk.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func resultJSON(t *testing.T, result *mcpsdk.CallToolResult) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	return got
}

var testSeries = []map[string]any{
	{"id": 1, "title": "Breaking Bad", "status": "ended", "monitored": true},
	{"id": 2, "title": "The Wire", "status": "ended", "monitored": false},
}

func TestListSeriesSummarizes(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/series", jsonResponse(testSeries))
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_list_series", map[string]any{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", resultText(t, result))
	}
	got := resultJSON(t, result)

	summary := got["summary"].(map[string]any)
	if summary["total"] != float64(2) {
		t.Errorf("expected total 2, got %v", summary["total"])
	}
	if summary["monitored"] != float64(1) || summary["unmonitored"] != float64(1) {
		t.Errorf("unexpected aggregate stats: %v", summary)
	}
	items := got["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestListSeriesGrep(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/series", jsonResponse(testSeries))
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_list_series", map[string]any{"grep": "breaking"})
	got := resultJSON(t, result)

	summary := got["summary"].(map[string]any)
	if summary["total"] != float64(1) {
		t.Errorf("expected total 1 after filter, got %v", summary["total"])
	}
}

func TestListSeriesBadGrepPattern(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/series", jsonResponse(testSeries))
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_list_series", map[string]any{"grep": "[bad(regex"})
	if !result.IsError {
		t.Fatal("expected error result for bad pattern")
	}
}

func TestSummaryFieldCap(t *testing.T) {
	t.Parallel()
	wide := []map[string]any{{
		"id": 1, "a": 1, "b": 2, "c": 3, "d": 4, "e": 5,
	}}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/series", jsonResponse(wide))
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{MaxSummaryFields: 3}, discardLogger)

	result := callTool(t, srv, "sonarr_list_series", map[string]any{})
	got := resultJSON(t, result)

	item := got["items"].([]any)[0].(map[string]any)
	if len(item) != 3 {
		t.Errorf("expected 3 fields per item, got %d: %v", len(item), item)
	}
	if item["id"] != float64(1) {
		t.Errorf("id should always survive: %v", item)
	}
}

func TestDescribeSeriesNotFound(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/series/99", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_describe_series", map[string]any{"series_id": 99})
	if result.IsError {
		t.Fatal("domain miss should be a normal result, not an error")
	}
	got := resultJSON(t, result)
	if got["error"] != "not_found" {
		t.Errorf("expected not_found, got %v", got)
	}
}

func TestListEpisodesResolvesSeriesName(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/series", jsonResponse(testSeries))
	mux.HandleFunc("/api/v3/episode", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("seriesId"); got != "2" {
			t.Errorf("unexpected seriesId: %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 10, "title": "Pilot", "monitored": true, "hasFile": true},
		})
	})
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_list_episodes", map[string]any{"series": "the wire"})
	if result.IsError {
		t.Fatalf("expected success, got: %s", resultText(t, result))
	}
	got := resultJSON(t, result)
	summary := got["summary"].(map[string]any)
	if summary["downloaded"] != float64(1) || summary["missing"] != float64(0) {
		t.Errorf("unexpected stats: %v", summary)
	}
}

func TestListEpisodesUnknownSeriesIsError(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/series", jsonResponse(testSeries))
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_list_episodes", map[string]any{"series": "no such show"})
	if !result.IsError {
		t.Fatal("unknown series name should be an error")
	}
}

func TestReadOnlyHidesWriteTools(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{ReadOnly: true}, discardLogger)

	ctx := context.Background()
	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()
	if _, err := srv.MCPServer().Connect(ctx, serverTransport, nil); err != nil {
		t.Fatalf("server connect: %v", err)
	}
	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}

	names := make(map[string]bool, len(tools.Tools))
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	if !names["sonarr_list_series"] {
		t.Error("read tool missing in read-only mode")
	}
	for _, banned := range []string{"sonarr_add_series", "sonarr_delete_series", "sonarr_remove_queue_items"} {
		if names[banned] {
			t.Errorf("write tool %s registered in read-only mode", banned)
		}
	}
}

func TestLookupMovieRequiresExactlyOneSelector(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	srv := NewServer(Deps{Radarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "radarr_lookup_movie", map[string]any{
		"term":    "dune",
		"tmdb_id": 438631,
	})
	if result.IsError {
		t.Fatal("parameter misuse should be a structured result")
	}
	got := resultJSON(t, result)
	if got["error"] != "invalid_params" {
		t.Errorf("expected invalid_params, got %v", got)
	}
}

func TestAddMovieResolvesReferences(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/qualityprofile", jsonResponse([]map[string]any{
		{"id": 4, "name": "HD-1080p"},
	}))
	mux.HandleFunc("/api/v3/rootfolder", jsonResponse([]map[string]any{
		{"id": 1, "path": "/mnt/media/movies"},
	}))
	mux.HandleFunc("/api/v3/tag", jsonResponse([]map[string]any{}))
	mux.HandleFunc("/api/v3/movie/lookup", jsonResponse([]map[string]any{
		{"title": "Dune", "tmdbId": 438631, "year": 2021},
	}))
	mux.HandleFunc("/api/v3/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["qualityProfileId"] != float64(4) {
			t.Errorf("profile not resolved: %v", body["qualityProfileId"])
		}
		if body["rootFolderPath"] != "/mnt/media/movies" {
			t.Errorf("root folder not resolved: %v", body["rootFolderPath"])
		}
		if body["monitored"] != true {
			t.Errorf("monitored should default true: %v", body["monitored"])
		}
		body["id"] = 12
		json.NewEncoder(w).Encode(body)
	})
	srv := NewServer(Deps{Radarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "radarr_add_movie", map[string]any{
		"tmdb_id":         438631,
		"quality_profile": "hd-1080p",
		"root_folder":     "/movies",
	})
	if result.IsError {
		t.Fatalf("expected success, got: %s", resultText(t, result))
	}
	got := resultJSON(t, result)
	if got["id"] != float64(12) {
		t.Errorf("expected created movie, got %v", got)
	}
}

func TestAddMovieAmbiguousProfileIsError(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/qualityprofile", jsonResponse([]map[string]any{
		{"id": 1, "name": "HD"},
		{"id": 2, "name": "hd"},
	}))
	srv := NewServer(Deps{Radarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "radarr_add_movie", map[string]any{
		"tmdb_id":         1,
		"quality_profile": "HD",
		"root_folder":     "/movies",
	})
	if !result.IsError {
		t.Fatal("ambiguous profile name should be an error")
	}
}
