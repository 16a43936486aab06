package mcp

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"testing"
)

var testQueue = []map[string]any{
	{"id": 1, "title": "Show.S01E01", "status": "downloading", "downloadId": "d1"},
	{"id": 2, "title": "Show.S01E02", "status": "delay"},
	{"id": 3, "title": "Show.S01E03", "status": "downloading", "downloadId": "d3"},
}

// bulkDelete records one DELETE /queue/bulk call.
type bulkDelete struct {
	ids              []int
	removeFromClient string
	blocklist        string
}

func queueMux(t *testing.T, failTracked bool) (*http.ServeMux, *[]bulkDelete) {
	t.Helper()
	var mu sync.Mutex
	calls := &[]bulkDelete{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/queue/details", jsonResponse(testQueue))
	mux.HandleFunc("/api/v3/queue/bulk", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method: %s", r.Method)
		}
		var body struct {
			IDs []int `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		call := bulkDelete{
			ids:              body.IDs,
			removeFromClient: r.URL.Query().Get("removeFromClient"),
			blocklist:        r.URL.Query().Get("blocklist"),
		}
		mu.Lock()
		*calls = append(*calls, call)
		mu.Unlock()

		if failTracked && call.removeFromClient == "true" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return mux, calls
}

func TestRemoveQueueItemsPartitions(t *testing.T) {
	t.Parallel()
	mux, calls := queueMux(t, false)
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_remove_queue_items", map[string]any{
		"queue_ids": []any{1, 2, 3},
		"blocklist": true,
	})
	if result.IsError {
		t.Fatalf("expected success, got: %s", resultText(t, result))
	}
	got := resultJSON(t, result)
	if got["success"] != true {
		t.Errorf("expected success report, got %v", got)
	}
	if got["removedTracked"] != float64(2) || got["removedPending"] != float64(1) {
		t.Errorf("unexpected counts: %v", got)
	}
	if got["blocklisted"] != true {
		t.Errorf("expected blocklisted true: %v", got)
	}

	if len(*calls) != 2 {
		t.Fatalf("expected 2 bulk deletes, got %d", len(*calls))
	}
	var tracked, pending *bulkDelete
	for i := range *calls {
		if (*calls)[i].removeFromClient == "true" {
			tracked = &(*calls)[i]
		} else {
			pending = &(*calls)[i]
		}
	}
	if tracked == nil || pending == nil {
		t.Fatalf("missing a branch: %+v", *calls)
	}

	sort.Ints(tracked.ids)
	if len(tracked.ids) != 2 || tracked.ids[0] != 1 || tracked.ids[1] != 3 {
		t.Errorf("unexpected tracked ids: %v", tracked.ids)
	}
	if len(pending.ids) != 1 || pending.ids[0] != 2 {
		t.Errorf("unexpected pending ids: %v", pending.ids)
	}
	if tracked.blocklist != "true" || pending.blocklist != "true" {
		t.Errorf("blocklist not propagated: %+v %+v", tracked, pending)
	}
}

func TestRemoveQueueItemsOnlyPendingSkipsTrackedCall(t *testing.T) {
	t.Parallel()
	mux, calls := queueMux(t, false)
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_remove_queue_items", map[string]any{
		"queue_ids": []any{2},
	})
	if result.IsError {
		t.Fatalf("expected success, got: %s", resultText(t, result))
	}
	if len(*calls) != 1 {
		t.Fatalf("expected 1 bulk delete, got %d", len(*calls))
	}
	if (*calls)[0].removeFromClient != "false" {
		t.Errorf("pending delete must not touch the download client: %+v", (*calls)[0])
	}
}

func TestRemoveQueueItemsUnknownID(t *testing.T) {
	t.Parallel()
	mux, calls := queueMux(t, false)
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_remove_queue_items", map[string]any{
		"queue_ids": []any{1, 42},
	})
	if result.IsError {
		t.Fatal("unknown queue id should be a structured result")
	}
	got := resultJSON(t, result)
	if got["error"] != "not_found" {
		t.Errorf("expected not_found, got %v", got)
	}
	if len(*calls) != 0 {
		t.Errorf("nothing should be deleted when any id is unknown: %+v", *calls)
	}
}

func TestRemoveQueueItemsBranchFailureIsIsolated(t *testing.T) {
	t.Parallel()
	mux, _ := queueMux(t, true)
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_remove_queue_items", map[string]any{
		"queue_ids": []any{1, 2},
	})
	if result.IsError {
		t.Fatalf("partial failure should still be a report: %s", resultText(t, result))
	}
	got := resultJSON(t, result)
	if got["success"] != false {
		t.Errorf("expected success false, got %v", got)
	}
	if _, ok := got["trackedError"]; !ok {
		t.Errorf("tracked branch error missing: %v", got)
	}
	if got["removedPending"] != float64(1) {
		t.Errorf("pending branch should have succeeded: %v", got)
	}
}

func TestRemoveQueueItemSingle(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/queue/7", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Query().Get("removeFromClient") != "true" {
			t.Errorf("removeFromClient should default true")
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_remove_queue_item", map[string]any{"queue_id": 7})
	if result.IsError {
		t.Fatalf("expected success, got: %s", resultText(t, result))
	}
	got := resultJSON(t, result)
	if got["success"] != true {
		t.Errorf("unexpected report: %v", got)
	}
}

func TestDescribeQueueItem(t *testing.T) {
	t.Parallel()
	mux, _ := queueMux(t, false)
	srv := NewServer(Deps{Sonarr: newFakeService(t, mux)}, Options{}, discardLogger)

	result := callTool(t, srv, "sonarr_describe_queue_item", map[string]any{"queue_id": 2})
	if result.IsError {
		t.Fatalf("expected success, got: %s", resultText(t, result))
	}
	got := resultJSON(t, result)
	if got["title"] != "Show.S01E02" {
		t.Errorf("wrong item: %v", got)
	}

	result = callTool(t, srv, "sonarr_describe_queue_item", map[string]any{"queue_id": 404})
	got = resultJSON(t, result)
	if got["error"] != "not_found" {
		t.Errorf("expected not_found, got %v", got)
	}
}
