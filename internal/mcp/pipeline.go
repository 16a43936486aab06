package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/resolve"
	"github.com/avelasquez/homearr/internal/shape"
)

// fetchList GETs an endpoint that returns a JSON array of objects.
func fetchList(ctx context.Context, c *arr.Client, path string, params url.Values) ([]*shape.Object, error) {
	var items []*shape.Object
	if err := c.Get(ctx, path, params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// fetchPage GETs a paged endpoint and unwraps its records array.
func fetchPage(ctx context.Context, c *arr.Client, path string, params url.Values) ([]*shape.Object, error) {
	var page struct {
		Records []*shape.Object `json:"records"`
	}
	if err := c.Get(ctx, path, params, &page); err != nil {
		return nil, err
	}
	return page.Records, nil
}

// listResult runs the grep filter and list summarizer over items. A bad
// pattern is a usage error and propagates to the framework as a thrown
// error; upstream failures have already been handled by the caller.
func (s *Server) listResult(items []*shape.Object, grep string, opts shape.ListOptions) (*mcpsdk.CallToolResult, error) {
	filtered, err := shape.Grep(items, grep)
	if err != nil {
		return nil, err
	}
	if opts.MaxFields <= 0 {
		opts.MaxFields = s.opts.MaxSummaryFields
	}
	return toolJSON(shape.SummarizeList(filtered, opts))
}

// summarizedList is the one-call pipeline behind most list tools: fetch,
// filter, summarize.
func (s *Server) summarizedList(ctx context.Context, c *arr.Client, path string, params url.Values, grep string, opts shape.ListOptions) (*mcpsdk.CallToolResult, error) {
	items, err := fetchList(ctx, c, path, params)
	if err != nil {
		return toolError(err.Error()), nil
	}
	return s.listResult(items, grep, opts)
}

// pagedList is summarizedList for paged endpoints.
func (s *Server) pagedList(ctx context.Context, c *arr.Client, path string, params url.Values, grep string, opts shape.ListOptions) (*mcpsdk.CallToolResult, error) {
	records, err := fetchPage(ctx, c, path, params)
	if err != nil {
		return toolError(err.Error()), nil
	}
	return s.listResult(records, grep, opts)
}

// fullDetail GETs one entity and returns its complete normalized form.
// Upstream 404 becomes a structured not_found result.
func (s *Server) fullDetail(ctx context.Context, c *arr.Client, path, notFoundMsg string) (*mcpsdk.CallToolResult, error) {
	var item shape.Object
	if err := c.Get(ctx, path, nil, &item); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(notFoundMsg), nil
		}
		return toolError(err.Error()), nil
	}
	return toolJSON(shape.FullDetail(&item))
}

// Field extraction from opaque objects.

func intField(o *shape.Object, key string) (int, bool) {
	v, ok := o.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

func stringField(o *shape.Object, key string) string {
	v, _ := o.Get(key)
	s, _ := v.(string)
	return s
}

func boolField(o *shape.Object, key string) bool {
	v, _ := o.Get(key)
	b, _ := v.(bool)
	return b
}

// Aggregate stat callbacks shared by the list tools. These read the full,
// unsummarized collection so dropped fields still count.

func monitoredStats(items []*shape.Object) []shape.Stat {
	monitored := 0
	for _, item := range items {
		if boolField(item, "monitored") {
			monitored++
		}
	}
	return []shape.Stat{
		{Name: "monitored", Value: monitored},
		{Name: "unmonitored", Value: len(items) - monitored},
	}
}

func libraryStats(items []*shape.Object) []shape.Stat {
	hasFile := 0
	for _, item := range items {
		if boolField(item, "hasFile") {
			hasFile++
		}
	}
	return append(monitoredStats(items),
		shape.Stat{Name: "downloaded", Value: hasFile},
		shape.Stat{Name: "missing", Value: len(items) - hasFile},
	)
}

// resolveResult maps a resolution failure to the right tool outcome.
// Resolver misuse (unknown or ambiguous token) is thrown to the framework;
// anything else was an upstream fetch failure and becomes an error result.
func resolveResult(err error) (*mcpsdk.CallToolResult, error) {
	var nf *resolve.NotFoundError
	var ab *resolve.AmbiguousError
	if errors.As(err, &nf) || errors.As(err, &ab) {
		return nil, err
	}
	return toolError(err.Error()), nil
}

// Reference data lookups backing the name-or-ID resolution convention.

func (s *Server) resolveSeries(ctx context.Context, token flexString) (int, error) {
	entries, err := referenceEntries(ctx, s.deps.Sonarr, "/api/v3/series", "title")
	if err != nil {
		return 0, err
	}
	return resolve.NameOrID(string(token), entries, "series")
}

func (s *Server) resolveMovie(ctx context.Context, token flexString) (int, error) {
	entries, err := referenceEntries(ctx, s.deps.Radarr, "/api/v3/movie", "title")
	if err != nil {
		return 0, err
	}
	return resolve.NameOrID(string(token), entries, "movie")
}

func referenceEntries(ctx context.Context, c *arr.Client, path, nameKey string) ([]resolve.Entry, error) {
	items, err := fetchList(ctx, c, path, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]resolve.Entry, 0, len(items))
	for _, item := range items {
		id, ok := intField(item, "id")
		if !ok {
			continue
		}
		entries = append(entries, resolve.Entry{ID: id, Name: stringField(item, nameKey)})
	}
	return entries, nil
}

func resolveQualityProfile(ctx context.Context, c *arr.Client, token flexString) (int, error) {
	entries, err := referenceEntries(ctx, c, "/api/v3/qualityprofile", "name")
	if err != nil {
		return 0, err
	}
	return resolve.NameOrID(string(token), entries, "quality profile")
}

// resolveRootFolder returns both the folder ID and its path; add endpoints
// want the path while the resolver convention works on IDs.
func resolveRootFolder(ctx context.Context, c *arr.Client, token flexString) (int, string, error) {
	items, err := fetchList(ctx, c, "/api/v3/rootfolder", nil)
	if err != nil {
		return 0, "", err
	}
	entries := make([]resolve.Entry, 0, len(items))
	paths := make(map[int]string, len(items))
	for _, item := range items {
		id, ok := intField(item, "id")
		if !ok {
			continue
		}
		path := stringField(item, "path")
		entries = append(entries, resolve.Entry{ID: id, Name: path})
		paths[id] = path
	}
	id, err := resolve.PathOrID(string(token), entries, "root folder")
	if err != nil {
		return 0, "", err
	}
	return id, paths[id], nil
}

func resolveTags(ctx context.Context, c *arr.Client, tokens []flexString) ([]int, error) {
	entries, err := referenceEntries(ctx, c, "/api/v3/tag", "label")
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(tokens))
	for _, token := range tokens {
		id, err := resolve.NameOrID(string(token), entries, "tag")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// removeQueueItems removes several queue entries at once. The ids are
// partitioned by whether the entry is tracked by a download client (it
// carries a downloadId) and the two bulk deletes run concurrently: tracked
// entries honor the caller's removeFromClient choice, pending entries never
// ask the client to remove something it does not have. Each branch's
// failure is reported independently instead of aborting the other.
func (s *Server) removeQueueItems(ctx context.Context, c *arr.Client, ids []int, blocklist, removeFromClient bool) (*mcpsdk.CallToolResult, error) {
	queue, err := fetchList(ctx, c, "/api/v3/queue/details", nil)
	if err != nil {
		return toolError(err.Error()), nil
	}

	known := make(map[int]bool, len(queue)) // id -> tracked
	for _, item := range queue {
		if id, ok := intField(item, "id"); ok {
			known[id] = stringField(item, "downloadId") != ""
		}
	}

	var tracked, pending, missing []int
	for _, id := range ids {
		isTracked, ok := known[id]
		switch {
		case !ok:
			missing = append(missing, id)
		case isTracked:
			tracked = append(tracked, id)
		default:
			pending = append(pending, id)
		}
	}
	if len(missing) > 0 {
		return notFound(fmt.Sprintf("Queue items not found: %v.", missing)), nil
	}

	deleteBulk := func(ids []int, removeFromClient bool) error {
		if len(ids) == 0 {
			return nil
		}
		params := url.Values{
			"blocklist":        {strconv.FormatBool(blocklist)},
			"removeFromClient": {strconv.FormatBool(removeFromClient)},
		}
		return c.DeleteBody(ctx, "/api/v3/queue/bulk", params, map[string]any{"ids": ids})
	}

	var wg sync.WaitGroup
	var trackedErr, pendingErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		trackedErr = deleteBulk(tracked, removeFromClient)
	}()
	go func() {
		defer wg.Done()
		pendingErr = deleteBulk(pending, false)
	}()
	wg.Wait()

	report := shape.NewObject()
	report.Set("success", trackedErr == nil && pendingErr == nil)
	if trackedErr != nil {
		report.Set("trackedError", trackedErr.Error())
	} else {
		report.Set("removedTracked", len(tracked))
	}
	if pendingErr != nil {
		report.Set("pendingError", pendingErr.Error())
	} else {
		report.Set("removedPending", len(pending))
	}
	report.Set("blocklisted", blocklist && trackedErr == nil && pendingErr == nil)
	return toolJSON(report)
}
