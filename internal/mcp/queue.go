package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/shape"
)

// Download queue tools. Sonarr and Radarr share the queue endpoints, so the
// handler bodies are generic over the client and each service registers a
// thin wrapper.

// queuePreserve keeps the fields an agent needs to triage a download even
// when they are too large for the size-ranked summary.
var queuePreserve = []string{
	"title", "status", "downloadId", "downloadClient",
	"outputPath", "indexer", "timeleft", "errorMessage",
}

func listQueueTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_list_queue",
		Description: "List the download queue with status, client, and any error messages per item.",
		InputSchema: objSchema(map[string]any{
			"grep": grepProp(),
		}),
	}
}

func sonarrListQueueTool() *mcpsdk.Tool { return listQueueTool("sonarr") }
func radarrListQueueTool() *mcpsdk.Tool { return listQueueTool("radarr") }

func (s *Server) listQueue(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Grep string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return s.summarizedList(ctx, c, "/api/v3/queue/details", nil, args.Grep, shape.ListOptions{
		Preserve: queuePreserve,
	})
}

func (s *Server) handleSonarrListQueue(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listQueue(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrListQueue(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listQueue(ctx, s.deps.Radarr, req)
}

func describeQueueItemTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_describe_queue_item",
		Description: "Get the complete record for one queue item, including status messages from the download client.",
		InputSchema: objSchema(map[string]any{
			"queue_id": intProp("Queue item ID"),
		}, "queue_id"),
	}
}

func sonarrDescribeQueueItemTool() *mcpsdk.Tool { return describeQueueItemTool("sonarr") }
func radarrDescribeQueueItemTool() *mcpsdk.Tool { return describeQueueItemTool("radarr") }

func (s *Server) describeQueueItem(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		QueueID int `json:"queue_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.QueueID <= 0 {
		return invalidParams("queue_id is required"), nil
	}

	// No per-item endpoint; scan the details list.
	queue, err := fetchList(ctx, c, "/api/v3/queue/details", nil)
	if err != nil {
		return toolError(err.Error()), nil
	}
	for _, item := range queue {
		if id, ok := intField(item, "id"); ok && id == args.QueueID {
			return toolJSON(shape.FullDetail(item))
		}
	}
	return notFound(fmt.Sprintf("Queue item %d not found.", args.QueueID)), nil
}

func (s *Server) handleSonarrDescribeQueueItem(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.describeQueueItem(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrDescribeQueueItem(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.describeQueueItem(ctx, s.deps.Radarr, req)
}

func grabQueueItemTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_grab_queue_item",
		Description: "Force a queue item that is waiting or delayed to be grabbed now.",
		InputSchema: objSchema(map[string]any{
			"queue_id": intProp("Queue item ID"),
		}, "queue_id"),
	}
}

func sonarrGrabQueueItemTool() *mcpsdk.Tool { return grabQueueItemTool("sonarr") }
func radarrGrabQueueItemTool() *mcpsdk.Tool { return grabQueueItemTool("radarr") }

func (s *Server) grabQueueItem(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		QueueID int `json:"queue_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.QueueID <= 0 {
		return invalidParams("queue_id is required"), nil
	}
	if err := c.Post(ctx, "/api/v3/queue/grab/"+strconv.Itoa(args.QueueID), nil, nil); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Queue item %d not found.", args.QueueID)), nil
		}
		return toolError(err.Error()), nil
	}
	return success("Queue item %d grabbed.", args.QueueID)
}

func (s *Server) handleSonarrGrabQueueItem(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.grabQueueItem(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrGrabQueueItem(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.grabQueueItem(ctx, s.deps.Radarr, req)
}

func sonarrRemoveQueueItemTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_remove_queue_item",
		Description: "Remove one item from the download queue, optionally blocklisting the release and removing the download from the client.",
		InputSchema: objSchema(map[string]any{
			"queue_id":           intProp("Queue item ID"),
			"blocklist":          boolProp("Blocklist the release so it is not grabbed again"),
			"remove_from_client": boolProp("Also remove the download from the download client (default true)"),
		}, "queue_id"),
	}
}

func (s *Server) handleSonarrRemoveQueueItem(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		QueueID          int   `json:"queue_id"`
		Blocklist        bool  `json:"blocklist"`
		RemoveFromClient *bool `json:"remove_from_client"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.QueueID <= 0 {
		return invalidParams("queue_id is required"), nil
	}

	params := url.Values{
		"blocklist":        {strconv.FormatBool(args.Blocklist)},
		"removeFromClient": {strconv.FormatBool(args.RemoveFromClient == nil || *args.RemoveFromClient)},
	}
	if err := s.deps.Sonarr.Delete(ctx, "/api/v3/queue/"+strconv.Itoa(args.QueueID), params); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Queue item %d not found.", args.QueueID)), nil
		}
		return toolError(err.Error()), nil
	}
	return success("Queue item %d removed (blocklisted: %t).", args.QueueID, args.Blocklist)
}

func removeQueueItemsTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_remove_queue_items",
		Description: "Remove several items from the download queue at once. Items tracked by a download client and pending items are removed separately so a failure in one group does not block the other.",
		InputSchema: objSchema(map[string]any{
			"queue_ids":          intArrayProp("Queue item IDs to remove"),
			"blocklist":          boolProp("Blocklist the releases so they are not grabbed again"),
			"remove_from_client": boolProp("Also remove tracked downloads from the download client (default true)"),
		}, "queue_ids"),
	}
}

func sonarrRemoveQueueItemsTool() *mcpsdk.Tool { return removeQueueItemsTool("sonarr") }
func radarrRemoveQueueItemsTool() *mcpsdk.Tool { return removeQueueItemsTool("radarr") }

func (s *Server) removeQueueItemsFrom(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		QueueIDs         []int `json:"queue_ids"`
		Blocklist        bool  `json:"blocklist"`
		RemoveFromClient *bool `json:"remove_from_client"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if len(args.QueueIDs) == 0 {
		return invalidParams("queue_ids must not be empty"), nil
	}
	removeFromClient := args.RemoveFromClient == nil || *args.RemoveFromClient
	return s.removeQueueItems(ctx, c, args.QueueIDs, args.Blocklist, removeFromClient)
}

func (s *Server) handleSonarrRemoveQueueItems(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.removeQueueItemsFrom(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrRemoveQueueItems(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.removeQueueItemsFrom(ctx, s.deps.Radarr, req)
}
