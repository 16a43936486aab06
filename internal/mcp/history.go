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

// History and blocklist tools.

var historyPreserve = []string{"eventType", "sourceTitle", "date"}

func listHistoryTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_list_history",
		Description: "List recent activity: grabs, imports, failures, and deletions.",
		InputSchema: objSchema(map[string]any{
			"page":      intProp("Page number (default 1)"),
			"page_size": intProp("Items per page (default 20)"),
			"grep":      grepProp(),
		}),
	}
}

func sonarrListHistoryTool() *mcpsdk.Tool { return listHistoryTool("sonarr") }
func radarrListHistoryTool() *mcpsdk.Tool { return listHistoryTool("radarr") }

func (s *Server) listHistory(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Page     int    `json:"page"`
		PageSize int    `json:"page_size"`
		Grep     string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Page <= 0 {
		args.Page = 1
	}
	if args.PageSize <= 0 {
		args.PageSize = 20
	}
	params := url.Values{
		"page":     {strconv.Itoa(args.Page)},
		"pageSize": {strconv.Itoa(args.PageSize)},
	}
	return s.pagedList(ctx, c, "/api/v3/history", params, args.Grep, shape.ListOptions{
		Preserve: historyPreserve,
	})
}

func (s *Server) handleSonarrListHistory(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listHistory(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrListHistory(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listHistory(ctx, s.deps.Radarr, req)
}

func sonarrListSeriesHistoryTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_list_series_history",
		Description: "List the activity history of one series. The series accepts a title or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"series": nameOrIDProp("Series title or Sonarr ID"),
			"grep":   grepProp(),
		}, "series"),
	}
}

func (s *Server) handleSonarrListSeriesHistory(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Series flexString `json:"series"`
		Grep   string     `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Series == "" {
		return invalidParams("series is required"), nil
	}

	seriesID, err := s.resolveSeries(ctx, args.Series)
	if err != nil {
		return resolveResult(err)
	}
	params := url.Values{"seriesId": {strconv.Itoa(seriesID)}}
	return s.summarizedList(ctx, s.deps.Sonarr, "/api/v3/history/series", params, args.Grep, shape.ListOptions{
		Preserve: historyPreserve,
	})
}

func radarrListMovieHistoryTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_list_movie_history",
		Description: "List the activity history of one movie. The movie accepts a title or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"movie": nameOrIDProp("Movie title or Radarr ID"),
			"grep":  grepProp(),
		}, "movie"),
	}
}

func (s *Server) handleRadarrListMovieHistory(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Movie flexString `json:"movie"`
		Grep  string     `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Movie == "" {
		return invalidParams("movie is required"), nil
	}

	movieID, err := s.resolveMovie(ctx, args.Movie)
	if err != nil {
		return resolveResult(err)
	}
	params := url.Values{"movieId": {strconv.Itoa(movieID)}}
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/history/movie", params, args.Grep, shape.ListOptions{
		Preserve: historyPreserve,
	})
}

func listBlocklistTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_list_blocklist",
		Description: "List blocklisted releases that will not be grabbed again.",
		InputSchema: objSchema(map[string]any{
			"page":      intProp("Page number (default 1)"),
			"page_size": intProp("Items per page (default 20)"),
			"grep":      grepProp(),
		}),
	}
}

func sonarrListBlocklistTool() *mcpsdk.Tool { return listBlocklistTool("sonarr") }
func radarrListBlocklistTool() *mcpsdk.Tool { return listBlocklistTool("radarr") }

func (s *Server) listBlocklist(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Page     int    `json:"page"`
		PageSize int    `json:"page_size"`
		Grep     string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Page <= 0 {
		args.Page = 1
	}
	if args.PageSize <= 0 {
		args.PageSize = 20
	}
	params := url.Values{
		"page":     {strconv.Itoa(args.Page)},
		"pageSize": {strconv.Itoa(args.PageSize)},
	}
	return s.pagedList(ctx, c, "/api/v3/blocklist", params, args.Grep, shape.ListOptions{
		Preserve: []string{"sourceTitle"},
	})
}

func (s *Server) handleSonarrListBlocklist(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listBlocklist(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrListBlocklist(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listBlocklist(ctx, s.deps.Radarr, req)
}

func removeBlocklistItemTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_remove_blocklist_item",
		Description: "Remove one release from the blocklist so it can be grabbed again.",
		InputSchema: objSchema(map[string]any{
			"blocklist_id": intProp("Blocklist entry ID"),
		}, "blocklist_id"),
	}
}

func sonarrRemoveBlocklistItemTool() *mcpsdk.Tool { return removeBlocklistItemTool("sonarr") }
func radarrRemoveBlocklistItemTool() *mcpsdk.Tool { return removeBlocklistItemTool("radarr") }

func (s *Server) removeBlocklistItem(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		BlocklistID int `json:"blocklist_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.BlocklistID <= 0 {
		return invalidParams("blocklist_id is required"), nil
	}
	if err := c.Delete(ctx, "/api/v3/blocklist/"+strconv.Itoa(args.BlocklistID), nil); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Blocklist entry %d not found.", args.BlocklistID)), nil
		}
		return toolError(err.Error()), nil
	}
	return success("Blocklist entry %d removed.", args.BlocklistID)
}

func (s *Server) handleSonarrRemoveBlocklistItem(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.removeBlocklistItem(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrRemoveBlocklistItem(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.removeBlocklistItem(ctx, s.deps.Radarr, req)
}
