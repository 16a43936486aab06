package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/shape"
)

// Calendar and wanted-list tools, shared between both services.

const defaultCalendarWindow = 7 * 24 * time.Hour

func getCalendarTool(service, noun string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_get_calendar",
		Description: fmt.Sprintf("List %s releasing in a date window. Defaults to the next seven days.", noun),
		InputSchema: objSchema(map[string]any{
			"start": strProp("Window start date (YYYY-MM-DD, default today)"),
			"end":   strProp("Window end date (YYYY-MM-DD, default a week from today)"),
			"grep":  grepProp(),
		}),
	}
}

func sonarrGetCalendarTool() *mcpsdk.Tool { return getCalendarTool("sonarr", "episodes") }
func radarrGetCalendarTool() *mcpsdk.Tool { return getCalendarTool("radarr", "movies") }

func (s *Server) getCalendar(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Grep  string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	now := time.Now().UTC()
	if args.Start == "" {
		args.Start = now.Format("2006-01-02")
	}
	if args.End == "" {
		args.End = now.Add(defaultCalendarWindow).Format("2006-01-02")
	}
	params := url.Values{
		"start": {args.Start},
		"end":   {args.End},
	}
	return s.summarizedList(ctx, c, "/api/v3/calendar", params, args.Grep, shape.ListOptions{
		Preserve: []string{"title"},
	})
}

func (s *Server) handleSonarrGetCalendar(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.getCalendar(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrGetCalendar(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.getCalendar(ctx, s.deps.Radarr, req)
}

// Wanted lists are paged upstream; page and page_size pass straight through.

func wantedTool(service, name, desc string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_" + name,
		Description: desc,
		InputSchema: objSchema(map[string]any{
			"page":      intProp("Page number (default 1)"),
			"page_size": intProp("Items per page (default 20)"),
			"grep":      grepProp(),
		}),
	}
}

func sonarrListMissingTool() *mcpsdk.Tool {
	return wantedTool("sonarr", "list_missing", "List monitored episodes that have aired but have no file.")
}

func radarrListMissingTool() *mcpsdk.Tool {
	return wantedTool("radarr", "list_missing", "List monitored movies that are available but have no file.")
}

func sonarrListCutoffUnmetTool() *mcpsdk.Tool {
	return wantedTool("sonarr", "list_cutoff_unmet", "List episodes whose file quality is below the profile cutoff.")
}

func radarrListCutoffUnmetTool() *mcpsdk.Tool {
	return wantedTool("radarr", "list_cutoff_unmet", "List movies whose file quality is below the profile cutoff.")
}

func (s *Server) wantedList(ctx context.Context, c *arr.Client, path string, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
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
	return s.pagedList(ctx, c, path, params, args.Grep, shape.ListOptions{
		Preserve: []string{"title"},
	})
}

func (s *Server) handleSonarrListMissing(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.wantedList(ctx, s.deps.Sonarr, "/api/v3/wanted/missing", req)
}

func (s *Server) handleRadarrListMissing(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.wantedList(ctx, s.deps.Radarr, "/api/v3/wanted/missing", req)
}

func (s *Server) handleSonarrListCutoffUnmet(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.wantedList(ctx, s.deps.Sonarr, "/api/v3/wanted/cutoff", req)
}

func (s *Server) handleRadarrListCutoffUnmet(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.wantedList(ctx, s.deps.Radarr, "/api/v3/wanted/cutoff", req)
}
