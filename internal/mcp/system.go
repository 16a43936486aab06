package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/shape"
)

// System, diagnostics, and command tools.

func getSystemStatusTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_get_system_status",
		Description: "Get version, runtime, and platform information for the service.",
		InputSchema: objSchema(map[string]any{}),
	}
}

func sonarrGetSystemStatusTool() *mcpsdk.Tool { return getSystemStatusTool("sonarr") }
func radarrGetSystemStatusTool() *mcpsdk.Tool { return getSystemStatusTool("radarr") }

func (s *Server) getSystemStatus(ctx context.Context, c *arr.Client) (*mcpsdk.CallToolResult, error) {
	return s.fullDetail(ctx, c, "/api/v3/system/status", "System status unavailable.")
}

func (s *Server) handleSonarrGetSystemStatus(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.getSystemStatus(ctx, s.deps.Sonarr)
}

func (s *Server) handleRadarrGetSystemStatus(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.getSystemStatus(ctx, s.deps.Radarr)
}

func listHealthChecksTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_list_health_checks",
		Description: "List active health check warnings and errors.",
		InputSchema: objSchema(map[string]any{
			"grep": grepProp(),
		}),
	}
}

func sonarrListHealthChecksTool() *mcpsdk.Tool { return listHealthChecksTool("sonarr") }
func radarrListHealthChecksTool() *mcpsdk.Tool { return listHealthChecksTool("radarr") }

func (s *Server) listHealthChecks(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Grep string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return s.summarizedList(ctx, c, "/api/v3/health", nil, args.Grep, shape.ListOptions{
		Preserve: []string{"source", "type", "message"},
	})
}

func (s *Server) handleSonarrListHealthChecks(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listHealthChecks(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrListHealthChecks(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listHealthChecks(ctx, s.deps.Radarr, req)
}

func getDiskSpaceTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_get_disk_space",
		Description: "List mounted paths with total and free space.",
		InputSchema: objSchema(map[string]any{}),
	}
}

func sonarrGetDiskSpaceTool() *mcpsdk.Tool { return getDiskSpaceTool("sonarr") }
func radarrGetDiskSpaceTool() *mcpsdk.Tool { return getDiskSpaceTool("radarr") }

func (s *Server) getDiskSpace(ctx context.Context, c *arr.Client) (*mcpsdk.CallToolResult, error) {
	return s.summarizedList(ctx, c, "/api/v3/diskspace", nil, "", shape.ListOptions{
		Preserve: []string{"path", "freeSpace", "totalSpace"},
	})
}

func (s *Server) handleSonarrGetDiskSpace(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.getDiskSpace(ctx, s.deps.Sonarr)
}

func (s *Server) handleRadarrGetDiskSpace(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.getDiskSpace(ctx, s.deps.Radarr)
}

func listLogsTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_list_logs",
		Description: "List recent service log entries, optionally filtered by level.",
		InputSchema: objSchema(map[string]any{
			"page":      intProp("Page number (default 1)"),
			"page_size": intProp("Entries per page (default 50)"),
			"level":     strProp("Minimum level: info, warn, or error"),
			"grep":      grepProp(),
		}),
	}
}

func sonarrListLogsTool() *mcpsdk.Tool { return listLogsTool("sonarr") }
func radarrListLogsTool() *mcpsdk.Tool { return listLogsTool("radarr") }

func (s *Server) listLogs(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Page     int    `json:"page"`
		PageSize int    `json:"page_size"`
		Level    string `json:"level"`
		Grep     string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Page <= 0 {
		args.Page = 1
	}
	if args.PageSize <= 0 {
		args.PageSize = 50
	}
	params := url.Values{
		"page":     {strconv.Itoa(args.Page)},
		"pageSize": {strconv.Itoa(args.PageSize)},
	}
	if args.Level != "" {
		level := strings.ToLower(args.Level)
		switch level {
		case "info", "warn", "error":
		default:
			return invalidParams("level must be one of: info, warn, error"), nil
		}
		params.Set("level", level)
	}
	return s.pagedList(ctx, c, "/api/v3/log", params, args.Grep, shape.ListOptions{
		Preserve: []string{"id", "time", "level", "logger", "message", "exception"},
	})
}

func (s *Server) handleSonarrListLogs(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listLogs(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrListLogs(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listLogs(ctx, s.deps.Radarr, req)
}

func runCommandTool(service, examples string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_run_command",
		Description: "Queue a maintenance or search command, for example " + examples + ". Returns the queued command record; check it with " + service + "_describe_command.",
		InputSchema: objSchema(map[string]any{
			"name": strProp("Command name, e.g. " + examples),
			"parameters": map[string]any{
				"type":        "object",
				"description": "Extra command parameters, e.g. {\"seriesId\": 5}",
			},
		}, "name"),
	}
}

func sonarrRunCommandTool() *mcpsdk.Tool {
	return runCommandTool("sonarr", "RefreshSeries, SeriesSearch, MissingEpisodeSearch, or RssSync")
}

func radarrRunCommandTool() *mcpsdk.Tool {
	return runCommandTool("radarr", "RefreshMovie, MoviesSearch, MissingMoviesSearch, or RssSync")
}

func (s *Server) runCommand(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Name       string         `json:"name"`
		Parameters map[string]any `json:"parameters"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Name == "" {
		return invalidParams("name is required"), nil
	}

	body := map[string]any{"name": args.Name}
	for k, v := range args.Parameters {
		body[k] = v
	}
	var cmd shape.Object
	if err := c.Post(ctx, "/api/v3/command", body, &cmd); err != nil {
		return toolError(err.Error()), nil
	}
	return toolJSON(shape.FullDetail(&cmd))
}

func (s *Server) handleSonarrRunCommand(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.runCommand(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrRunCommand(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.runCommand(ctx, s.deps.Radarr, req)
}

func listCommandsTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_list_commands",
		Description: "List queued and recently finished commands with their status.",
		InputSchema: objSchema(map[string]any{
			"grep": grepProp(),
		}),
	}
}

func sonarrListCommandsTool() *mcpsdk.Tool { return listCommandsTool("sonarr") }
func radarrListCommandsTool() *mcpsdk.Tool { return listCommandsTool("radarr") }

func (s *Server) listCommands(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Grep string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return s.summarizedList(ctx, c, "/api/v3/command", nil, args.Grep, shape.ListOptions{
		Preserve: []string{"name", "status"},
	})
}

func (s *Server) handleSonarrListCommands(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listCommands(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrListCommands(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listCommands(ctx, s.deps.Radarr, req)
}

func describeCommandTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_describe_command",
		Description: "Get the status of one queued command by its ID.",
		InputSchema: objSchema(map[string]any{
			"command_id": intProp("Command ID"),
		}, "command_id"),
	}
}

func sonarrDescribeCommandTool() *mcpsdk.Tool { return describeCommandTool("sonarr") }
func radarrDescribeCommandTool() *mcpsdk.Tool { return describeCommandTool("radarr") }

func (s *Server) describeCommand(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		CommandID int `json:"command_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.CommandID <= 0 {
		return invalidParams("command_id is required"), nil
	}
	return s.fullDetail(ctx, c,
		"/api/v3/command/"+strconv.Itoa(args.CommandID),
		fmt.Sprintf("Command %d not found.", args.CommandID))
}

func (s *Server) handleSonarrDescribeCommand(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.describeCommand(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrDescribeCommand(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.describeCommand(ctx, s.deps.Radarr, req)
}
