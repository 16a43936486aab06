package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/shape"
)

// Manual import tools. The preview endpoint scans a folder and proposes
// file-to-library mappings; execute queues a ManualImport command with the
// (possibly corrected) mappings.

// Fields the ManualImport command accepts per file. Anything else a caller
// echoes back from the preview is stripped before submission.
var (
	sonarrImportFields = []string{
		"path", "folderName", "seriesId", "episodeIds", "quality",
		"languages", "releaseGroup", "downloadId", "indexerFlags", "releaseType",
	}
	radarrImportFields = []string{
		"path", "folderName", "movieId", "quality",
		"languages", "releaseGroup", "downloadId", "indexerFlags",
	}
)

func previewManualImportTool(service, entity string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_preview_manual_import",
		Description: "Scan a folder and propose how its files map into the library. Feed the (corrected) proposals to " + service + "_execute_manual_import.",
		InputSchema: objSchema(map[string]any{
			"folder": strProp("Absolute path of the folder to scan"),
			entity:   nameOrIDProp("Limit matching to one " + entity + " (title or numeric ID)"),
			"filter_existing": boolProp("Skip files already in the library (default true)"),
			"grep":            grepProp(),
		}, "folder"),
	}
}

func sonarrPreviewManualImportTool() *mcpsdk.Tool { return previewManualImportTool("sonarr", "series") }
func radarrPreviewManualImportTool() *mcpsdk.Tool { return previewManualImportTool("radarr", "movie") }

func (s *Server) handleSonarrPreviewManualImport(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Folder         string     `json:"folder"`
		Series         flexString `json:"series"`
		FilterExisting *bool      `json:"filter_existing"`
		Grep           string     `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Folder == "" {
		return invalidParams("folder is required"), nil
	}

	params := url.Values{
		"folder":              {args.Folder},
		"filterExistingFiles": {strconv.FormatBool(args.FilterExisting == nil || *args.FilterExisting)},
	}
	if args.Series != "" {
		seriesID, err := s.resolveSeries(ctx, args.Series)
		if err != nil {
			return resolveResult(err)
		}
		params.Set("seriesId", strconv.Itoa(seriesID))
	}
	return s.summarizedList(ctx, s.deps.Sonarr, "/api/v3/manualimport", params, args.Grep, shape.ListOptions{
		Preserve: []string{"path", "quality", "languages", "rejections"},
	})
}

func (s *Server) handleRadarrPreviewManualImport(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Folder         string     `json:"folder"`
		Movie          flexString `json:"movie"`
		FilterExisting *bool      `json:"filter_existing"`
		Grep           string     `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Folder == "" {
		return invalidParams("folder is required"), nil
	}

	params := url.Values{
		"folder":              {args.Folder},
		"filterExistingFiles": {strconv.FormatBool(args.FilterExisting == nil || *args.FilterExisting)},
	}
	if args.Movie != "" {
		movieID, err := s.resolveMovie(ctx, args.Movie)
		if err != nil {
			return resolveResult(err)
		}
		params.Set("movieId", strconv.Itoa(movieID))
	}
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/manualimport", params, args.Grep, shape.ListOptions{
		Preserve: []string{"path", "quality", "languages", "rejections"},
	})
}

func executeManualImportTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_execute_manual_import",
		Description: "Import files into the library using mappings from " + service + "_preview_manual_import. Returns the queued import command.",
		InputSchema: objSchema(map[string]any{
			"files": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "object"},
				"description": "File mappings from the preview, corrected as needed",
			},
			"import_mode": strProp("auto, move, or copy (default auto)"),
		}, "files"),
	}
}

func sonarrExecuteManualImportTool() *mcpsdk.Tool { return executeManualImportTool("sonarr") }
func radarrExecuteManualImportTool() *mcpsdk.Tool { return executeManualImportTool("radarr") }

func (s *Server) executeManualImport(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest, allowed []string) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Files      []map[string]any `json:"files"`
		ImportMode string           `json:"import_mode"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if len(args.Files) == 0 {
		return invalidParams("files must not be empty"), nil
	}
	if args.ImportMode == "" {
		args.ImportMode = "auto"
	}
	switch args.ImportMode {
	case "auto", "move", "copy":
	default:
		return invalidParams("import_mode must be one of: auto, move, copy"), nil
	}

	files := make([]map[string]any, 0, len(args.Files))
	for _, f := range args.Files {
		kept := make(map[string]any, len(allowed))
		for _, k := range allowed {
			if v, ok := f[k]; ok {
				kept[k] = v
			}
		}
		files = append(files, kept)
	}

	body := map[string]any{
		"name":       "ManualImport",
		"importMode": args.ImportMode,
		"files":      files,
	}
	var cmd shape.Object
	if err := c.Post(ctx, "/api/v3/command", body, &cmd); err != nil {
		return toolError(err.Error()), nil
	}
	return toolJSON(shape.FullDetail(&cmd))
}

func (s *Server) handleSonarrExecuteManualImport(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.executeManualImport(ctx, s.deps.Sonarr, req, sonarrImportFields)
}

func (s *Server) handleRadarrExecuteManualImport(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.executeManualImport(ctx, s.deps.Radarr, req, radarrImportFields)
}
