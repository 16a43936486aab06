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

// Series tools. The series collection is the anchor of the Sonarr surface:
// list and lookup return summaries, describe returns the full record, and
// the write tools mirror the /api/v3/series CRUD endpoints.

func sonarrListSeriesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_list_series",
		Description: "List all TV series in the library. Returns summarized items with monitored/unmonitored counts; use sonarr_describe_series for full details.",
		InputSchema: objSchema(map[string]any{
			"grep": grepProp(),
		}),
	}
}

func (s *Server) handleSonarrListSeries(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Grep string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return s.summarizedList(ctx, s.deps.Sonarr, "/api/v3/series", nil, args.Grep, shape.ListOptions{
		Aggregate: monitoredStats,
	})
}

func sonarrDescribeSeriesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_describe_series",
		Description: "Get the complete record for one series by its Sonarr ID, including seasons, statistics, and file paths.",
		InputSchema: objSchema(map[string]any{
			"series_id": intProp("Sonarr series ID"),
		}, "series_id"),
	}
}

func (s *Server) handleSonarrDescribeSeries(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		SeriesID int `json:"series_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.SeriesID <= 0 {
		return invalidParams("series_id is required"), nil
	}
	return s.fullDetail(ctx, s.deps.Sonarr,
		"/api/v3/series/"+strconv.Itoa(args.SeriesID),
		fmt.Sprintf("Series %d not found.", args.SeriesID))
}

func sonarrLookupSeriesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_lookup_series",
		Description: "Search external sources for series to add. Accepts a title search term or a TVDB ID.",
		InputSchema: objSchema(map[string]any{
			"term":    strProp("Title search term"),
			"tvdb_id": intProp("TVDB ID to look up directly"),
			"grep":    grepProp(),
		}),
	}
}

func (s *Server) handleSonarrLookupSeries(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Term   string `json:"term"`
		TVDBID int    `json:"tvdb_id"`
		Grep   string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	term := args.Term
	if args.TVDBID > 0 {
		term = "tvdb:" + strconv.Itoa(args.TVDBID)
	}
	if term == "" {
		return invalidParams("provide either term or tvdb_id"), nil
	}
	params := url.Values{"term": {term}}
	return s.summarizedList(ctx, s.deps.Sonarr, "/api/v3/series/lookup", params, args.Grep, shape.ListOptions{
		Preserve: []string{"title", "tvdbId"},
	})
}

func sonarrAddSeriesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_add_series",
		Description: "Add a series to the library by TVDB ID. Quality profile and root folder accept a name or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"tvdb_id":            intProp("TVDB ID of the series to add"),
			"quality_profile":    nameOrIDProp("Quality profile name or ID"),
			"root_folder":        nameOrIDProp("Root folder path (or part of it) or ID"),
			"monitored":          boolProp("Monitor the series for new episodes (default true)"),
			"season_folder":      boolProp("Create a folder per season (default true)"),
			"search_for_missing": boolProp("Start searching for missing episodes immediately"),
			"tags":               map[string]any{"type": "array", "items": nameOrIDProp("Tag label or ID"), "description": "Tags to apply"},
		}, "tvdb_id", "quality_profile", "root_folder"),
	}
}

func (s *Server) handleSonarrAddSeries(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		TVDBID           int          `json:"tvdb_id"`
		QualityProfile   flexString   `json:"quality_profile"`
		RootFolder       flexString   `json:"root_folder"`
		Monitored        *bool        `json:"monitored"`
		SeasonFolder     *bool        `json:"season_folder"`
		SearchForMissing bool         `json:"search_for_missing"`
		Tags             []flexString `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.TVDBID <= 0 {
		return invalidParams("tvdb_id is required"), nil
	}
	if args.QualityProfile == "" || args.RootFolder == "" {
		return invalidParams("quality_profile and root_folder are required"), nil
	}

	profileID, err := resolveQualityProfile(ctx, s.deps.Sonarr, args.QualityProfile)
	if err != nil {
		return resolveResult(err)
	}
	_, rootPath, err := resolveRootFolder(ctx, s.deps.Sonarr, args.RootFolder)
	if err != nil {
		return resolveResult(err)
	}
	tagIDs, err := resolveTags(ctx, s.deps.Sonarr, args.Tags)
	if err != nil {
		return resolveResult(err)
	}

	// The add endpoint wants the full lookup record with library fields
	// filled in, not a bare TVDB ID.
	candidates, err := fetchList(ctx, s.deps.Sonarr, "/api/v3/series/lookup",
		url.Values{"term": {"tvdb:" + strconv.Itoa(args.TVDBID)}})
	if err != nil {
		return toolError(err.Error()), nil
	}
	if len(candidates) == 0 {
		return notFound(fmt.Sprintf("No series found for TVDB ID %d.", args.TVDBID)), nil
	}

	series := candidates[0]
	series.Set("qualityProfileId", profileID)
	series.Set("rootFolderPath", rootPath)
	series.Set("monitored", args.Monitored == nil || *args.Monitored)
	series.Set("seasonFolder", args.SeasonFolder == nil || *args.SeasonFolder)
	series.Set("tags", tagIDs)
	series.Set("addOptions", map[string]any{
		"searchForMissingEpisodes": args.SearchForMissing,
	})

	var added shape.Object
	if err := s.deps.Sonarr.Post(ctx, "/api/v3/series", series, &added); err != nil {
		return toolError(err.Error()), nil
	}
	return toolJSON(shape.FullDetail(&added))
}

func sonarrUpdateSeriesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_update_series",
		Description: "Update a series' monitored flag, quality profile, or tags. Omitted fields keep their current values.",
		InputSchema: objSchema(map[string]any{
			"series_id":       intProp("Sonarr series ID"),
			"monitored":       boolProp("New monitored state"),
			"quality_profile": nameOrIDProp("New quality profile name or ID"),
			"tags":            map[string]any{"type": "array", "items": nameOrIDProp("Tag label or ID"), "description": "Replacement tag set"},
		}, "series_id"),
	}
}

func (s *Server) handleSonarrUpdateSeries(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		SeriesID       int          `json:"series_id"`
		Monitored      *bool        `json:"monitored"`
		QualityProfile flexString   `json:"quality_profile"`
		Tags           []flexString `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.SeriesID <= 0 {
		return invalidParams("series_id is required"), nil
	}

	path := "/api/v3/series/" + strconv.Itoa(args.SeriesID)
	var series shape.Object
	if err := s.deps.Sonarr.Get(ctx, path, nil, &series); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Series %d not found.", args.SeriesID)), nil
		}
		return toolError(err.Error()), nil
	}

	if args.Monitored != nil {
		series.Set("monitored", *args.Monitored)
	}
	if args.QualityProfile != "" {
		profileID, err := resolveQualityProfile(ctx, s.deps.Sonarr, args.QualityProfile)
		if err != nil {
			return resolveResult(err)
		}
		series.Set("qualityProfileId", profileID)
	}
	if args.Tags != nil {
		tagIDs, err := resolveTags(ctx, s.deps.Sonarr, args.Tags)
		if err != nil {
			return resolveResult(err)
		}
		series.Set("tags", tagIDs)
	}

	var updated shape.Object
	if err := s.deps.Sonarr.Put(ctx, path, &series, &updated); err != nil {
		return toolError(err.Error()), nil
	}
	return toolJSON(shape.FullDetail(&updated))
}

func sonarrDeleteSeriesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_delete_series",
		Description: "Remove a series from the library, optionally deleting its files from disk.",
		InputSchema: objSchema(map[string]any{
			"series_id":                 intProp("Sonarr series ID"),
			"delete_files":              boolProp("Also delete the series' files from disk"),
			"add_import_list_exclusion": boolProp("Keep the series off future import lists"),
		}, "series_id"),
	}
}

func (s *Server) handleSonarrDeleteSeries(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		SeriesID     int  `json:"series_id"`
		DeleteFiles  bool `json:"delete_files"`
		AddExclusion bool `json:"add_import_list_exclusion"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.SeriesID <= 0 {
		return invalidParams("series_id is required"), nil
	}

	params := url.Values{
		"deleteFiles":            {strconv.FormatBool(args.DeleteFiles)},
		"addImportListExclusion": {strconv.FormatBool(args.AddExclusion)},
	}
	if err := s.deps.Sonarr.Delete(ctx, "/api/v3/series/"+strconv.Itoa(args.SeriesID), params); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Series %d not found.", args.SeriesID)), nil
		}
		return toolError(err.Error()), nil
	}
	return success("Series %d deleted (files deleted: %t).", args.SeriesID, args.DeleteFiles)
}

func sonarrPreviewRenameTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_preview_rename",
		Description: "Preview what episode files would be renamed to for a series, optionally scoped to one season. The series accepts a title or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"series":        nameOrIDProp("Series title or Sonarr ID"),
			"season_number": intProp("Limit the preview to one season"),
			"grep":          grepProp(),
		}, "series"),
	}
}

func (s *Server) handleSonarrPreviewRename(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Series       flexString `json:"series"`
		SeasonNumber *int       `json:"season_number"`
		Grep         string     `json:"grep"`
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
	if args.SeasonNumber != nil {
		params.Set("seasonNumber", strconv.Itoa(*args.SeasonNumber))
	}
	return s.summarizedList(ctx, s.deps.Sonarr, "/api/v3/rename", params, args.Grep, shape.ListOptions{
		Preserve: []string{"existingPath", "newPath"},
	})
}
