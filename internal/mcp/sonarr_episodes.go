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

func sonarrListEpisodesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_list_episodes",
		Description: "List episodes of a series, optionally limited to one season. The series accepts a title or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"series":        nameOrIDProp("Series title or Sonarr ID"),
			"season_number": intProp("Limit to one season"),
			"grep":          grepProp(),
		}, "series"),
	}
}

func (s *Server) handleSonarrListEpisodes(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
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
	return s.summarizedList(ctx, s.deps.Sonarr, "/api/v3/episode", params, args.Grep, shape.ListOptions{
		Aggregate: libraryStats,
	})
}

func sonarrDescribeEpisodeTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_describe_episode",
		Description: "Get the complete record for one episode by its Sonarr episode ID.",
		InputSchema: objSchema(map[string]any{
			"episode_id": intProp("Sonarr episode ID"),
		}, "episode_id"),
	}
}

func (s *Server) handleSonarrDescribeEpisode(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		EpisodeID int `json:"episode_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.EpisodeID <= 0 {
		return invalidParams("episode_id is required"), nil
	}
	return s.fullDetail(ctx, s.deps.Sonarr,
		"/api/v3/episode/"+strconv.Itoa(args.EpisodeID),
		fmt.Sprintf("Episode %d not found.", args.EpisodeID))
}

func sonarrMonitorEpisodesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_monitor_episodes",
		Description: "Set the monitored flag on a batch of episodes.",
		InputSchema: objSchema(map[string]any{
			"episode_ids": intArrayProp("Sonarr episode IDs to change"),
			"monitored":   boolProp("Monitored state to apply"),
		}, "episode_ids", "monitored"),
	}
}

func (s *Server) handleSonarrMonitorEpisodes(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		EpisodeIDs []int `json:"episode_ids"`
		Monitored  *bool `json:"monitored"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if len(args.EpisodeIDs) == 0 {
		return invalidParams("episode_ids must not be empty"), nil
	}
	if args.Monitored == nil {
		return invalidParams("monitored is required"), nil
	}

	body := map[string]any{
		"episodeIds": args.EpisodeIDs,
		"monitored":  *args.Monitored,
	}
	if err := s.deps.Sonarr.Put(ctx, "/api/v3/episode/monitor", body, nil); err != nil {
		return toolError(err.Error()), nil
	}
	return success("Monitored set to %t on %d episodes.", *args.Monitored, len(args.EpisodeIDs))
}

func sonarrListEpisodeFilesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_list_episode_files",
		Description: "List downloaded episode files of a series with their paths, sizes, and quality.",
		InputSchema: objSchema(map[string]any{
			"series": nameOrIDProp("Series title or Sonarr ID"),
			"grep":   grepProp(),
		}, "series"),
	}
}

func (s *Server) handleSonarrListEpisodeFiles(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
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
	return s.summarizedList(ctx, s.deps.Sonarr, "/api/v3/episodefile", params, args.Grep, shape.ListOptions{
		Preserve: []string{"relativePath"},
	})
}

func sonarrDescribeEpisodeFileTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_describe_episode_file",
		Description: "Get the complete record for one episode file, including media info.",
		InputSchema: objSchema(map[string]any{
			"file_id": intProp("Sonarr episode file ID"),
		}, "file_id"),
	}
}

func (s *Server) handleSonarrDescribeEpisodeFile(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		FileID int `json:"file_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.FileID <= 0 {
		return invalidParams("file_id is required"), nil
	}
	return s.fullDetail(ctx, s.deps.Sonarr,
		"/api/v3/episodefile/"+strconv.Itoa(args.FileID),
		fmt.Sprintf("Episode file %d not found.", args.FileID))
}

func sonarrDeleteEpisodeFileTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_delete_episode_file",
		Description: "Delete one episode file from disk.",
		InputSchema: objSchema(map[string]any{
			"file_id": intProp("Sonarr episode file ID"),
		}, "file_id"),
	}
}

func (s *Server) handleSonarrDeleteEpisodeFile(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		FileID int `json:"file_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.FileID <= 0 {
		return invalidParams("file_id is required"), nil
	}
	if err := s.deps.Sonarr.Delete(ctx, "/api/v3/episodefile/"+strconv.Itoa(args.FileID), nil); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Episode file %d not found.", args.FileID)), nil
		}
		return toolError(err.Error()), nil
	}
	return success("Episode file %d deleted.", args.FileID)
}
