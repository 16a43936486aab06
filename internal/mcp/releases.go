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

// Interactive release search. The guid and indexerId pair from a search
// result is what the download tool needs, so both are always preserved in
// summaries.

var releasePreserve = []string{"title", "guid", "indexerId", "rejected"}

func sonarrSearchReleasesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "sonarr_search_releases",
		Description: "Search indexers for releases of one episode. Pass a result's guid and indexer_id to sonarr_download_release to grab it.",
		InputSchema: objSchema(map[string]any{
			"episode_id": intProp("Sonarr episode ID"),
			"grep":       grepProp(),
		}, "episode_id"),
	}
}

func (s *Server) handleSonarrSearchReleases(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		EpisodeID int    `json:"episode_id"`
		Grep      string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.EpisodeID <= 0 {
		return invalidParams("episode_id is required"), nil
	}
	params := url.Values{"episodeId": {strconv.Itoa(args.EpisodeID)}}
	return s.summarizedList(ctx, s.deps.Sonarr, "/api/v3/release", params, args.Grep, shape.ListOptions{
		Preserve: releasePreserve,
	})
}

func radarrSearchReleasesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_search_releases",
		Description: "Search indexers for releases of one movie. The movie accepts a title or a numeric ID. Pass a result's guid and indexer_id to radarr_download_release to grab it.",
		InputSchema: objSchema(map[string]any{
			"movie": nameOrIDProp("Movie title or Radarr ID"),
			"grep":  grepProp(),
		}, "movie"),
	}
}

func (s *Server) handleRadarrSearchReleases(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
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
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/release", params, args.Grep, shape.ListOptions{
		Preserve: releasePreserve,
	})
}

func downloadReleaseTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_download_release",
		Description: "Grab a specific release found by the release search, by its guid and indexer ID.",
		InputSchema: objSchema(map[string]any{
			"guid":       strProp("Release guid from a search result"),
			"indexer_id": intProp("Indexer ID from the same search result"),
		}, "guid", "indexer_id"),
	}
}

func sonarrDownloadReleaseTool() *mcpsdk.Tool { return downloadReleaseTool("sonarr") }
func radarrDownloadReleaseTool() *mcpsdk.Tool { return downloadReleaseTool("radarr") }

func (s *Server) downloadRelease(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		GUID      string `json:"guid"`
		IndexerID int    `json:"indexer_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.GUID == "" || args.IndexerID <= 0 {
		return invalidParams("guid and indexer_id are required"), nil
	}

	body := map[string]any{
		"guid":      args.GUID,
		"indexerId": args.IndexerID,
	}
	if err := c.Post(ctx, "/api/v3/release", body, nil); err != nil {
		return toolError(err.Error()), nil
	}
	return success("Release grabbed from indexer %d.", args.IndexerID)
}

func (s *Server) handleSonarrDownloadRelease(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.downloadRelease(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrDownloadRelease(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.downloadRelease(ctx, s.deps.Radarr, req)
}
