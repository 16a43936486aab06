package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/resolve"
	"github.com/avelasquez/homearr/internal/shape"
)

// Collection, exclusion, and movie metadata tools. These have no Sonarr
// counterpart.

func (s *Server) resolveCollection(ctx context.Context, token flexString) (int, error) {
	entries, err := referenceEntries(ctx, s.deps.Radarr, "/api/v3/collection", "title")
	if err != nil {
		return 0, err
	}
	return resolve.NameOrID(string(token), entries, "collection")
}

func radarrListCollectionsTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_list_collections",
		Description: "List movie collections with their monitored state.",
		InputSchema: objSchema(map[string]any{
			"grep": grepProp(),
		}),
	}
}

func (s *Server) handleRadarrListCollections(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Grep string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/collection", nil, args.Grep, shape.ListOptions{
		Aggregate: monitoredStats,
		Preserve:  []string{"title"},
	})
}

func radarrDescribeCollectionTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_describe_collection",
		Description: "Get one collection with all its movies. Accepts a collection title or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"collection": nameOrIDProp("Collection title or ID"),
		}, "collection"),
	}
}

func (s *Server) handleRadarrDescribeCollection(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Collection flexString `json:"collection"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Collection == "" {
		return invalidParams("collection is required"), nil
	}

	collectionID, err := s.resolveCollection(ctx, args.Collection)
	if err != nil {
		return resolveResult(err)
	}
	return s.fullDetail(ctx, s.deps.Radarr,
		"/api/v3/collection/"+strconv.Itoa(collectionID),
		fmt.Sprintf("Collection %d not found.", collectionID))
}

func radarrUpdateCollectionTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_update_collection",
		Description: "Update a collection's monitored flag, quality profile, or root folder. New collection movies inherit these settings. Omitted fields keep their current values.",
		InputSchema: objSchema(map[string]any{
			"collection":      nameOrIDProp("Collection title or ID"),
			"monitored":       boolProp("Monitor the collection for new movies"),
			"quality_profile": nameOrIDProp("Quality profile name or ID for added movies"),
			"root_folder":     nameOrIDProp("Root folder path (or part of it) or ID for added movies"),
		}, "collection"),
	}
}

func (s *Server) handleRadarrUpdateCollection(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Collection     flexString `json:"collection"`
		Monitored      *bool      `json:"monitored"`
		QualityProfile flexString `json:"quality_profile"`
		RootFolder     flexString `json:"root_folder"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Collection == "" {
		return invalidParams("collection is required"), nil
	}

	collectionID, err := s.resolveCollection(ctx, args.Collection)
	if err != nil {
		return resolveResult(err)
	}

	path := "/api/v3/collection/" + strconv.Itoa(collectionID)
	var collection shape.Object
	if err := s.deps.Radarr.Get(ctx, path, nil, &collection); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Collection %d not found.", collectionID)), nil
		}
		return toolError(err.Error()), nil
	}

	if args.Monitored != nil {
		collection.Set("monitored", *args.Monitored)
	}
	if args.QualityProfile != "" {
		profileID, err := resolveQualityProfile(ctx, s.deps.Radarr, args.QualityProfile)
		if err != nil {
			return resolveResult(err)
		}
		collection.Set("qualityProfileId", profileID)
	}
	if args.RootFolder != "" {
		_, rootPath, err := resolveRootFolder(ctx, s.deps.Radarr, args.RootFolder)
		if err != nil {
			return resolveResult(err)
		}
		collection.Set("rootFolderPath", rootPath)
	}

	var updated shape.Object
	if err := s.deps.Radarr.Put(ctx, path, &collection, &updated); err != nil {
		return toolError(err.Error()), nil
	}
	return toolJSON(shape.FullDetail(&updated))
}

func radarrListExclusionsTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_list_exclusions",
		Description: "List movies excluded from import lists.",
		InputSchema: objSchema(map[string]any{
			"grep": grepProp(),
		}),
	}
}

func (s *Server) handleRadarrListExclusions(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Grep string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/exclusions", nil, args.Grep, shape.ListOptions{
		Preserve: []string{"movieTitle"},
	})
}

func radarrAddExclusionTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_add_exclusion",
		Description: "Exclude a movie from import lists so it is never added automatically.",
		InputSchema: objSchema(map[string]any{
			"tmdb_id":     intProp("TMDB ID of the movie to exclude"),
			"movie_title": strProp("Movie title, for display in the exclusion list"),
			"movie_year":  intProp("Movie release year"),
		}, "tmdb_id", "movie_title", "movie_year"),
	}
}

func (s *Server) handleRadarrAddExclusion(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		TMDBID     int    `json:"tmdb_id"`
		MovieTitle string `json:"movie_title"`
		MovieYear  int    `json:"movie_year"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.TMDBID <= 0 || args.MovieTitle == "" || args.MovieYear <= 0 {
		return invalidParams("tmdb_id, movie_title, and movie_year are required"), nil
	}

	body := map[string]any{
		"tmdbId":     args.TMDBID,
		"movieTitle": args.MovieTitle,
		"movieYear":  args.MovieYear,
	}
	var added shape.Object
	if err := s.deps.Radarr.Post(ctx, "/api/v3/exclusions", body, &added); err != nil {
		return toolError(err.Error()), nil
	}
	return toolJSON(shape.FullDetail(&added))
}

func radarrRemoveExclusionTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_remove_exclusion",
		Description: "Remove an import list exclusion by its ID.",
		InputSchema: objSchema(map[string]any{
			"exclusion_id": intProp("Exclusion entry ID"),
		}, "exclusion_id"),
	}
}

func (s *Server) handleRadarrRemoveExclusion(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		ExclusionID int `json:"exclusion_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.ExclusionID <= 0 {
		return invalidParams("exclusion_id is required"), nil
	}
	if err := s.deps.Radarr.Delete(ctx, "/api/v3/exclusions/"+strconv.Itoa(args.ExclusionID), nil); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Exclusion %d not found.", args.ExclusionID)), nil
		}
		return toolError(err.Error()), nil
	}
	return success("Exclusion %d removed.", args.ExclusionID)
}

func radarrListCreditsTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_list_credits",
		Description: "List cast and crew credits for a movie. The movie accepts a title or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"movie": nameOrIDProp("Movie title or Radarr ID"),
			"grep":  grepProp(),
		}, "movie"),
	}
}

func (s *Server) handleRadarrListCredits(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
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
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/credit", params, args.Grep, shape.ListOptions{
		Preserve: []string{"personName", "character", "job"},
	})
}

func radarrListAlternativeTitlesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_list_alternative_titles",
		Description: "List alternative and foreign-language titles of a movie. The movie accepts a title or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"movie": nameOrIDProp("Movie title or Radarr ID"),
			"grep":  grepProp(),
		}, "movie"),
	}
}

func (s *Server) handleRadarrListAlternativeTitles(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
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
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/alttitle", params, args.Grep, shape.ListOptions{
		Preserve: []string{"title"},
	})
}
