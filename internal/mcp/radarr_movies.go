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

// Movie tools, mirroring the Sonarr series surface over /api/v3/movie.

func radarrListMoviesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_list_movies",
		Description: "List all movies in the library. Returns summarized items with monitored and downloaded counts; use radarr_describe_movie for full details.",
		InputSchema: objSchema(map[string]any{
			"grep": grepProp(),
		}),
	}
}

func (s *Server) handleRadarrListMovies(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Grep string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/movie", nil, args.Grep, shape.ListOptions{
		Aggregate: libraryStats,
	})
}

func radarrDescribeMovieTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_describe_movie",
		Description: "Get the complete record for one movie by its Radarr ID, including file and quality information.",
		InputSchema: objSchema(map[string]any{
			"movie_id": intProp("Radarr movie ID"),
		}, "movie_id"),
	}
}

func (s *Server) handleRadarrDescribeMovie(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		MovieID int `json:"movie_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.MovieID <= 0 {
		return invalidParams("movie_id is required"), nil
	}
	return s.fullDetail(ctx, s.deps.Radarr,
		"/api/v3/movie/"+strconv.Itoa(args.MovieID),
		fmt.Sprintf("Movie %d not found.", args.MovieID))
}

func radarrLookupMovieTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_lookup_movie",
		Description: "Search external sources for movies to add. Provide exactly one of a title search term, a TMDB ID, or an IMDB ID.",
		InputSchema: objSchema(map[string]any{
			"term":    strProp("Title search term"),
			"tmdb_id": intProp("TMDB ID to look up directly"),
			"imdb_id": strProp("IMDB ID (e.g. tt0133093) to look up directly"),
			"grep":    grepProp(),
		}),
	}
}

func (s *Server) handleRadarrLookupMovie(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Term   string `json:"term"`
		TMDBID int    `json:"tmdb_id"`
		IMDBID string `json:"imdb_id"`
		Grep   string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	given := 0
	term := args.Term
	if args.Term != "" {
		given++
	}
	if args.TMDBID > 0 {
		given++
		term = "tmdb:" + strconv.Itoa(args.TMDBID)
	}
	if args.IMDBID != "" {
		given++
		term = "imdb:" + args.IMDBID
	}
	if given != 1 {
		return invalidParams("provide exactly one of term, tmdb_id, or imdb_id"), nil
	}

	params := url.Values{"term": {term}}
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/movie/lookup", params, args.Grep, shape.ListOptions{
		Preserve: []string{"title", "tmdbId"},
	})
}

func radarrAddMovieTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_add_movie",
		Description: "Add a movie to the library by TMDB ID. Quality profile and root folder accept a name or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"tmdb_id":          intProp("TMDB ID of the movie to add"),
			"quality_profile":  nameOrIDProp("Quality profile name or ID"),
			"root_folder":      nameOrIDProp("Root folder path (or part of it) or ID"),
			"monitored":        boolProp("Monitor the movie (default true)"),
			"search_for_movie": boolProp("Start searching for the movie immediately"),
			"minimum_availability": strProp("When the movie counts as available: announced, inCinemas, or released (default released)"),
			"tags": map[string]any{"type": "array", "items": nameOrIDProp("Tag label or ID"), "description": "Tags to apply"},
		}, "tmdb_id", "quality_profile", "root_folder"),
	}
}

func (s *Server) handleRadarrAddMovie(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		TMDBID              int          `json:"tmdb_id"`
		QualityProfile      flexString   `json:"quality_profile"`
		RootFolder          flexString   `json:"root_folder"`
		Monitored           *bool        `json:"monitored"`
		SearchForMovie      bool         `json:"search_for_movie"`
		MinimumAvailability string       `json:"minimum_availability"`
		Tags                []flexString `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.TMDBID <= 0 {
		return invalidParams("tmdb_id is required"), nil
	}
	if args.QualityProfile == "" || args.RootFolder == "" {
		return invalidParams("quality_profile and root_folder are required"), nil
	}
	if args.MinimumAvailability == "" {
		args.MinimumAvailability = "released"
	}
	switch args.MinimumAvailability {
	case "announced", "inCinemas", "released":
	default:
		return invalidParams("minimum_availability must be one of: announced, inCinemas, released"), nil
	}

	profileID, err := resolveQualityProfile(ctx, s.deps.Radarr, args.QualityProfile)
	if err != nil {
		return resolveResult(err)
	}
	_, rootPath, err := resolveRootFolder(ctx, s.deps.Radarr, args.RootFolder)
	if err != nil {
		return resolveResult(err)
	}
	tagIDs, err := resolveTags(ctx, s.deps.Radarr, args.Tags)
	if err != nil {
		return resolveResult(err)
	}

	candidates, err := fetchList(ctx, s.deps.Radarr, "/api/v3/movie/lookup",
		url.Values{"term": {"tmdb:" + strconv.Itoa(args.TMDBID)}})
	if err != nil {
		return toolError(err.Error()), nil
	}
	if len(candidates) == 0 {
		return notFound(fmt.Sprintf("No movie found for TMDB ID %d.", args.TMDBID)), nil
	}

	movie := candidates[0]
	movie.Set("qualityProfileId", profileID)
	movie.Set("rootFolderPath", rootPath)
	movie.Set("monitored", args.Monitored == nil || *args.Monitored)
	movie.Set("minimumAvailability", args.MinimumAvailability)
	movie.Set("tags", tagIDs)
	movie.Set("addOptions", map[string]any{
		"searchForMovie": args.SearchForMovie,
	})

	var added shape.Object
	if err := s.deps.Radarr.Post(ctx, "/api/v3/movie", movie, &added); err != nil {
		return toolError(err.Error()), nil
	}
	return toolJSON(shape.FullDetail(&added))
}

func radarrUpdateMovieTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_update_movie",
		Description: "Update a movie's monitored flag, quality profile, minimum availability, or tags. Omitted fields keep their current values.",
		InputSchema: objSchema(map[string]any{
			"movie_id":             intProp("Radarr movie ID"),
			"monitored":            boolProp("New monitored state"),
			"quality_profile":      nameOrIDProp("New quality profile name or ID"),
			"minimum_availability": strProp("announced, inCinemas, or released"),
			"tags":                 map[string]any{"type": "array", "items": nameOrIDProp("Tag label or ID"), "description": "Replacement tag set"},
		}, "movie_id"),
	}
}

func (s *Server) handleRadarrUpdateMovie(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		MovieID             int          `json:"movie_id"`
		Monitored           *bool        `json:"monitored"`
		QualityProfile      flexString   `json:"quality_profile"`
		MinimumAvailability string       `json:"minimum_availability"`
		Tags                []flexString `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.MovieID <= 0 {
		return invalidParams("movie_id is required"), nil
	}

	path := "/api/v3/movie/" + strconv.Itoa(args.MovieID)
	var movie shape.Object
	if err := s.deps.Radarr.Get(ctx, path, nil, &movie); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Movie %d not found.", args.MovieID)), nil
		}
		return toolError(err.Error()), nil
	}

	if args.Monitored != nil {
		movie.Set("monitored", *args.Monitored)
	}
	if args.QualityProfile != "" {
		profileID, err := resolveQualityProfile(ctx, s.deps.Radarr, args.QualityProfile)
		if err != nil {
			return resolveResult(err)
		}
		movie.Set("qualityProfileId", profileID)
	}
	if args.MinimumAvailability != "" {
		switch args.MinimumAvailability {
		case "announced", "inCinemas", "released":
		default:
			return invalidParams("minimum_availability must be one of: announced, inCinemas, released"), nil
		}
		movie.Set("minimumAvailability", args.MinimumAvailability)
	}
	if args.Tags != nil {
		tagIDs, err := resolveTags(ctx, s.deps.Radarr, args.Tags)
		if err != nil {
			return resolveResult(err)
		}
		movie.Set("tags", tagIDs)
	}

	var updated shape.Object
	if err := s.deps.Radarr.Put(ctx, path, &movie, &updated); err != nil {
		return toolError(err.Error()), nil
	}
	return toolJSON(shape.FullDetail(&updated))
}

func radarrDeleteMovieTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_delete_movie",
		Description: "Remove a movie from the library, optionally deleting its files from disk.",
		InputSchema: objSchema(map[string]any{
			"movie_id":             intProp("Radarr movie ID"),
			"delete_files":         boolProp("Also delete the movie's files from disk"),
			"add_import_exclusion": boolProp("Keep the movie off future import lists"),
		}, "movie_id"),
	}
}

func (s *Server) handleRadarrDeleteMovie(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		MovieID      int  `json:"movie_id"`
		DeleteFiles  bool `json:"delete_files"`
		AddExclusion bool `json:"add_import_exclusion"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.MovieID <= 0 {
		return invalidParams("movie_id is required"), nil
	}

	params := url.Values{
		"deleteFiles":        {strconv.FormatBool(args.DeleteFiles)},
		"addImportExclusion": {strconv.FormatBool(args.AddExclusion)},
	}
	if err := s.deps.Radarr.Delete(ctx, "/api/v3/movie/"+strconv.Itoa(args.MovieID), params); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Movie %d not found.", args.MovieID)), nil
		}
		return toolError(err.Error()), nil
	}
	return success("Movie %d deleted (files deleted: %t).", args.MovieID, args.DeleteFiles)
}

func radarrListMovieFilesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_list_movie_files",
		Description: "List downloaded files of a movie with their paths, sizes, and quality. The movie accepts a title or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"movie": nameOrIDProp("Movie title or Radarr ID"),
			"grep":  grepProp(),
		}, "movie"),
	}
}

func (s *Server) handleRadarrListMovieFiles(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
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
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/moviefile", params, args.Grep, shape.ListOptions{
		Preserve: []string{"relativePath"},
	})
}

func radarrDescribeMovieFileTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_describe_movie_file",
		Description: "Get the complete record for one movie file, including media info.",
		InputSchema: objSchema(map[string]any{
			"file_id": intProp("Radarr movie file ID"),
		}, "file_id"),
	}
}

func (s *Server) handleRadarrDescribeMovieFile(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		FileID int `json:"file_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.FileID <= 0 {
		return invalidParams("file_id is required"), nil
	}
	return s.fullDetail(ctx, s.deps.Radarr,
		"/api/v3/moviefile/"+strconv.Itoa(args.FileID),
		fmt.Sprintf("Movie file %d not found.", args.FileID))
}

func radarrDeleteMovieFileTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_delete_movie_file",
		Description: "Delete one movie file from disk.",
		InputSchema: objSchema(map[string]any{
			"file_id": intProp("Radarr movie file ID"),
		}, "file_id"),
	}
}

func (s *Server) handleRadarrDeleteMovieFile(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		FileID int `json:"file_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.FileID <= 0 {
		return invalidParams("file_id is required"), nil
	}
	if err := s.deps.Radarr.Delete(ctx, "/api/v3/moviefile/"+strconv.Itoa(args.FileID), nil); err != nil {
		if errors.Is(err, arr.ErrNotFound) {
			return notFound(fmt.Sprintf("Movie file %d not found.", args.FileID)), nil
		}
		return toolError(err.Error()), nil
	}
	return success("Movie file %d deleted.", args.FileID)
}

func radarrPreviewRenameTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "radarr_preview_rename",
		Description: "Preview what a movie's files would be renamed to. The movie accepts a title or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"movie": nameOrIDProp("Movie title or Radarr ID"),
			"grep":  grepProp(),
		}, "movie"),
	}
}

func (s *Server) handleRadarrPreviewRename(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
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
	return s.summarizedList(ctx, s.deps.Radarr, "/api/v3/rename", params, args.Grep, shape.ListOptions{
		Preserve: []string{"existingPath", "newPath"},
	})
}
