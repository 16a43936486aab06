// Package mcp exposes Sonarr and Radarr as MCP tools over stdio. Every tool
// is a thin adapter: validate scalar arguments, call one or a few upstream
// REST endpoints, shape the response, return it.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avelasquez/homearr/internal/arr"
)

// Deps holds the upstream clients for tool handlers. A nil client means the
// service is not configured and its tools are not registered.
type Deps struct {
	Sonarr *arr.Client
	Radarr *arr.Client
}

// Options carries the server-wide behavior switches.
type Options struct {
	// ReadOnly skips registration of every tool that mutates upstream state.
	ReadOnly bool
	// MaxSummaryFields caps fields per item in list summaries (default 10).
	MaxSummaryFields int
}

// Server wraps an MCP SDK server with the homearr tool handlers.
type Server struct {
	server *mcpsdk.Server
	deps   Deps
	opts   Options
	logger *slog.Logger
}

// NewServer creates an MCP server with all tools for the configured
// services registered.
func NewServer(deps Deps, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxSummaryFields <= 0 {
		opts.MaxSummaryFields = 10
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "homearr",
			Version: "0.3.0",
		},
		&mcpsdk.ServerOptions{
			Logger: logger,
			Instructions: "This server manages a home media library through Sonarr " +
				"(TV shows) and Radarr (movies). Use list_* tools to browse content " +
				"with optional grep filtering, and describe_* tools to get full " +
				"details by ID. Write operations like add, update, and delete are " +
				"available when not in read-only mode.",
		},
	)

	srv := &Server{server: s, deps: deps, opts: opts, logger: logger}
	srv.registerTools()
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func (s *Server) registerTools() {
	if s.deps.Sonarr != nil {
		s.registerSonarrTools()
		s.logger.Info("sonarr tools registered")
	}
	if s.deps.Radarr != nil {
		s.registerRadarrTools()
		s.logger.Info("radarr tools registered")
	}
	if s.opts.ReadOnly {
		s.logger.Info("read-only mode enabled, write tools disabled")
	}
}

type toolHandler = func(context.Context, *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error)

// read registers a read-only tool.
func (s *Server) read(t *mcpsdk.Tool, h toolHandler) {
	s.server.AddTool(t, h)
}

// write registers a mutating tool, unless read-only mode is on.
func (s *Server) write(t *mcpsdk.Tool, h toolHandler) {
	if s.opts.ReadOnly {
		s.logger.Debug("read-only mode: tool disabled", slog.String("tool", t.Name))
		return
	}
	s.server.AddTool(t, h)
}

func (s *Server) registerSonarrTools() {
	s.read(sonarrListSeriesTool(), s.handleSonarrListSeries)
	s.read(sonarrDescribeSeriesTool(), s.handleSonarrDescribeSeries)
	s.read(sonarrLookupSeriesTool(), s.handleSonarrLookupSeries)
	s.write(sonarrAddSeriesTool(), s.handleSonarrAddSeries)
	s.write(sonarrUpdateSeriesTool(), s.handleSonarrUpdateSeries)
	s.write(sonarrDeleteSeriesTool(), s.handleSonarrDeleteSeries)

	s.read(sonarrListEpisodesTool(), s.handleSonarrListEpisodes)
	s.read(sonarrDescribeEpisodeTool(), s.handleSonarrDescribeEpisode)
	s.write(sonarrMonitorEpisodesTool(), s.handleSonarrMonitorEpisodes)
	s.read(sonarrListEpisodeFilesTool(), s.handleSonarrListEpisodeFiles)
	s.read(sonarrDescribeEpisodeFileTool(), s.handleSonarrDescribeEpisodeFile)
	s.write(sonarrDeleteEpisodeFileTool(), s.handleSonarrDeleteEpisodeFile)

	s.read(sonarrListQueueTool(), s.handleSonarrListQueue)
	s.read(sonarrDescribeQueueItemTool(), s.handleSonarrDescribeQueueItem)
	s.write(sonarrGrabQueueItemTool(), s.handleSonarrGrabQueueItem)
	s.write(sonarrRemoveQueueItemTool(), s.handleSonarrRemoveQueueItem)
	s.write(sonarrRemoveQueueItemsTool(), s.handleSonarrRemoveQueueItems)

	s.read(sonarrGetCalendarTool(), s.handleSonarrGetCalendar)
	s.read(sonarrListMissingTool(), s.handleSonarrListMissing)
	s.read(sonarrListCutoffUnmetTool(), s.handleSonarrListCutoffUnmet)

	s.read(sonarrListHistoryTool(), s.handleSonarrListHistory)
	s.read(sonarrListSeriesHistoryTool(), s.handleSonarrListSeriesHistory)
	s.read(sonarrListBlocklistTool(), s.handleSonarrListBlocklist)
	s.write(sonarrRemoveBlocklistItemTool(), s.handleSonarrRemoveBlocklistItem)

	s.read(sonarrSearchReleasesTool(), s.handleSonarrSearchReleases)
	s.write(sonarrDownloadReleaseTool(), s.handleSonarrDownloadRelease)

	s.read(sonarrGetSystemStatusTool(), s.handleSonarrGetSystemStatus)
	s.read(sonarrListHealthChecksTool(), s.handleSonarrListHealthChecks)
	s.read(sonarrGetDiskSpaceTool(), s.handleSonarrGetDiskSpace)
	s.read(sonarrListLogsTool(), s.handleSonarrListLogs)
	s.write(sonarrRunCommandTool(), s.handleSonarrRunCommand)
	s.read(sonarrListCommandsTool(), s.handleSonarrListCommands)
	s.read(sonarrDescribeCommandTool(), s.handleSonarrDescribeCommand)

	s.read(sonarrListQualityProfilesTool(), s.handleSonarrListQualityProfiles)
	s.read(sonarrDescribeQualityProfileTool(), s.handleSonarrDescribeQualityProfile)
	s.read(sonarrListTagsTool(), s.handleSonarrListTags)
	s.read(sonarrDescribeTagTool(), s.handleSonarrDescribeTag)
	s.read(sonarrListRootFoldersTool(), s.handleSonarrListRootFolders)

	s.read(sonarrPreviewRenameTool(), s.handleSonarrPreviewRename)
	s.read(sonarrPreviewManualImportTool(), s.handleSonarrPreviewManualImport)
	s.write(sonarrExecuteManualImportTool(), s.handleSonarrExecuteManualImport)
}

func (s *Server) registerRadarrTools() {
	s.read(radarrListMoviesTool(), s.handleRadarrListMovies)
	s.read(radarrDescribeMovieTool(), s.handleRadarrDescribeMovie)
	s.read(radarrLookupMovieTool(), s.handleRadarrLookupMovie)
	s.write(radarrAddMovieTool(), s.handleRadarrAddMovie)
	s.write(radarrUpdateMovieTool(), s.handleRadarrUpdateMovie)
	s.write(radarrDeleteMovieTool(), s.handleRadarrDeleteMovie)

	s.read(radarrListMovieFilesTool(), s.handleRadarrListMovieFiles)
	s.read(radarrDescribeMovieFileTool(), s.handleRadarrDescribeMovieFile)
	s.write(radarrDeleteMovieFileTool(), s.handleRadarrDeleteMovieFile)

	s.read(radarrListQueueTool(), s.handleRadarrListQueue)
	s.read(radarrDescribeQueueItemTool(), s.handleRadarrDescribeQueueItem)
	s.write(radarrGrabQueueItemTool(), s.handleRadarrGrabQueueItem)
	s.write(radarrRemoveQueueItemsTool(), s.handleRadarrRemoveQueueItems)

	s.read(radarrListCollectionsTool(), s.handleRadarrListCollections)
	s.read(radarrDescribeCollectionTool(), s.handleRadarrDescribeCollection)
	s.write(radarrUpdateCollectionTool(), s.handleRadarrUpdateCollection)

	s.read(radarrListExclusionsTool(), s.handleRadarrListExclusions)
	s.write(radarrAddExclusionTool(), s.handleRadarrAddExclusion)
	s.write(radarrRemoveExclusionTool(), s.handleRadarrRemoveExclusion)

	s.read(radarrListCreditsTool(), s.handleRadarrListCredits)
	s.read(radarrListAlternativeTitlesTool(), s.handleRadarrListAlternativeTitles)

	s.read(radarrGetCalendarTool(), s.handleRadarrGetCalendar)
	s.read(radarrListMissingTool(), s.handleRadarrListMissing)
	s.read(radarrListCutoffUnmetTool(), s.handleRadarrListCutoffUnmet)

	s.read(radarrListHistoryTool(), s.handleRadarrListHistory)
	s.read(radarrListMovieHistoryTool(), s.handleRadarrListMovieHistory)
	s.read(radarrListBlocklistTool(), s.handleRadarrListBlocklist)
	s.write(radarrRemoveBlocklistItemTool(), s.handleRadarrRemoveBlocklistItem)

	s.read(radarrSearchReleasesTool(), s.handleRadarrSearchReleases)
	s.write(radarrDownloadReleaseTool(), s.handleRadarrDownloadRelease)

	s.read(radarrGetSystemStatusTool(), s.handleRadarrGetSystemStatus)
	s.read(radarrListHealthChecksTool(), s.handleRadarrListHealthChecks)
	s.read(radarrGetDiskSpaceTool(), s.handleRadarrGetDiskSpace)
	s.read(radarrListLogsTool(), s.handleRadarrListLogs)
	s.write(radarrRunCommandTool(), s.handleRadarrRunCommand)
	s.read(radarrListCommandsTool(), s.handleRadarrListCommands)
	s.read(radarrDescribeCommandTool(), s.handleRadarrDescribeCommand)

	s.read(radarrListQualityProfilesTool(), s.handleRadarrListQualityProfiles)
	s.read(radarrDescribeQualityProfileTool(), s.handleRadarrDescribeQualityProfile)
	s.read(radarrListTagsTool(), s.handleRadarrListTags)
	s.read(radarrDescribeTagTool(), s.handleRadarrDescribeTag)
	s.read(radarrListRootFoldersTool(), s.handleRadarrListRootFolders)

	s.read(radarrPreviewRenameTool(), s.handleRadarrPreviewRename)
	s.read(radarrPreviewManualImportTool(), s.handleRadarrPreviewManualImport)
	s.write(radarrExecuteManualImportTool(), s.handleRadarrExecuteManualImport)
}
