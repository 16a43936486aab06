package mcp

import (
	"context"
	"fmt"
	"strconv"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/resolve"
	"github.com/avelasquez/homearr/internal/shape"
)

// Reference data tools: quality profiles, tags, root folders. These are the
// collections the name-or-ID resolver works against, so the describe tools
// take names too.

func listQualityProfilesTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_list_quality_profiles",
		Description: "List quality profiles with their IDs and names.",
		InputSchema: objSchema(map[string]any{
			"grep": grepProp(),
		}),
	}
}

func sonarrListQualityProfilesTool() *mcpsdk.Tool { return listQualityProfilesTool("sonarr") }
func radarrListQualityProfilesTool() *mcpsdk.Tool { return listQualityProfilesTool("radarr") }

func (s *Server) listQualityProfiles(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Grep string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return s.summarizedList(ctx, c, "/api/v3/qualityprofile", nil, args.Grep, shape.ListOptions{
		Preserve: []string{"name"},
	})
}

func (s *Server) handleSonarrListQualityProfiles(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listQualityProfiles(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrListQualityProfiles(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listQualityProfiles(ctx, s.deps.Radarr, req)
}

func describeQualityProfileTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_describe_quality_profile",
		Description: "Get one quality profile with its full quality ladder. Accepts a profile name or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"profile": nameOrIDProp("Quality profile name or ID"),
		}, "profile"),
	}
}

func sonarrDescribeQualityProfileTool() *mcpsdk.Tool { return describeQualityProfileTool("sonarr") }
func radarrDescribeQualityProfileTool() *mcpsdk.Tool { return describeQualityProfileTool("radarr") }

func (s *Server) describeQualityProfile(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Profile flexString `json:"profile"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Profile == "" {
		return invalidParams("profile is required"), nil
	}

	profileID, err := resolveQualityProfile(ctx, c, args.Profile)
	if err != nil {
		return resolveResult(err)
	}
	return s.fullDetail(ctx, c,
		"/api/v3/qualityprofile/"+strconv.Itoa(profileID),
		fmt.Sprintf("Quality profile %d not found.", profileID))
}

func (s *Server) handleSonarrDescribeQualityProfile(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.describeQualityProfile(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrDescribeQualityProfile(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.describeQualityProfile(ctx, s.deps.Radarr, req)
}

func listTagsTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_list_tags",
		Description: "List tags with their IDs and labels.",
		InputSchema: objSchema(map[string]any{
			"grep": grepProp(),
		}),
	}
}

func sonarrListTagsTool() *mcpsdk.Tool { return listTagsTool("sonarr") }
func radarrListTagsTool() *mcpsdk.Tool { return listTagsTool("radarr") }

func (s *Server) listTags(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Grep string `json:"grep"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return s.summarizedList(ctx, c, "/api/v3/tag", nil, args.Grep, shape.ListOptions{
		Preserve: []string{"label"},
	})
}

func (s *Server) handleSonarrListTags(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listTags(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrListTags(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listTags(ctx, s.deps.Radarr, req)
}

func describeTagTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_describe_tag",
		Description: "Get one tag and everything it is applied to. Accepts a tag label or a numeric ID.",
		InputSchema: objSchema(map[string]any{
			"tag": nameOrIDProp("Tag label or ID"),
		}, "tag"),
	}
}

func sonarrDescribeTagTool() *mcpsdk.Tool { return describeTagTool("sonarr") }
func radarrDescribeTagTool() *mcpsdk.Tool { return describeTagTool("radarr") }

func (s *Server) describeTag(ctx context.Context, c *arr.Client, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Tag flexString `json:"tag"`
	}
	if err := parseArgs(req, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Tag == "" {
		return invalidParams("tag is required"), nil
	}

	entries, err := referenceEntries(ctx, c, "/api/v3/tag", "label")
	if err != nil {
		return toolError(err.Error()), nil
	}
	tagID, err := resolve.NameOrID(string(args.Tag), entries, "tag")
	if err != nil {
		return resolveResult(err)
	}
	return s.fullDetail(ctx, c,
		"/api/v3/tag/detail/"+strconv.Itoa(tagID),
		fmt.Sprintf("Tag %d not found.", tagID))
}

func (s *Server) handleSonarrDescribeTag(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.describeTag(ctx, s.deps.Sonarr, req)
}

func (s *Server) handleRadarrDescribeTag(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.describeTag(ctx, s.deps.Radarr, req)
}

func listRootFoldersTool(service string) *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        service + "_list_root_folders",
		Description: "List root folders with their paths and free space.",
		InputSchema: objSchema(map[string]any{}),
	}
}

func sonarrListRootFoldersTool() *mcpsdk.Tool { return listRootFoldersTool("sonarr") }
func radarrListRootFoldersTool() *mcpsdk.Tool { return listRootFoldersTool("radarr") }

func (s *Server) listRootFolders(ctx context.Context, c *arr.Client) (*mcpsdk.CallToolResult, error) {
	return s.summarizedList(ctx, c, "/api/v3/rootfolder", nil, "", shape.ListOptions{
		Preserve: []string{"path", "freeSpace"},
	})
}

func (s *Server) handleSonarrListRootFolders(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listRootFolders(ctx, s.deps.Sonarr)
}

func (s *Server) handleRadarrListRootFolders(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	return s.listRootFolders(ctx, s.deps.Radarr)
}
