package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/foomo/editor-prevnext/service"
	"github.com/foomo/editor-prevnext/service/vo"
)

const Version = "0.1.0"

type GetNavigationRequest struct {
	ID   int64  `json:"id"`   // The content item id, revisions are mapped to their parent
	Type string `json:"type"` // Optional content type to navigate within
}

type GetNavigationResponse struct {
	Document *vo.NavigationDocument `json:"document"`
}

type RenderNavigationRequest struct {
	Next     int64 `json:"next"`     // Id of the next item, 0 if there is none
	Previous int64 `json:"previous"` // Id of the previous item, 0 if there is none
}

type RenderNavigationResponse struct {
	HTML     string      `json:"html"`
	Markdown vo.Markdown `json:"markdown"`
}

// NewServer creates a new MCP server with the getNavigation and renderNavigation tools
func NewServer(logger *zap.Logger, serviceInstance service.Service) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"Editor PrevNext Navigation MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	getNavigationTool := mcp.NewTool("getNavigation",
		mcp.WithDescription("Get the next and previous published item of the same type for a content item"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The id of the content item (or of one of its revisions)"),
		),
		mcp.WithString("type",
			mcp.Description("The content type to navigate within, defaults to the item's own type"),
		),
	)
	s.AddTool(getNavigationTool, mcp.NewTypedToolHandler(getNavigationHandler(logger, serviceInstance)))

	renderNavigationTool := mcp.NewTool("renderNavigation",
		mcp.WithDescription("Render the editor navigation fragment for known next and previous item ids"),
		mcp.WithNumber("next",
			mcp.Description("Id of the next item, 0 if there is none"),
		),
		mcp.WithNumber("previous",
			mcp.Description("Id of the previous item, 0 if there is none"),
		),
	)
	s.AddTool(renderNavigationTool, mcp.NewTypedToolHandler(renderNavigationHandler(serviceInstance)))

	return s
}

func optionalID(id int64) vo.OptionalID {
	if id <= 0 {
		return vo.None()
	}
	return vo.Some(vo.ItemID(id))
}

func getNavigationHandler(logger *zap.Logger, serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args GetNavigationRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args GetNavigationRequest) (*mcp.CallToolResult, error) {
		fields := []zap.Field{zap.Int64("id", args.ID), zap.String("type", args.Type)}
		// only set on the streamable HTTP transport, stdio calls have no request
		if req, ok := httpRequestFromContext(ctx); ok {
			fields = append(fields, zap.String("remote", req.RemoteAddr), zap.String("userAgent", req.UserAgent()))
		}
		logger.Debug("getNavigation", fields...)

		if args.ID <= 0 {
			return mcp.NewToolResultError("id must be a positive integer"), nil
		}

		document, err := serviceInstance.GetNavigation(ctx, vo.PageContext{
			ItemID: vo.ItemID(args.ID),
			Type:   args.Type,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get navigation: %v", err)), nil
		}

		responseBytes, err := json.Marshal(GetNavigationResponse{Document: document})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}

func renderNavigationHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args RenderNavigationRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args RenderNavigationRequest) (*mcp.CallToolResult, error) {
		fragment := serviceInstance.RenderNavigation(optionalID(args.Next), optionalID(args.Previous))

		htmlString, err := fragment.HTML()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		markdown, err := fragment.Markdown()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		responseBytes, err := json.Marshal(RenderNavigationResponse{HTML: htmlString, Markdown: markdown})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}
