package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// httpRequestKey is a custom context key for storing the original HTTP request
type httpRequestKey struct{}

// withHTTPRequest adds the original HTTP request to the context
func withHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

// httpRequestFromContext extracts the original HTTP request from the context
func httpRequestFromContext(ctx context.Context) (*http.Request, bool) {
	req, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	return req, ok
}

// NewMcpHTTPServer creates a streamable HTTP handler for the MCP server
func NewMcpHTTPServer(logger *zap.Logger, s *server.MCPServer, endpoint string) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(endpoint),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			logger.Debug("mcp request", zap.String("method", r.Method), zap.String("remote", r.RemoteAddr))
			return withHTTPRequest(ctx, r)
		}),
	)
}
