package cli

import (
	"context"

	"github.com/aretw0/stencil/pkg/adapters/mcp"
)

// NewMCPServer builds the MCP server for the environment.
func NewMCPServer(env *Env) *mcp.Server {
	return mcp.NewServer(env.Sessions(), env.Kit, mcp.WithLogger(env.Logger))
}

// ServeMCP serves MCP over SSE on sseAddr, or over stdio when it is empty.
func ServeMCP(ctx context.Context, env *Env, sseAddr string) error {
	s := NewMCPServer(env)
	if sseAddr == "" {
		env.Logger.Info("mcp server on stdio")
		return s.ServeStdio()
	}
	return s.ServeSSE(ctx, sseAddr)
}
