// Package mcp exposes tools and sessions to Model Context Protocol clients.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/runner"
	"github.com/aretw0/stencil/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolsURI is the resource listing every tool.
const ToolsURI = "stencil://tools"

// Catalog exposes the tools available to MCP clients.
type Catalog interface {
	Tools() []string
	Describe(id string) (string, error)
	Definition(id string) (*domain.Tool, error)
}

// ToolInfo is one entry of the tool listing.
type ToolInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Server wraps a session manager as an MCP server.
type Server struct {
	sessions  *session.Manager
	catalog   Catalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an MCP server over the session manager.
func NewServer(sessions *session.Manager, catalog Catalog, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		catalog:   catalog,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("stencil-mcp", strings.TrimSpace(stencil.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio serves on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+ln.Addr().String()))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening (sse)", "addr", ln.Addr().String())
		serverErrors <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_tools",
		mcp.WithDescription("List the sketch tools with their labels and state descriptions."),
	), s.handleListTools)

	s.mcpServer.AddTool(mcp.NewTool("execute_tool",
		mcp.WithDescription("Run a tool without interaction from property values and element pointers."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Document id")),
		mcp.WithString("tool", mcp.Required(), mcp.Description("Tool id, e.g. line")),
		mcp.WithObject("properties", mcp.Description(`Property values by name, e.g. {"p2": [10, 0]}`)),
		mcp.WithObject("pointers", mcp.Description(`Elements by state name, e.g. {"Start": {"kind": "point", "name": "Point.001"}}`)),
		mcp.WithOutputSchema[domain.Report](),
	), mcp.NewStructuredToolHandler(s.handleExecute))

	s.mcpServer.AddTool(mcp.NewTool("invoke_tool",
		mcp.WithDescription("Start an interactive tool on a session, cancelling any running one."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Document id")),
		mcp.WithString("tool", mcp.Required(), mcp.Description("Tool id")),
		mcp.WithObject("event", mcp.Description(`Invoking event, e.g. {"cmd": "click", "x": 0, "y": 0}`)),
		mcp.WithOutputSchema[domain.Report](),
	), mcp.NewStructuredToolHandler(s.handleInvoke))

	s.mcpServer.AddTool(mcp.NewTool("send_event",
		mcp.WithDescription("Feed one input command (click, move, key, type, ...) to the running tool."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Document id")),
		mcp.WithObject("event", mcp.Required(), mcp.Description(`Input command, e.g. {"cmd": "type", "text": "25"}`)),
	), s.handleEvent)

	s.mcpServer.AddTool(mcp.NewTool("cancel_tool",
		mcp.WithDescription("Cancel the running tool and roll its changes back."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Document id")),
		mcp.WithOutputSchema[domain.Report](),
	), mcp.NewStructuredToolHandler(s.handleCancel))

	s.mcpServer.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Return the session document as JSON."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Document id")),
	), s.handleDocument)
}

func (s *Server) toolInfos() ([]ToolInfo, error) {
	ids := s.catalog.Tools()
	out := make([]ToolInfo, 0, len(ids))
	for _, id := range ids {
		t, err := s.catalog.Definition(id)
		if err != nil {
			return nil, err
		}
		desc, err := s.catalog.Describe(id)
		if err != nil {
			return nil, err
		}
		out = append(out, ToolInfo{ID: id, Label: t.DisplayName(), Description: desc})
	}
	return out, nil
}

func (s *Server) handleListTools(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := s.toolInfos()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	data, _ := json.Marshal(infos)
	return mcp.NewToolResultText(string(data)), nil
}

// decodeOne expands a wire command object that must yield exactly one command of kind.
func decodeOne(raw map[string]any, kind runner.CommandKind) (runner.Command, error) {
	cmds, err := runner.Decode(raw)
	if err != nil {
		return runner.Command{}, err
	}
	if len(cmds) != 1 || cmds[0].Kind != kind {
		return runner.Command{}, fmt.Errorf("expected a single %v command", kind)
	}
	return cmds[0], nil
}

func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Report, error) {
	id, _ := args["session"].(string)
	raw := map[string]any{"cmd": "exec", "tool": args["tool"]}
	if p, ok := args["properties"]; ok {
		raw["properties"] = p
	}
	if p, ok := args["pointers"]; ok {
		raw["pointers"] = p
	}
	cmd, err := decodeOne(raw, runner.CommandExecute)
	if err != nil {
		return domain.Report{}, err
	}
	s.logger.Debug("mcp execute", "session_id", id, "tool", cmd.Tool)
	return s.sessions.Execute(ctx, id, cmd.Tool, cmd.Values)
}

func (s *Server) handleInvoke(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Report, error) {
	id, _ := args["session"].(string)
	tool, _ := args["tool"].(string)
	ev := domain.Event{}
	if raw, ok := args["event"].(map[string]any); ok {
		cmd, err := decodeOne(raw, runner.CommandEvent)
		if err != nil {
			return domain.Report{}, err
		}
		ev = cmd.Event
	}
	return s.sessions.Invoke(ctx, id, tool, ev)
}

func (s *Server) handleEvent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id, _ := args["session"].(string)
	raw, ok := args["event"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("event must be an object"), nil
	}
	cmds, err := runner.Decode(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reports := make([]domain.Report, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd.Kind != runner.CommandEvent {
			return mcp.NewToolResultError(fmt.Sprintf("%v is not an input event", raw["cmd"])), nil
		}
		rep, err := s.sessions.HandleEvent(ctx, id, cmd.Event)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		reports = append(reports, rep)
	}
	data, _ := json.Marshal(reports)
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleCancel(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Report, error) {
	id, _ := args["session"].(string)
	return s.sessions.Cancel(ctx, id)
}

func (s *Server) handleDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.sessions.Document(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load %q: %v", id, err)), nil
	}
	data, _ := json.Marshal(doc)
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ToolsURI, "Sketch tools",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		infos, err := s.toolInfos()
		if err != nil {
			return nil, err
		}
		data, _ := json.Marshal(infos)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ToolsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
