// Package mcp exposes clicktree sessions as Model Context Protocol tools so an
// agent can act as the host: render a list, fold groups and pick an item.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/internal/dto"
	"github.com/aretw0/clicktree/internal/logging"
	"github.com/aretw0/clicktree/internal/presentation/graph"
	"github.com/aretw0/clicktree/internal/presentation/markdown"
	"github.com/aretw0/clicktree/internal/presentation/text"
	"github.com/aretw0/clicktree/internal/sanitize"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/aretw0/clicktree/pkg/ports"
	"github.com/aretw0/clicktree/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/muesli/termenv"
)

// RenderResponse is the structured result of render_list.
type RenderResponse struct {
	Rendered  bool     `json:"rendered" jsonschema_description:"False when the payload carried no options and the pass was skipped"`
	Height    int      `json:"height" jsonschema_description:"Frame height in pixels"`
	Outline   string   `json:"outline" jsonschema_description:"Visible rows; the leading number is the index accepted by select_item"`
	Collapsed []string `json:"collapsedState" jsonschema_description:"Keys of collapsed groups"`
}

// ToggleResponse is the structured result of toggle_group.
type ToggleResponse struct {
	Key       string `json:"key" jsonschema_description:"The toggled group key"`
	Collapsed bool   `json:"collapsed" jsonschema_description:"Whether the group is now collapsed"`
	Outline   string `json:"outline" jsonschema_description:"Visible rows after the toggle"`
}

// Server wraps a session manager and exposes it as an MCP server.
type Server struct {
	sessions  *session.Manager
	source    ports.OptionsSource
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithSource lets render_list load named payloads.
func WithSource(src ports.OptionsSource) Option {
	return func(s *Server) {
		s.source = src
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("clicktree-mcp", strings.TrimSpace(clicktree.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	renderTool := mcp.NewTool("render_list",
		mcp.WithDescription("Render a flat list of leveled items as a collapsible tree. Pass either payload or source."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to render into")),
		mcp.WithString("payload", mcp.Description(`JSON object {"options":[{"id","name","level"}],"indent","style","collapsedState"}`)),
		mcp.WithString("source", mcp.Description("Name of a stored option list (see clicktree://sources)")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRender))

	toggleTool := mcp.NewTool("toggle_group",
		mcp.WithDescription("Collapse or expand a group. Keys have the form id-name-level."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Group key")),
		mcp.WithOutputSchema[ToggleResponse](),
	)
	s.mcpServer.AddTool(toggleTool, mcp.NewStructuredToolHandler(s.handleToggle))

	selectTool := mcp.NewTool("select_item",
		mcp.WithDescription("Activate a leaf and report it with the current collapse state. Pass index or id."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("index", mcp.Description("Input index of the item")),
		mcp.WithString("id", mcp.Description("Item ID")),
		mcp.WithOutputSchema[domain.Selection](),
	)
	s.mcpServer.AddTool(selectTool, mcp.NewStructuredToolHandler(s.handleSelect))

	s.mcpServer.AddTool(mcp.NewTool("get_tree",
		mcp.WithDescription("Show the current tree of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("format", mcp.Description("text (default), markdown, mermaid or json")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := s.getTree(ctx, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("clicktree://sources", "Stored option lists",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names := []string{}
		if s.source != nil {
			var err error
			if names, err = s.source.List(ctx); err != nil {
				return nil, fmt.Errorf("failed to list sources: %w", err)
			}
		}
		jsonBytes, _ := json.Marshal(names)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "clicktree://sources",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func outline(tree *domain.Tree) string {
	return text.String(tree, text.Options{Profile: termenv.Ascii, Indices: true})
}

func sessionID(args map[string]any) (string, error) {
	id, _ := args["session_id"].(string)
	if id == "" {
		return "", errors.New("session_id is required")
	}
	return id, nil
}

func (s *Server) payload(ctx context.Context, args map[string]any) (*domain.RenderConfig, error) {
	if name, _ := args["source"].(string); name != "" {
		if s.source == nil {
			return nil, errors.New("no option source configured")
		}
		return s.source.Load(ctx, name)
	}

	raw, _ := args["payload"].(string)
	if strings.TrimSpace(raw) == "" {
		return dto.DecodeConfig(nil)
	}
	if err := sanitize.Payload([]byte(raw)); err != nil {
		return nil, err
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	return dto.DecodeConfig(body)
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (RenderResponse, error) {
	id, err := sessionID(args)
	if err != nil {
		return RenderResponse{}, err
	}
	cfg, err := s.payload(ctx, args)
	if err != nil {
		s.logger.Warn("MCP render: payload rejected", "session_id", id, "err", err)
		return RenderResponse{}, err
	}

	var res RenderResponse
	err = s.sessions.Do(ctx, id, func(ctx context.Context, c *clicktree.Component) error {
		tree, err := c.Render(ctx, cfg)
		if tree != nil {
			res = RenderResponse{Rendered: true, Height: tree.Height, Outline: outline(tree)}
		}
		res.Collapsed = c.Collapsed()
		return err
	})
	if err != nil {
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleToggle(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ToggleResponse, error) {
	id, err := sessionID(args)
	if err != nil {
		return ToggleResponse{}, err
	}
	key, _ := args["key"].(string)

	res := ToggleResponse{Key: key}
	err = s.sessions.Do(ctx, id, func(ctx context.Context, c *clicktree.Component) error {
		var err error
		if res.Collapsed, err = c.Toggle(ctx, key); err != nil {
			return err
		}
		res.Outline = outline(c.Tree())
		return nil
	})
	if err != nil {
		return ToggleResponse{}, fmt.Errorf("toggle failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Selection, error) {
	id, err := sessionID(args)
	if err != nil {
		return domain.Selection{}, err
	}
	index, hasIndex := args["index"].(float64)
	itemID, _ := args["id"].(string)
	if !hasIndex && itemID == "" {
		return domain.Selection{}, errors.New("select_item needs index or id")
	}

	var sel domain.Selection
	err = s.sessions.Do(ctx, id, func(ctx context.Context, c *clicktree.Component) error {
		var err error
		if hasIndex {
			sel, err = c.Select(ctx, int(index))
		} else {
			sel, err = c.SelectByID(ctx, itemID)
		}
		return err
	})
	if err != nil {
		return domain.Selection{}, fmt.Errorf("select failed: %w", err)
	}
	return sel, nil
}

func (s *Server) getTree(ctx context.Context, args map[string]any) (string, error) {
	id, err := sessionID(args)
	if err != nil {
		return "", err
	}
	if _, err := s.sessions.Load(ctx, id); err != nil {
		return "", err
	}

	var tree *domain.Tree
	err = s.sessions.View(ctx, id, func(_ context.Context, c *clicktree.Component) error {
		tree = c.Tree()
		return nil
	})
	if err != nil {
		return "", err
	}
	if tree == nil {
		return "", domain.ErrNoTree
	}

	format, _ := args["format"].(string)
	switch format {
	case "", "text":
		return outline(tree), nil
	case "markdown":
		return markdown.Markdown(tree), nil
	case "mermaid":
		return graph.GenerateMermaid(tree, nil), nil
	case "json":
		data, err := json.Marshal(tree)
		return string(data), err
	}
	return "", fmt.Errorf("unknown format %q", format)
}
