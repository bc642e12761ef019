// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/logging"
	"github.com/xvierd/startpage/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server *server.MCPServer
	desk   ports.DeskController
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewServer creates a new MCP server instance.
func NewServer(desk ports.DeskController, version string) *Server {
	s := &Server{
		desk: desk,
	}

	s.server = server.NewMCPServer(
		"startpage",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

func panelParam() mcp.ToolOption {
	names := make([]string, 0, len(domain.AllPanels()))
	for _, id := range domain.AllPanels() {
		names = append(names, id.String())
	}
	return mcp.WithString(
		"panel",
		mcp.Required(),
		mcp.Description("Panel name"),
		mcp.Enum(names...),
	)
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_state",
			mcp.WithDescription("Get the start page state: open panels, focus, theme, search text and timer"),
		),
		s.handleGetState,
	)

	s.server.AddTool(
		mcp.NewTool("open_panel", mcp.WithDescription("Open a panel"), panelParam()),
		s.panelHandler("open", s.desk.OpenPanel),
	)
	s.server.AddTool(
		mcp.NewTool("close_panel", mcp.WithDescription("Close a panel"), panelParam()),
		s.panelHandler("close", s.desk.ClosePanel),
	)
	s.server.AddTool(
		mcp.NewTool("toggle_panel", mcp.WithDescription("Toggle a panel"), panelParam()),
		s.panelHandler("toggle", s.desk.TogglePanel),
	)

	s.server.AddTool(
		mcp.NewTool(
			"escape",
			mcp.WithDescription("Close the highest priority open surface, like pressing Escape once"),
		),
		s.handleEscape,
	)

	s.server.AddTool(
		mcp.NewTool(
			"cycle_theme",
			mcp.WithDescription("Switch to the next theme (purple, green, teal)"),
		),
		s.handleCycleTheme,
	)

	s.server.AddTool(
		mcp.NewTool(
			"search",
			mcp.WithDescription("Type text into the search field; a trigger word runs its command"),
			mcp.WithString(
				"text",
				mcp.Required(),
				mcp.Description("The search text"),
			),
		),
		s.handleSearch,
	)

	s.server.AddTool(
		mcp.NewTool(
			"filter_links",
			mcp.WithDescription("List catalog links whose name, category or description contains the query"),
			mcp.WithString(
				"query",
				mcp.Description("Case-insensitive substring; empty lists every link"),
			),
		),
		s.handleFilterLinks,
	)

	for _, t := range []struct {
		name, desc string
		fn         func()
	}{
		{"timer_start", "Start the countdown", s.desk.StartTimer},
		{"timer_pause", "Pause the countdown", s.desk.PauseTimer},
		{"timer_reset", "Reset the countdown to the full duration of the current mode", s.desk.ResetTimer},
		{"timer_switch_mode", "Switch between work and break", s.desk.SwitchTimerMode},
	} {
		s.server.AddTool(
			mcp.NewTool(t.name, mcp.WithDescription(t.desc)),
			s.timerHandler(t.name, t.fn),
		)
	}
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func stateResult(state domain.DeskState) map[string]interface{} {
	open := make([]string, 0, len(state.OpenPanels))
	for _, id := range state.OpenPanels {
		open = append(open, id.String())
	}

	result := map[string]interface{}{
		"theme":       string(state.Theme),
		"focus":       state.Focus.String(),
		"open_panels": open,
		"top_panel":   nil,
		"search":      state.Search,
		"timer": map[string]interface{}{
			"mode":      string(state.Timer.Mode),
			"remaining": domain.FormatClock(state.Timer.Remaining),
			"seconds":   state.Timer.Remaining,
			"running":   state.Timer.Running,
		},
		"notice": nil,
	}
	if state.Top != nil {
		result["top_panel"] = state.Top.String()
	}
	if state.Notice != nil {
		result["notice"] = state.Notice.Message
	}
	return result
}

func linkResult(l domain.Link) map[string]interface{} {
	return map[string]interface{}{
		"id":          l.ID,
		"name":        l.Name,
		"url":         l.URL,
		"category":    l.Category,
		"description": l.Description,
		"kind":        string(l.Kind),
	}
}

// handleGetState handles the get_state tool.
func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(stateResult(s.desk.State()))
}

func (s *Server) panelHandler(verb string, apply func(domain.PanelID)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("panel")
		if err != nil {
			return mcp.NewToolResultError("panel is required: " + err.Error()), nil
		}
		id, err := domain.ParsePanelID(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		apply(id)
		logging.L().Debug("mcp panel", "verb", verb, "panel", id)

		state := s.desk.State()
		return jsonResult(map[string]interface{}{
			"panel": id.String(),
			"open":  state.IsOpen(id),
			"state": stateResult(state),
		})
	}
}

// handleEscape handles the escape tool.
func (s *Server) handleEscape(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	closed, ok := s.desk.Escape()
	result := map[string]interface{}{"closed": nil}
	if ok {
		result["closed"] = closed.String()
	}
	result["state"] = stateResult(s.desk.State())
	return jsonResult(result)
}

// handleCycleTheme handles the cycle_theme tool.
func (s *Server) handleCycleTheme(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	theme := s.desk.CycleTheme()
	return jsonResult(map[string]interface{}{"theme": string(theme)})
}

// handleSearch handles the search tool.
func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required: " + err.Error()), nil
	}

	fired := s.desk.Search(text)
	logging.L().Debug("mcp search", "text", text, "fired", fired)
	return jsonResult(map[string]interface{}{
		"command_fired": fired,
		"state":         stateResult(s.desk.State()),
	})
}

// handleFilterLinks handles the filter_links tool.
func (s *Server) handleFilterLinks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")

	links := s.desk.FilterLinks(query)
	list := make([]map[string]interface{}, 0, len(links))
	for _, l := range links {
		list = append(list, linkResult(l))
	}
	return jsonResult(map[string]interface{}{
		"query":       query,
		"links":       list,
		"total_count": len(list),
	})
}

func (s *Server) timerHandler(name string, apply func()) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		apply()
		logging.L().Debug("mcp timer", "tool", name)
		return jsonResult(stateResult(s.desk.State())["timer"])
	}
}
