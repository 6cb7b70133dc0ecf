package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/edagent/internal/config"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/orchestrator"
	"github.com/sandevgo/edagent/pkg/log"
)

const (
	ToolMessage = "coach_message"
	ToolStatus  = "coach_status"
	ToolReset   = "coach_reset"

	endpointPath = "/mcp"
)

type ConversationControl interface {
	Status(userID string) orchestrator.StateSnapshot
	Reset(userID string)
}

// Server publishes the coach to MCP clients over streamable HTTP.
type Server struct {
	cfg   *config.MCPConfig
	coach core.Coach
	conv  ConversationControl
	mcp   *server.MCPServer
	http  *server.StreamableHTTPServer
}

func NewServer(cfg *config.MCPConfig, coach core.Coach, conv ConversationControl) *Server {
	s := &Server{
		cfg:   cfg,
		coach: coach,
		conv:  conv,
		mcp: server.NewMCPServer(
			core.AppName,
			core.AppVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	s.http = server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(endpointPath))
	return s
}

func (s *Server) registerTools() {
	userID := mcpproto.WithString("user_id",
		mcpproto.Required(),
		mcpproto.Description("Stable identifier of the learner"),
	)

	s.mcp.AddTool(mcpproto.NewTool(ToolMessage,
		mcpproto.WithDescription("Send one learner message to the career coach and get its structured response as JSON"),
		userID,
		mcpproto.WithString("message",
			mcpproto.Required(),
			mcpproto.Description("What the learner said"),
		),
	), s.handleMessage)

	s.mcp.AddTool(mcpproto.NewTool(ToolStatus,
		mcpproto.WithDescription("Show the learner's conversation state and assessment progress"),
		userID,
	), s.handleStatus)

	s.mcp.AddTool(mcpproto.NewTool(ToolReset,
		mcpproto.WithDescription("Drop the learner's in-progress conversation"),
		userID,
	), s.handleReset)
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Str("path", endpointPath).Msg("starting mcp server")
	if err := s.http.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(context.WithoutCancel(ctx))
}

// Handler exposes the streamable HTTP endpoint for mounting elsewhere.
func (s *Server) Handler() http.Handler {
	return s.http
}

func (s *Server) handleMessage(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	message, err := req.RequireString("message")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(message) == "" {
		return mcpproto.NewToolResultError("user_id and message must not be empty"), nil
	}

	ctx = log.WithFields(ctx, "transport", "mcp")
	return jsonResult(s.coach.HandleMessage(ctx, userID, strings.TrimSpace(message)))
}

func (s *Server) handleStatus(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.conv.Status(userID))
}

func (s *Server) handleReset(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	s.conv.Reset(userID)
	return mcpproto.NewToolResultText("conversation reset"), nil
}

func jsonResult(v any) (*mcpproto.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcpproto.NewToolResultText(string(data)), nil
}
