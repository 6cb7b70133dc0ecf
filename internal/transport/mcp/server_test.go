package mcp

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/edagent/internal/config"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/orchestrator"
	"github.com/sandevgo/edagent/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCoach struct{ calls []string }

func (f *fakeCoach) HandleMessage(_ context.Context, userID, text string) core.Response {
	f.calls = append(f.calls, userID+":"+text)
	return core.Response{Message: "Here is your plan", Type: core.ResponseLearningPath, Confidence: 0.85}
}

type fakeConv struct{ reset []string }

func (f *fakeConv) Status(userID string) orchestrator.StateSnapshot {
	return orchestrator.StateSnapshot{UserID: userID, State: state.ModeInAssessment, MessageCount: 2}
}

func (f *fakeConv) Reset(userID string) { f.reset = append(f.reset, userID) }

func callRequest(name string, args map[string]any) mcpproto.CallToolRequest {
	req := mcpproto.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcpproto.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcpproto.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func newTestServer() (*Server, *fakeCoach, *fakeConv) {
	coach, conv := &fakeCoach{}, &fakeConv{}
	return NewServer(&config.MCPConfig{Addr: ":0"}, coach, conv), coach, conv
}

func TestHandleMessage(t *testing.T) {
	s, coach, _ := newTestServer()

	res, err := s.handleMessage(context.Background(), callRequest(ToolMessage, map[string]any{
		"user_id": "u1",
		"message": " I want to become a data scientist ",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var resp core.Response
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, "Here is your plan", resp.Message)
	assert.Equal(t, core.ResponseLearningPath, resp.Type)
	assert.Equal(t, []string{"u1:I want to become a data scientist"}, coach.calls)
}

func TestHandleMessage_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing user", args: map[string]any{"message": "hi"}},
		{name: "missing message", args: map[string]any{"user_id": "u1"}},
		{name: "blank message", args: map[string]any{"user_id": "u1", "message": "  "}},
		{name: "wrong type", args: map[string]any{"user_id": 42, "message": "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, coach, _ := newTestServer()
			res, err := s.handleMessage(context.Background(), callRequest(ToolMessage, tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Empty(t, coach.calls)
		})
	}
}

func TestStatusAndResetTools(t *testing.T) {
	s, _, conv := newTestServer()

	res, err := s.handleStatus(context.Background(), callRequest(ToolStatus, map[string]any{"user_id": "u2"}))
	require.NoError(t, err)
	var snap orchestrator.StateSnapshot
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &snap))
	assert.Equal(t, state.ModeInAssessment, snap.State)
	assert.Equal(t, 2, snap.MessageCount)

	res, err = s.handleReset(context.Background(), callRequest(ToolReset, map[string]any{"user_id": "u2"}))
	require.NoError(t, err)
	assert.Equal(t, "conversation reset", resultText(t, res))
	assert.Equal(t, []string{"u2"}, conv.reset)
}

func TestServer_StreamableHTTP(t *testing.T) {
	s, coach, _ := newTestServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx := context.Background()
	cli, err := client.NewStreamableHttpClient(ts.URL + endpointPath)
	require.NoError(t, err)
	defer cli.Close()
	require.NoError(t, cli.Start(ctx))

	initReq := mcpproto.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcpproto.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcpproto.Implementation{Name: "edagent-test", Version: core.AppVersion}
	_, err = cli.Initialize(ctx, initReq)
	require.NoError(t, err)

	tools, err := cli.ListTools(ctx, mcpproto.ListToolsRequest{})
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ToolMessage, ToolStatus, ToolReset}, names)

	res, err := cli.CallTool(ctx, callRequest(ToolMessage, map[string]any{"user_id": "u3", "message": "hello"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Here is your plan")
	assert.Equal(t, []string{"u3:hello"}, coach.calls)
}
