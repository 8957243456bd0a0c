package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/sapgui-cli/internal/batch"
	"github.com/mj1618/sapgui-cli/internal/output"
	"gopkg.in/yaml.v3"
)

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func joinActions() string {
	return strings.Join(batch.Actions(), ", ")
}

// onHost runs fn on the host worker and returns its result.
func (s *Server) onHost(ctx context.Context, fn func() *mcp.CallToolResult) (*mcp.CallToolResult, error) {
	var res *mcp.CallToolResult
	if err := s.host.do(ctx, func() { res = fn() }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return res, nil
}

func (s *Server) handleSessions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.onHost(ctx, func() *mcp.CallToolResult {
		s.cache.Invalidate()
		sessions, err := s.cache.Sessions(s.selector.Discover)
		if err != nil {
			return mcp.NewToolResultError(err.Error())
		}
		return mcp.NewToolResultText(toText(output.SessionsResult{Sessions: sessions.Descriptors()}))
	})
}

// stepHandler runs a single batch action with the tool arguments as its
// parameters.
func (s *Server) stepHandler(action string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := request.GetArguments()
		return s.onHost(ctx, func() *mcp.CallToolResult {
			ctl, err := s.attach(batch.StringParam(params, "session", ""))
			if err != nil {
				return mcp.NewToolResultError(err.Error())
			}
			defer ctl.Disconnect()

			result, err := batch.Execute(ctl, batch.Step{Action: action, Params: params}, s.cfg.Window)
			if err != nil {
				return mcp.NewToolResultError(toText(output.StepResult{Step: 1, Action: action, Attempts: 1, Error: err.Error()}))
			}
			return mcp.NewToolResultText(toText(result))
		})
	}
}

func (s *Server) handleDo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	raw, ok := params["steps"].([]interface{})
	if !ok {
		return mcp.NewToolResultError("steps must be an array"), nil
	}
	steps, err := batch.FromList(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	runner := &batch.Runner{
		Window:      batch.StringParam(params, "window", s.cfg.Window),
		StopOnError: batch.BoolParam(params, "stop-on-error", true),
		Logger:      s.logger,
	}
	return s.onHost(ctx, func() *mcp.CallToolResult {
		ctl, err := s.attach(batch.StringParam(params, "session", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error())
		}
		defer ctl.Disconnect()

		res, err := runner.Run(ctl, steps)
		if err != nil {
			return mcp.NewToolResultError(err.Error())
		}
		// Titles change as steps navigate between screens.
		s.cache.Invalidate()
		if !res.OK {
			return mcp.NewToolResultError(toText(res))
		}
		return mcp.NewToolResultText(toText(res))
	})
}
