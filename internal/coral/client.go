package coral

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// coordinationToolNames are the Coral Server tools the agent keeps from the
// server's catalog. Everything else the server advertises is ignored.
var coordinationToolNames = map[string]bool{
	"list_agents":        true,
	"create_thread":      true,
	"add_participant":    true,
	"remove_participant": true,
	"close_thread":       true,
	"send_message":       true,
	"wait_for_mentions":  true,
}

// mcpClient is the slice of the MCP client API the Coral client uses.
type mcpClient interface {
	Start(ctx context.Context) error
	Initialize(ctx context.Context, request mcp.InitializeRequest) (*mcp.InitializeResult, error)
	ListTools(ctx context.Context, request mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
	Close() error
}

// Client connects to a Coral Server over SSE and exposes its coordination
// tools to the agent.
type Client struct {
	mcp     mcpClient
	agentID string
	logger  *zap.Logger
	tools   []mcp.Tool
}

// ServerURL builds the Coral Server connection URL, registering the agent ID
// and its advertised capability description as query parameters.
func ServerURL(baseURL, agentID, description string) string {
	params := url.Values{}
	params.Set("agentId", agentID)
	params.Set("agentDescription", description)
	return baseURL + "?" + params.Encode()
}

// NewClient creates a Coral client for the given SSE base URL.
func NewClient(baseURL, agentID, description string, logger *zap.Logger) (*Client, error) {
	serverURL := ServerURL(baseURL, agentID, description)

	sseClient, err := client.NewSSEMCPClient(serverURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create coral client: %w", err)
	}

	logger.Info("connecting to coral server", zap.String("url", serverURL))

	return &Client{
		mcp:     sseClient,
		agentID: agentID,
		logger:  logger,
	}, nil
}

// Connect starts the SSE transport, initializes the MCP session, and loads
// the server's coordination tools.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.mcp.Start(ctx); err != nil {
		return fmt.Errorf("failed to start coral transport: %w", err)
	}

	var initReq mcp.InitializeRequest
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    c.agentID,
		Version: "1.0.0",
	}

	if _, err := c.mcp.Initialize(ctx, initReq); err != nil {
		return fmt.Errorf("failed to initialize coral session: %w", err)
	}

	toolsResult, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list coral tools: %w", err)
	}

	c.tools = filterTools(toolsResult.Tools)

	c.logger.Info("coral server connection established",
		zap.String("agent_id", c.agentID),
		zap.Int("tools", len(c.tools)),
	)
	return nil
}

// Tools returns the coordination tools advertised by the server.
func (c *Client) Tools() []mcp.Tool {
	return c.tools
}

// CallTool invokes a Coral tool and returns its text output. A tool-level
// error is reported in the returned text, not as an error, so callers can
// hand it back to the model.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("coral tool %s failed: %w", name, err)
	}

	text := flattenContent(result.Content)
	if result.IsError {
		c.logger.Warn("coral tool returned error",
			zap.String("tool", name),
			zap.String("output", text),
		)
	}
	return text, nil
}

// WaitForMentions blocks until another agent mentions this one, or the
// server-side timeout elapses. An empty string means no mention arrived.
func (c *Client) WaitForMentions(ctx context.Context, timeout time.Duration) (string, error) {
	return c.CallTool(ctx, "wait_for_mentions", map[string]any{
		"timeoutMs": timeout.Milliseconds(),
	})
}

// Close shuts down the MCP session.
func (c *Client) Close() error {
	return c.mcp.Close()
}

// filterTools keeps only the Coral coordination tools.
func filterTools(tools []mcp.Tool) []mcp.Tool {
	var kept []mcp.Tool
	for _, tool := range tools {
		if coordinationToolNames[tool.Name] {
			kept = append(kept, tool)
		}
	}
	return kept
}

// flattenContent joins the text parts of a tool result.
func flattenContent(content []mcp.Content) string {
	var parts []string
	for _, item := range content {
		if text, ok := item.(mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
