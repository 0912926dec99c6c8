package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/1broseidon/adjacent/internal/ipc"
)

const (
	ServerName    = "adjacent"
	ServerVersion = "0.1.0"
)

// daemonClient is the part of ipc.Client the tools need.
type daemonClient interface {
	Focus(ctx context.Context, direction string, dryRun bool) (*ipc.DecisionData, error)
	ListWindows(ctx context.Context) (*ipc.WindowsData, error)
	GetStatus(ctx context.Context) (*ipc.StatusData, error)
}

// Server is the MCP server exposing directional focus to agents. Every tool
// forwards to the running daemon over IPC.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    daemonClient
	logger    zerolog.Logger
}

// NewServer creates an MCP server that talks to the daemon through client.
func NewServer(client *ipc.Client, logger zerolog.Logger) *Server {
	return newServer(client, logger)
}

func newServer(client daemonClient, logger zerolog.Logger) *Server {
	s := &Server{
		daemon: client,
		logger: logger.With().Str("component", "mcp").Logger(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info().Msg("serving MCP on stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_direction",
		Description: "Move keyboard focus to the adjacent window in a direction (left, right, up or down) on the current workspace. Returns the decision, including which window was activated. Nothing changes when no window lies in that direction.",
	}, s.handleFocusDirection)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "preview_direction",
		Description: "Report which window focus_direction would activate for a direction, without changing focus.",
	}, s.handlePreviewDirection)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows on the current workspace, topmost first, with geometry, monitor, focus state and which corners are visible. Minimized windows are listed last.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "daemon_status",
		Description: "Report whether the adjacent daemon is running, its selection policy, bound hotkeys and uptime.",
	}, s.handleDaemonStatus)
}
