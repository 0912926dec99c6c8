package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/adjacent/internal/adjacent"
	"github.com/1broseidon/adjacent/internal/ipc"
)

func (s *Server) handleFocusDirection(ctx context.Context, _ *mcpsdk.CallToolRequest, args DirectionInput) (*mcpsdk.CallToolResult, DirectionOutput, error) {
	return s.direction(ctx, "focus_direction", args, false)
}

func (s *Server) handlePreviewDirection(ctx context.Context, _ *mcpsdk.CallToolRequest, args DirectionInput) (*mcpsdk.CallToolResult, DirectionOutput, error) {
	return s.direction(ctx, "preview_direction", args, true)
}

func (s *Server) direction(ctx context.Context, tool string, args DirectionInput, dryRun bool) (*mcpsdk.CallToolResult, DirectionOutput, error) {
	dir, err := adjacent.ParseDirection(args.Direction)
	if err != nil {
		return nil, DirectionOutput{}, err
	}

	data, err := s.daemon.Focus(ctx, dir.String(), dryRun)
	if err != nil {
		return nil, DirectionOutput{}, daemonError(err)
	}

	s.logger.Info().
		Str("tool", tool).
		Str("direction", data.Direction).
		Str("outcome", data.Outcome).
		Int("candidates", data.Candidates).
		Msg("directional request")

	return nil, DirectionOutput{
		Direction:  data.Direction,
		Policy:     data.Policy,
		Outcome:    data.Outcome,
		Candidates: data.Candidates,
		Activated:  data.Activated,
		Focused:    data.Focused,
		Target:     data.Target,
	}, nil
}

func (s *Server) handleListWindows(ctx context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.daemon.ListWindows(ctx)
	if err != nil {
		return nil, ListWindowsOutput{}, daemonError(err)
	}

	includeMinimized := args.IncludeMinimized == nil || *args.IncludeMinimized
	windows := make([]ipc.WindowInfo, 0, len(data.Windows))
	for _, w := range data.Windows {
		if w.Minimized && !includeMinimized {
			continue
		}
		windows = append(windows, w)
	}

	return nil, ListWindowsOutput{
		FocusedID: data.FocusedID,
		Windows:   windows,
		Monitors:  data.Monitors,
	}, nil
}

func (s *Server) handleDaemonStatus(ctx context.Context, _ *mcpsdk.CallToolRequest, _ DaemonStatusInput) (*mcpsdk.CallToolResult, DaemonStatusOutput, error) {
	status, err := s.daemon.GetStatus(ctx)
	if errors.Is(err, ipc.ErrDaemonNotRunning) {
		return nil, DaemonStatusOutput{Running: false}, nil
	}
	if err != nil {
		return nil, DaemonStatusOutput{}, err
	}

	return nil, DaemonStatusOutput{
		Running:         status.DaemonRunning,
		UptimeSeconds:   status.UptimeSeconds,
		SelectionPolicy: status.SelectionPolicy,
		RecencySource:   status.RecencySource,
		Bindings:        status.Bindings,
		CommandsServed:  status.CommandsServed,
	}, nil
}

func daemonError(err error) error {
	if errors.Is(err, ipc.ErrDaemonNotRunning) {
		return fmt.Errorf("%w: start it with `adjacent daemon`", err)
	}
	return err
}
