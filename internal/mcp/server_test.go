package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/adjacent/internal/ipc"
)

type fakeDaemon struct {
	calls     []string
	focusErr  error
	statusErr error
}

func (f *fakeDaemon) Focus(_ context.Context, direction string, dryRun bool) (*ipc.DecisionData, error) {
	f.calls = append(f.calls, fmt.Sprintf("%s dry=%v", direction, dryRun))
	if f.focusErr != nil {
		return nil, f.focusErr
	}
	return &ipc.DecisionData{
		Direction:  direction,
		Policy:     "closest",
		Outcome:    map[bool]string{true: "selected", false: "activated"}[dryRun],
		Candidates: 1,
		Activated:  !dryRun,
		Target:     &ipc.WindowInfo{ID: 7, Title: "editor"},
	}, nil
}

func (f *fakeDaemon) ListWindows(context.Context) (*ipc.WindowsData, error) {
	return &ipc.WindowsData{
		FocusedID: 1,
		Windows: []ipc.WindowInfo{
			{ID: 1, Focused: true},
			{ID: 2},
			{ID: 3, Minimized: true},
		},
	}, nil
}

func (f *fakeDaemon) GetStatus(context.Context) (*ipc.StatusData, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &ipc.StatusData{DaemonRunning: true, SelectionPolicy: "closest", CommandsServed: 3}, nil
}

func TestFocusDirectionNormalizesDirection(t *testing.T) {
	d := &fakeDaemon{}
	s := newServer(d, zerolog.Nop())

	_, out, err := s.handleFocusDirection(context.Background(), nil, DirectionInput{Direction: "R"})
	require.NoError(t, err)
	assert.Equal(t, "right", out.Direction)
	assert.True(t, out.Activated)
	require.NotNil(t, out.Target)
	assert.Equal(t, uint32(7), out.Target.ID)

	_, out, err = s.handlePreviewDirection(context.Background(), nil, DirectionInput{Direction: "up"})
	require.NoError(t, err)
	assert.False(t, out.Activated)
	assert.Equal(t, "selected", out.Outcome)

	assert.Equal(t, []string{"right dry=false", "up dry=true"}, d.calls)
}

func TestFocusDirectionRejectsUnknownDirection(t *testing.T) {
	d := &fakeDaemon{}
	s := newServer(d, zerolog.Nop())

	_, _, err := s.handleFocusDirection(context.Background(), nil, DirectionInput{Direction: "north"})
	require.Error(t, err)
	assert.Empty(t, d.calls)
}

func TestFocusDirectionDaemonDown(t *testing.T) {
	s := newServer(&fakeDaemon{focusErr: ipc.ErrDaemonNotRunning}, zerolog.Nop())

	_, _, err := s.handleFocusDirection(context.Background(), nil, DirectionInput{Direction: "left"})
	require.ErrorIs(t, err, ipc.ErrDaemonNotRunning)
	assert.Contains(t, err.Error(), "adjacent daemon")
}

func TestListWindowsFiltersMinimized(t *testing.T) {
	s := newServer(&fakeDaemon{}, zerolog.Nop())

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	require.NoError(t, err)
	assert.Len(t, out.Windows, 3)

	exclude := false
	_, out, err = s.handleListWindows(context.Background(), nil, ListWindowsInput{IncludeMinimized: &exclude})
	require.NoError(t, err)
	assert.Len(t, out.Windows, 2)
	assert.Equal(t, uint32(1), out.FocusedID)
}

func TestDaemonStatus(t *testing.T) {
	s := newServer(&fakeDaemon{}, zerolog.Nop())
	_, out, err := s.handleDaemonStatus(context.Background(), nil, DaemonStatusInput{})
	require.NoError(t, err)
	assert.True(t, out.Running)
	assert.Equal(t, uint64(3), out.CommandsServed)

	s = newServer(&fakeDaemon{statusErr: ipc.ErrDaemonNotRunning}, zerolog.Nop())
	_, out, err = s.handleDaemonStatus(context.Background(), nil, DaemonStatusInput{})
	require.NoError(t, err)
	assert.False(t, out.Running)

	s = newServer(&fakeDaemon{statusErr: errors.New("timeout")}, zerolog.Nop())
	_, _, err = s.handleDaemonStatus(context.Background(), nil, DaemonStatusInput{})
	require.Error(t, err)
}

func TestToolsOverInMemoryTransport(t *testing.T) {
	ctx := context.Background()
	s := newServer(&fakeDaemon{}, zerolog.Nop())

	serverT, clientT := mcpsdk.NewInMemoryTransports()
	ss, err := s.mcpServer.Connect(ctx, serverT, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"daemon_status", "focus_direction", "list_windows", "preview_direction"}, names)

	res, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "preview_direction",
		Arguments: map[string]any{"direction": "left"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}
