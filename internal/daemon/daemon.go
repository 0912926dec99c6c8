// Package daemon runs the long-lived hotkey service: it owns the key grabs,
// the IPC listener and the config watcher, and routes every directional
// command through one Selector.
package daemon

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/1broseidon/adjacent/internal/adjacent"
	"github.com/1broseidon/adjacent/internal/config"
	"github.com/1broseidon/adjacent/internal/ipc"
	"github.com/1broseidon/adjacent/internal/logging"
	"github.com/1broseidon/adjacent/internal/platform"
)

// KeyBinder grabs the direction chords.
type KeyBinder interface {
	Bind(bindings []config.Binding, handle func(adjacent.Direction)) error
	Unbind()
	Bound() []config.Binding
}

// Options configures a Daemon.
type Options struct {
	Provider   *config.FileProvider
	Backend    platform.Backend
	SocketPath string
	// Keys is nil when global hotkeys are not wanted; IPC still works.
	Keys   KeyBinder
	Logger zerolog.Logger
	// DisableWatch turns off reloading on config file edits.
	DisableWatch bool
}

// Daemon is the enable/disable lifecycle around a Selector.
type Daemon struct {
	opts     Options
	selector *adjacent.Selector
	logger   zerolog.Logger
	commands atomic.Uint64

	// cmdMu serializes focus changes from hotkeys and IPC.
	cmdMu sync.Mutex

	// keysMu guards active and the key grabs.
	keysMu sync.Mutex
	active bool

	mu      sync.Mutex
	enabled bool
	started time.Time
	runCtx  context.Context
	cancel  context.CancelFunc
	server  *ipc.Server
	watcher *config.Watcher
	done    chan struct{}
	runErr  error
}

func New(opts Options) (*Daemon, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("daemon: config provider is required")
	}
	if opts.Backend == nil {
		return nil, fmt.Errorf("daemon: window backend is required")
	}
	if opts.SocketPath == "" {
		return nil, fmt.Errorf("daemon: socket path is required")
	}

	return &Daemon{
		opts:     opts,
		selector: adjacent.NewSelector(opts.Backend, opts.Backend, opts.Provider),
		logger:   opts.Logger.With().Str("component", "daemon").Logger(),
	}, nil
}

// Enable binds the hotkeys and starts the IPC server and config watcher.
// It is a no-op when already enabled.
func (d *Daemon) Enable(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enabled {
		return nil
	}

	runCtx, cancel := context.WithCancel(logging.WithContext(ctx, d.opts.Logger))

	d.keysMu.Lock()
	d.active = true
	d.keysMu.Unlock()
	d.runCtx = runCtx
	if err := d.rebindKeys(); err != nil {
		d.logger.Warn().Err(err).Msg("some hotkeys could not be bound")
	}

	server := ipc.NewServer(d.opts.SocketPath, d, d.opts.Logger)
	if err := server.Listen(); err != nil {
		d.deactivateKeys()
		cancel()
		return err
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return server.Serve(gctx)
	})

	var watcher *config.Watcher
	if !d.opts.DisableWatch {
		reloads := make(chan string, 1)
		w, err := config.NewWatcher(d.opts.Provider.Path(), d.opts.Logger)
		if err != nil {
			d.logger.Warn().Err(err).Msg("config file will not be watched")
		} else {
			watcher = w
			g.Go(func() error {
				return w.Run(gctx, reloads)
			})
			g.Go(func() error {
				d.reloadLoop(gctx, reloads)
				return nil
			})
		}
	}

	done := make(chan struct{})
	go func() {
		err := g.Wait()
		d.mu.Lock()
		d.runErr = err
		d.mu.Unlock()
		close(done)
	}()

	d.enabled = true
	d.started = time.Now()
	d.cancel = cancel
	d.server = server
	d.watcher = watcher
	d.done = done
	d.runErr = nil

	d.logger.Info().
		Str("socket", d.opts.SocketPath).
		Str("config", d.opts.Provider.Path()).
		Msg("daemon enabled")
	return nil
}

// Disable releases every hotkey, stops the watcher and closes the listener.
func (d *Daemon) Disable() error {
	d.mu.Lock()
	if !d.enabled {
		d.mu.Unlock()
		return nil
	}
	d.enabled = false
	cancel, server, watcher, done := d.cancel, d.server, d.watcher, d.done
	d.mu.Unlock()

	d.deactivateKeys()
	cancel()
	server.Close()
	<-done
	if watcher != nil {
		_ = watcher.Close()
	}

	d.mu.Lock()
	err := d.runErr
	d.mu.Unlock()

	d.logger.Info().Msg("daemon disabled")
	return err
}

// Run enables the daemon and blocks until ctx is done or a component fails.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Enable(ctx); err != nil {
		return err
	}

	d.mu.Lock()
	done := d.done
	d.mu.Unlock()

	select {
	case <-ctx.Done():
	case <-done:
	}
	return d.Disable()
}

// Rebind releases all hotkeys and binds them again from the current file.
func (d *Daemon) Rebind() error {
	return d.rebindKeys()
}

func (d *Daemon) rebindKeys() error {
	d.keysMu.Lock()
	defer d.keysMu.Unlock()
	if !d.active || d.opts.Keys == nil {
		return nil
	}

	cfg := d.opts.Provider.Config()
	for _, w := range cfg.Warnings() {
		d.logger.Warn().Msg(w)
	}

	d.opts.Keys.Unbind()
	return d.opts.Keys.Bind(cfg.Bindings(), d.handleHotkey)
}

func (d *Daemon) deactivateKeys() {
	d.keysMu.Lock()
	defer d.keysMu.Unlock()
	d.active = false
	if d.opts.Keys != nil {
		d.opts.Keys.Unbind()
	}
}

func (d *Daemon) reloadLoop(ctx context.Context, reloads <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-reloads:
			d.logger.Info().Str("reason", reason).Msg("rebinding hotkeys")
			if err := d.rebindKeys(); err != nil {
				d.logger.Warn().Err(err).Msg("rebind failed")
			}
		}
	}
}

func (d *Daemon) handleHotkey(dir adjacent.Direction) {
	d.mu.Lock()
	ctx := d.runCtx
	d.mu.Unlock()
	if ctx == nil {
		ctx = logging.WithContext(context.Background(), d.opts.Logger)
	}
	ctx = logging.WithComponent(ctx, "hotkey")

	decision, err := d.Focus(ctx, dir, false)
	if err != nil {
		d.logger.Warn().Err(err).Stringer("direction", dir).Msg("directional focus failed")
		return
	}
	d.logger.Debug().
		Stringer("direction", dir).
		Stringer("outcome", decision.Outcome).
		Msg("hotkey handled")
}

// Focus runs one directional command. With dryRun nothing is activated.
func (d *Daemon) Focus(ctx context.Context, dir adjacent.Direction, dryRun bool) (adjacent.Decision, error) {
	d.commands.Add(1)

	d.cmdMu.Lock()
	defer d.cmdMu.Unlock()

	if dryRun {
		return d.selector.Select(ctx, dir), nil
	}
	return d.selector.OnDirectionalCommand(ctx, dir)
}

// ListWindows reports the current workspace, topmost first.
func (d *Daemon) ListWindows(ctx context.Context) (*ipc.WindowsData, error) {
	snap, err := d.selector.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	data := &ipc.WindowsData{
		Windows: make([]ipc.WindowInfo, 0, len(snap.Stack)+len(snap.Minimized)),
	}
	if snap.HasFocus {
		data.FocusedID = uint32(snap.Focused.ID)
	}
	for _, entry := range snap.Stack {
		info := ipc.NewWindowInfo(entry.Window)
		corners := entry.Corners
		info.Corners = &corners
		info.Focused = snap.HasFocus && entry.Window.ID == snap.Focused.ID
		data.Windows = append(data.Windows, info)
	}
	for _, w := range snap.Minimized {
		info := ipc.NewWindowInfo(w)
		info.Focused = snap.HasFocus && w.ID == snap.Focused.ID
		data.Windows = append(data.Windows, info)
	}

	if displays, err := d.opts.Backend.Displays(); err == nil {
		for _, disp := range displays {
			data.Monitors = append(data.Monitors, ipc.MonitorInfo{
				ID:     disp.ID,
				Name:   disp.Name,
				X:      disp.Bounds.X,
				Y:      disp.Bounds.Y,
				Width:  disp.Bounds.Width,
				Height: disp.Bounds.Height,
			})
		}
	}
	return data, nil
}

// Status reports uptime, bindings and the active policy.
func (d *Daemon) Status() ipc.StatusData {
	cfg := d.opts.Provider.Config()

	d.mu.Lock()
	running, started := d.enabled, d.started
	d.mu.Unlock()

	var bindings []config.Binding
	if d.opts.Keys != nil {
		bindings = d.opts.Keys.Bound()
	}
	bound := make(map[string]string, len(bindings))
	for _, b := range bindings {
		bound[b.Direction.String()] = b.Chord
	}

	status := ipc.StatusData{
		DaemonRunning:   running,
		SelectionPolicy: cfg.SelectionConfig().Policy.String(),
		RecencySource:   string(cfg.RecencySource),
		Bindings:        bound,
		CommandsServed:  d.commands.Load(),
		ConfigPath:      d.opts.Provider.Path(),
	}
	if running {
		status.UptimeSeconds = int64(time.Since(started).Seconds())
	}
	return status
}

// Reload validates the config file and rebinds the hotkeys. An invalid file
// is reported to the caller and leaves the current bindings in place.
func (d *Daemon) Reload(ctx context.Context) error {
	if _, err := config.LoadFromPath(d.opts.Provider.Path()); err != nil {
		return err
	}
	if err := d.rebindKeys(); err != nil {
		return fmt.Errorf("rebind hotkeys: %s", strings.ReplaceAll(err.Error(), "\n", "; "))
	}
	return nil
}

var _ ipc.Handler = (*Daemon)(nil)
