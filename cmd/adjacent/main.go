package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/1broseidon/adjacent/internal/config"
	"github.com/1broseidon/adjacent/internal/ipc"
	"github.com/1broseidon/adjacent/internal/runtimepath"
)

const version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	socketPath string
	timeout    time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "adjacent",
		Short: "Directional window focus for X11 desktops",
		Long: `adjacent moves keyboard focus to the nearest window to the left, right,
above or below the focused one.

Run "adjacent daemon" once per session to bind the hotkeys; the other
commands talk to the running daemon over a unix socket.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file path (default: ~/.config/adjacent/config.yaml)")
	root.PersistentFlags().StringVar(&flags.socketPath, "socket", "", "daemon socket path (default: $XDG_RUNTIME_DIR/adjacent.sock)")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 5*time.Second, "timeout for daemon requests")

	root.AddCommand(
		newDaemonCmd(flags),
		newFocusCmd(flags),
		newWindowsCmd(flags),
		newStatusCmd(flags),
		newReloadCmd(flags),
		newConfigCmd(flags),
		newMCPCmd(flags),
	)
	return root
}

func (f *globalFlags) resolveConfigPath() (string, error) {
	if f.configPath != "" {
		return f.configPath, nil
	}
	return config.DefaultConfigPath()
}

func (f *globalFlags) resolveSocketPath() (string, error) {
	if f.socketPath != "" {
		return f.socketPath, nil
	}
	path, err := runtimepath.SocketPath()
	if err != nil {
		return "", fmt.Errorf("resolve socket path: %w", err)
	}
	return path, nil
}

func (f *globalFlags) client() (*ipc.Client, error) {
	if f.socketPath == "" {
		if _, err := runtimepath.SocketPath(); err != nil {
			return nil, fmt.Errorf("resolve socket path: %w", err)
		}
		return ipc.NewClient(), nil
	}
	return ipc.NewClientWithSocket(f.socketPath), nil
}

func (f *globalFlags) loadConfig() (*config.LoadResult, error) {
	if f.configPath == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(f.configPath)
}
