package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/adjacent/internal/config"
	"github.com/1broseidon/adjacent/internal/daemon"
	"github.com/1broseidon/adjacent/internal/hotkeys"
	"github.com/1broseidon/adjacent/internal/logging"
	"github.com/1broseidon/adjacent/internal/platform"
)

func newDaemonCmd(flags *globalFlags) *cobra.Command {
	var logLevel string
	var noHotkeys bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the hotkey daemon (foreground)",
		Long: `Bind the direction hotkeys and serve focus requests until interrupted.

The config file is watched; edits to key settings rebind the hotkeys.
SIGHUP forces a rebind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, flags, logLevel, noHotkeys)
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "override log_level from the config file")
	cmd.Flags().BoolVar(&noHotkeys, "no-hotkeys", false, "serve IPC only, without grabbing keys")
	return cmd
}

func runDaemon(cmd *cobra.Command, flags *globalFlags, logLevel string, noHotkeys bool) error {
	path, err := flags.resolveConfigPath()
	if err != nil {
		return err
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config

	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	logger, closeLog, err := logging.New(logging.Options{
		Level:      logLevel,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	for _, w := range cfg.Warnings() {
		logger.Warn().Msg(w)
	}

	if cfg.Display != "" {
		os.Setenv("DISPLAY", cfg.Display)
	}
	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}

	provider := config.NewFileProvider(path, cfg, logger)
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display, platform.Options{
		UseUserTime: func() bool {
			return provider.Config().RecencySource == config.RecencyUserTime
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer backend.Disconnect()

	var keys daemon.KeyBinder
	if !noHotkeys {
		dispatcher, err := hotkeys.NewDispatcher(backend, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("global hotkeys disabled")
		} else {
			keys = dispatcher
		}
	}

	socketPath, err := flags.resolveSocketPath()
	if err != nil {
		return err
	}

	d, err := daemon.New(daemon.Options{
		Provider:   provider,
		Backend:    backend,
		SocketPath: socketPath,
		Keys:       keys,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithContext(ctx, logger)

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				logger.Info().Msg("SIGHUP received, rebinding hotkeys")
				if err := d.Rebind(); err != nil {
					logger.Warn().Err(err).Msg("rebind failed")
				}
			}
		}
	}()

	go backend.EventLoop()
	defer backend.StopEventLoop()

	logger.Info().Str("config", path).Str("version", version).Msg("adjacent daemon starting")
	return d.Run(ctx)
}
