package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/adjacent/internal/logging"
	"github.com/1broseidon/adjacent/internal/mcp"
)

func newMCPCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol integration",
	}

	var logLevel string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start an MCP server on stdio",
		Long: `Start an MCP server on stdin/stdout exposing focus_direction,
preview_direction, list_windows and daemon_status. Requests are forwarded
to the running daemon. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := logging.New(logging.Options{Level: logLevel, Output: os.Stderr})
			if err != nil {
				return err
			}
			defer closeLog()

			client, err := flags.client()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return mcp.NewServer(client, logger).Run(ctx)
		},
	}
	serve.Flags().StringVar(&logLevel, "log-level", "warn", "log level for stderr")
	cmd.AddCommand(serve)
	return cmd
}
