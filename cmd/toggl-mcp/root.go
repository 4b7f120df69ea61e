package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/louis030195/toggl-mcp/internal/config"
)

var version = "0.1.0"

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toggl-mcp",
	Short: "Expose Toggl Track timers, projects and weekly summaries as MCP tools.",
	Long: `toggl-mcp is a Model Context Protocol server for Toggl Track.

It serves eight tools (start, stop, current, today, projects, delete, weekly,
last_week) over stdio, and optionally over streamable HTTP.

Configuration is read from the environment (and a .env file if present):
  TOGGL_API_TOKEN      required
  TOGGL_WORKSPACE_ID   optional, defaults to the user's default workspace
  TOGGL_BASE_URL       default https://api.track.toggl.com
  TOGGL_HTTP_TIMEOUT   default 30s
  TOGGL_LOG_LEVEL      debug, info, warn or error
  TOGGL_HTTP_ADDR      optional listen address for HTTP transport
`,
	Example: `
  # Run as an MCP server over stdio (what MCP clients launch)
  toggl-mcp

  # Also serve streamable HTTP on :8080/mcp
  toggl-mcp serve --http :8080

  # Print the tool catalog
  toggl-mcp tools

  # Invoke one tool
  toggl-mcp call weekly '{"week_offset": -1}'
`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.Version = version
}

// newLogger logs to stderr; stdout carries JSON-RPC in stdio mode.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		logger := newLogger(cmd.ErrOrStderr(), slog.LevelInfo)
		logger.Error("failed to load config", slog.String("error", err.Error()))
		return cfg, logger, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.SlogLevel())
	slog.SetDefault(logger)
	return cfg, logger, nil
}
