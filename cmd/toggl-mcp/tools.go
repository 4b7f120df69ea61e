package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/louis030195/toggl-mcp/internal/app"
	tmcp "github.com/louis030195/toggl-mcp/internal/mcp"
	"github.com/louis030195/toggl-mcp/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printCatalog(cmd.OutOrStdout())
	},
}

var callCmd = &cobra.Command{
	Use:   "call <tool> [json-arguments]",
	Short: "Invoke one tool and print its text result",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCall,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
}

func printCatalog(w io.Writer) error {
	d := tools.NewDispatcher(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"tools": tmcp.ListTools(d)})
}

func parseCallArgs(raw string) (map[string]any, error) {
	args := map[string]any{}
	if raw == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	return args, nil
}

func runCall(cmd *cobra.Command, args []string) error {
	var raw string
	if len(args) == 2 {
		raw = args[1]
	}
	callArgs, err := parseCallArgs(raw)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	application := app.New(logger, cfg, version)

	text, err := application.Dispatcher().Dispatch(cmd.Context(), args[0], callArgs)
	if err != nil {
		var te *tools.Error
		if errors.As(err, &te) {
			return fmt.Errorf("%s (%d): %s", te.Protocol(), te.Protocol().Code(), te.Message)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
