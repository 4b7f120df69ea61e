package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	tg "github.com/louis030195/toggl-mcp/internal/adapter/toggl"
	"github.com/louis030195/toggl-mcp/internal/config"
	tmcp "github.com/louis030195/toggl-mcp/internal/mcp"
	"github.com/louis030195/toggl-mcp/internal/ports"
	"github.com/louis030195/toggl-mcp/internal/tools"
	"github.com/louis030195/toggl-mcp/internal/usecase"
)

// App wires adapters, use cases and the MCP server.
type App struct {
	log        *slog.Logger
	dispatcher *tools.Dispatcher
	mcp        *server.MCPServer
}

func New(log *slog.Logger, cfg config.Config, version string) *App {
	togglClient := tg.NewClient(cfg.Toggl.BaseURL, cfg.Toggl.APIToken, cfg.Toggl.WorkspaceID, cfg.Toggl.Timeout, log)
	return NewWithClient(log, togglClient, version)
}

// NewWithClient builds an App around any Toggl client.
func NewWithClient(log *slog.Logger, client ports.TogglClient, version string) *App {
	uc := &usecase.Tracker{
		Log:   log,
		Toggl: client,
	}
	d := tools.NewDispatcher(uc, log)
	return &App{log: log, dispatcher: d, mcp: tmcp.NewServer(d, version)}
}

func (a *App) Dispatcher() *tools.Dispatcher {
	return a.dispatcher
}

// ServeStdio speaks MCP over in/out until ctx is done or in is closed.
func (a *App) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(a.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(a.log.Handler(), slog.LevelError))
	a.log.Info("serving MCP over stdio")
	return stdio.Listen(ctx, in, out)
}
