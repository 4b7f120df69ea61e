// Package tools exposes the time tracking operations as named tools: a
// static catalog, argument validation, and a dispatcher rendering text.
package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/louis030195/toggl-mcp/internal/usecase"
)

type handlerFunc func(ctx context.Context, t Tool, args map[string]any) (string, error)

// Dispatcher routes a tool name and its arguments to the matching operation.
// It keeps no state between calls and may be used concurrently.
type Dispatcher struct {
	tracker  *usecase.Tracker
	log      *slog.Logger
	validate *validator.Validate
	handlers map[string]handlerFunc
}

func NewDispatcher(tracker *usecase.Tracker, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		tracker:  tracker,
		log:      log,
		validate: newValidator(),
	}
	d.handlers = map[string]handlerFunc{
		ToolStart:    d.start,
		ToolStop:     d.stop,
		ToolCurrent:  d.current,
		ToolToday:    d.today,
		ToolProjects: d.projects,
		ToolDelete:   d.delete,
		ToolWeekly:   d.weekly,
		ToolLastWeek: d.lastWeek,
	}
	return d
}

// Tools returns the catalog served by this dispatcher.
func (d *Dispatcher) Tools() []Tool {
	return Catalog()
}

// Dispatch runs one tool. Any failure is returned as an *Error.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	callID := uuid.New().String()
	log := d.log.With(slog.String("tool", name), slog.String("call_id", callID))
	start := time.Now()

	t, ok := Lookup(name)
	h := d.handlers[name]
	if !ok || h == nil {
		err := unknownOperation(name)
		log.Warn("tool call rejected", slog.String("kind", string(err.Kind)))
		return "", err
	}
	if args == nil {
		args = map[string]any{}
	}

	text, err := h(ctx, t, args)
	if err != nil {
		te := classify(err)
		log.Warn("tool call failed",
			slog.String("kind", string(te.Kind)),
			slog.String("error", te.Message),
			slog.Duration("dur", time.Since(start)),
		)
		return "", te
	}
	log.Info("tool call completed", slog.Duration("dur", time.Since(start)))
	return text, nil
}

type startArgs struct {
	Description string `json:"description" validate:"required,max=3000"`
	ProjectName string `json:"project_name"`
}

type deleteArgs struct {
	EntryID int64 `json:"entry_id" validate:"gt=0"`
}

type weeklyArgs struct {
	WeekOffset int `json:"week_offset"`
}

func (d *Dispatcher) start(ctx context.Context, t Tool, args map[string]any) (string, error) {
	var in startArgs
	if err := d.bind(t, args, &in); err != nil {
		return "", err
	}
	res, err := d.tracker.Start(ctx, in.Description, in.ProjectName)
	if err != nil {
		return "", err
	}
	return renderStarted(res), nil
}

func (d *Dispatcher) stop(ctx context.Context, t Tool, args map[string]any) (string, error) {
	if err := d.bind(t, args, nil); err != nil {
		return "", err
	}
	stopped, err := d.tracker.Stop(ctx)
	if err != nil {
		return "", err
	}
	return renderStopped(stopped, d.tracker.Clock()), nil
}

func (d *Dispatcher) current(ctx context.Context, t Tool, args map[string]any) (string, error) {
	if err := d.bind(t, args, nil); err != nil {
		return "", err
	}
	cur, err := d.tracker.Current(ctx)
	if err != nil {
		return "", err
	}
	return renderCurrent(cur, d.tracker.Clock()), nil
}

func (d *Dispatcher) today(ctx context.Context, t Tool, args map[string]any) (string, error) {
	if err := d.bind(t, args, nil); err != nil {
		return "", err
	}
	entries, err := d.tracker.Today(ctx)
	if err != nil {
		return "", err
	}
	return renderToday(entries, d.tracker.Clock()), nil
}

func (d *Dispatcher) projects(ctx context.Context, t Tool, args map[string]any) (string, error) {
	if err := d.bind(t, args, nil); err != nil {
		return "", err
	}
	projects, err := d.tracker.Projects(ctx)
	if err != nil {
		return "", err
	}
	return renderProjects(projects), nil
}

func (d *Dispatcher) delete(ctx context.Context, t Tool, args map[string]any) (string, error) {
	var in deleteArgs
	if err := d.bind(t, args, &in); err != nil {
		return "", err
	}
	if err := d.tracker.Delete(ctx, in.EntryID); err != nil {
		return "", err
	}
	return renderDeleted(in.EntryID), nil
}

func (d *Dispatcher) weekly(ctx context.Context, t Tool, args map[string]any) (string, error) {
	var in weeklyArgs
	if err := d.bind(t, args, &in); err != nil {
		return "", err
	}
	return d.summarizeWeek(ctx, in.WeekOffset)
}

func (d *Dispatcher) lastWeek(ctx context.Context, t Tool, args map[string]any) (string, error) {
	if err := d.bind(t, args, nil); err != nil {
		return "", err
	}
	return d.summarizeWeek(ctx, -1)
}

func (d *Dispatcher) summarizeWeek(ctx context.Context, offset int) (string, error) {
	summary, err := d.tracker.Weekly(ctx, offset)
	if err != nil {
		return "", err
	}
	return renderWeekly(summary), nil
}
