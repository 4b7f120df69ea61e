package toggl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/louis030195/toggl-mcp/internal/domain"
	"github.com/louis030195/toggl-mcp/internal/ports"
)

const (
	DefaultBaseURL = "https://api.track.toggl.com"
	DefaultTimeout = 30 * time.Second

	createdWith = "toggl-mcp"
)

var (
	// ErrUnauthorized matches APIErrors for 401 and 403 responses.
	ErrUnauthorized = errors.New("toggl: unauthorized")
	// ErrNotFound matches APIErrors for 404 responses.
	ErrNotFound = errors.New("toggl: not found")
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("toggl: %s %s: unexpected status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("toggl: %s %s: unexpected status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Client implements ports.TogglClient using the Toggl Track API v9.
//
// The workspace is resolved once from /me unless pinned at construction and
// is never invalidated afterwards; a Client serves a single workspace.
type Client struct {
	baseURL   string
	apiToken  string
	http      *http.Client
	workspace atomic.Int64
	log       *slog.Logger
}

var _ ports.TogglClient = (*Client)(nil)

func NewClient(baseURL, apiToken string, workspaceID int64, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		http: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
	c.workspace.Store(workspaceID)
	return c
}

// Me fetches the authenticated user.
// Toggl v9: GET /api/v9/me
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var raw rawUser
	if err := c.do(ctx, http.MethodGet, "/api/v9/me", nil, nil, &raw); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		FullName:           raw.FullName,
		Email:              raw.Email,
		DefaultWorkspaceID: raw.DefaultWorkspaceID,
	}, nil
}

// WorkspaceID returns the workspace all writes go to, resolving it from the
// user's default workspace on first use.
func (c *Client) WorkspaceID(ctx context.Context) (int64, error) {
	if id := c.workspace.Load(); id != 0 {
		return id, nil
	}
	me, err := c.Me(ctx)
	if err != nil {
		return 0, err
	}
	if me.DefaultWorkspaceID == 0 {
		return 0, errors.New("toggl: user has no default workspace")
	}
	c.workspace.Store(me.DefaultWorkspaceID)
	c.log.Debug("resolved workspace", slog.Int64("workspace_id", me.DefaultWorkspaceID))
	return me.DefaultWorkspaceID, nil
}

// CurrentTimeEntry returns the running entry, or nil when nothing runs.
// Toggl v9: GET /api/v9/me/time_entries/current
func (c *Client) CurrentTimeEntry(ctx context.Context) (*domain.TimeEntry, error) {
	var raw *rawTimeEntry
	if err := c.do(ctx, http.MethodGet, "/api/v9/me/time_entries/current", nil, nil, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	e := raw.toDomain()
	return &e, nil
}

// ListTimeEntries fetches entries in [from, to].
// Toggl v9: GET /api/v9/me/time_entries?start_date=...&end_date=...&meta=true
func (c *Client) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	q := url.Values{}
	q.Set("start_date", from.Format(time.RFC3339))
	q.Set("end_date", to.Format(time.RFC3339))
	q.Set("meta", "true")

	var raw []rawTimeEntry
	if err := c.do(ctx, http.MethodGet, "/api/v9/me/time_entries", q, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.TimeEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// ListProjects fetches the projects of the resolved workspace.
// Toggl v9: GET /api/v9/workspaces/{id}/projects
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	ws, err := c.WorkspaceID(ctx)
	if err != nil {
		return nil, err
	}
	var raw []rawProject
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v9/workspaces/%d/projects", ws), nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		out = append(out, domain.Project{
			ID:          p.ID,
			WorkspaceID: p.WorkspaceID,
			Name:        p.Name,
			Active:      p.Active,
		})
	}
	return out, nil
}

// StartTimeEntry creates a running entry.
// Toggl v9: POST /api/v9/workspaces/{id}/time_entries with duration -1
func (c *Client) StartTimeEntry(ctx context.Context, params ports.StartParams) (domain.TimeEntry, error) {
	ws, err := c.WorkspaceID(ctx)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	body := rawNewTimeEntry{
		Description: params.Description,
		WorkspaceID: ws,
		ProjectID:   params.ProjectID,
		Start:       params.Start.UTC().Format(time.RFC3339),
		Duration:    -1,
		CreatedWith: createdWith,
	}
	var raw rawTimeEntry
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v9/workspaces/%d/time_entries", ws), nil, body, &raw); err != nil {
		return domain.TimeEntry{}, err
	}
	return raw.toDomain(), nil
}

// StopTimeEntry stops a running entry.
// Toggl v9: PATCH /api/v9/workspaces/{id}/time_entries/{entry}/stop
func (c *Client) StopTimeEntry(ctx context.Context, entryID int64) (domain.TimeEntry, error) {
	ws, err := c.WorkspaceID(ctx)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	var raw rawTimeEntry
	path := fmt.Sprintf("/api/v9/workspaces/%d/time_entries/%d/stop", ws, entryID)
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &raw); err != nil {
		return domain.TimeEntry{}, err
	}
	return raw.toDomain(), nil
}

// DeleteTimeEntry removes an entry. A missing id surfaces as ErrNotFound.
// Toggl v9: DELETE /api/v9/workspaces/{id}/time_entries/{entry}
func (c *Client) DeleteTimeEntry(ctx context.Context, entryID int64) error {
	ws, err := c.WorkspaceID(ctx)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/api/v9/workspaces/%d/time_entries/%d", ws, entryID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one authenticated request and decodes the JSON response into
// out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c.apiToken == "" {
		return errors.New("missing api token")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	// Basic auth: token:api_token
	auth := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", c.apiToken, "api_token")))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("toggl: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug("toggl request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("dur", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("toggl: decode %s %s: %w", method, path, err)
	}
	return nil
}
