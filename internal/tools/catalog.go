package tools

// ArgType is the JSON type an argument must have.
type ArgType string

const (
	TypeString  ArgType = "string"
	TypeInteger ArgType = "integer"
)

// Arg declares one argument of a tool.
type Arg struct {
	Name        string
	Type        ArgType
	Required    bool
	Description string
}

// Tool is a catalog entry: a named operation and its argument shape.
type Tool struct {
	Name        string
	Description string
	Args        []Arg
}

const (
	ToolStart    = "start"
	ToolStop     = "stop"
	ToolCurrent  = "current"
	ToolToday    = "today"
	ToolProjects = "projects"
	ToolDelete   = "delete"
	ToolWeekly   = "weekly"
	ToolLastWeek = "last_week"
)

var catalog = []Tool{
	{
		Name:        ToolStart,
		Description: "Start a new time entry. Optionally file it under a project by name (case-insensitive); an unknown project name starts the timer without a project.",
		Args: []Arg{
			{Name: "description", Type: TypeString, Required: true, Description: "What you are working on"},
			{Name: "project_name", Type: TypeString, Description: "Project name to track against"},
		},
	},
	{
		Name:        ToolStop,
		Description: "Stop the currently running time entry.",
	},
	{
		Name:        ToolCurrent,
		Description: "Show the currently running time entry and how long it has been running.",
	},
	{
		Name:        ToolToday,
		Description: "List today's time entries with durations and a total.",
	},
	{
		Name:        ToolProjects,
		Description: "List all projects in the workspace.",
	},
	{
		Name:        ToolDelete,
		Description: "Delete a time entry by ID.",
		Args: []Arg{
			{Name: "entry_id", Type: TypeInteger, Required: true, Description: "ID of the time entry to delete"},
		},
	},
	{
		Name:        ToolWeekly,
		Description: "Summarize a week (Monday to Sunday): total hours, daily breakdown with entries, and hours per project.",
		Args: []Arg{
			{Name: "week_offset", Type: TypeInteger, Description: "0 for this week, -1 for last week, and so on (default: 0)"},
		},
	},
	{
		Name:        ToolLastWeek,
		Description: "Summarize last week (Monday to Sunday). Same as weekly with week_offset -1.",
	},
}

// Catalog returns every supported tool in a stable order.
func Catalog() []Tool {
	out := make([]Tool, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a tool by name.
func Lookup(name string) (Tool, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// InputSchema renders the argument shape as a JSON-Schema object.
func (t Tool) InputSchema() map[string]any {
	props := make(map[string]any, len(t.Args))
	required := []string{}
	for _, a := range t.Args {
		props[a.Name] = map[string]any{
			"type":        string(a.Type),
			"description": a.Description,
		}
		if a.Required {
			required = append(required, a.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}
