package tools

import (
	"testing"
)

func TestCatalogListsEveryTool(t *testing.T) {
	want := []string{ToolStart, ToolStop, ToolCurrent, ToolToday, ToolProjects, ToolDelete, ToolWeekly, ToolLastWeek}
	got := Catalog()
	if len(got) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("tool %d: got %q, want %q", i, got[i].Name, name)
		}
		if got[i].Description == "" {
			t.Fatalf("tool %q has no description", name)
		}
	}
}

func TestCatalogIsACopy(t *testing.T) {
	c := Catalog()
	c[0].Name = "mutated"
	if _, ok := Lookup(ToolStart); !ok {
		t.Fatalf("mutating the returned catalog must not affect lookups")
	}
}

func TestDispatcherCoversCatalog(t *testing.T) {
	d := NewDispatcher(nil, nil)
	for _, tool := range d.Tools() {
		if d.handlers[tool.Name] == nil {
			t.Fatalf("no handler for %q", tool.Name)
		}
	}
}

func TestInputSchema(t *testing.T) {
	tool, ok := Lookup(ToolDelete)
	if !ok {
		t.Fatalf("delete not found")
	}
	schema := tool.InputSchema()
	if schema["type"] != "object" {
		t.Fatalf("unexpected schema type %v", schema["type"])
	}
	props := schema["properties"].(map[string]any)
	entryID := props["entry_id"].(map[string]any)
	if entryID["type"] != "integer" {
		t.Fatalf("unexpected entry_id type %v", entryID["type"])
	}
	required := schema["required"].([]string)
	if len(required) != 1 || required[0] != "entry_id" {
		t.Fatalf("unexpected required %v", required)
	}

	weekly, _ := Lookup(ToolWeekly)
	if req := weekly.InputSchema()["required"].([]string); len(req) != 0 {
		t.Fatalf("week_offset must be optional, got %v", req)
	}
}
