package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Column describes one spreadsheet column: the task field it renders, its
// header text and its width.
type Column struct {
	Field  string  `yaml:"field"`
	Header string  `yaml:"header"`
	Width  float64 `yaml:"width"`
}

// Layout is the report configuration. It can be declared in YAML so the
// exported columns can change without a rebuild.
type Layout struct {
	Sheet   string   `yaml:"sheet"`
	Title   string   `yaml:"title"`
	Columns []Column `yaml:"columns"`
}

// Task fields a layout may reference.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldDueDate       = "dueDate"
	FieldCompletedDate = "completedDate"
	FieldPriority      = "priority"
	FieldAssignee      = "assignee"
	FieldStatus        = "status"
	FieldCreatedAt     = "createdAt"
)

// DefaultLayout returns the built-in column set used when no YAML layout is
// configured.
func DefaultLayout() Layout {
	return Layout{
		Sheet: "Tarefas",
		Title: "Painel de Tarefas",
		Columns: []Column{
			{Field: FieldTitle, Header: "Título", Width: 30},
			{Field: FieldDescription, Header: "Descrição", Width: 40},
			{Field: FieldDueDate, Header: "Prazo", Width: 15},
			{Field: FieldPriority, Header: "Prioridade", Width: 12},
			{Field: FieldAssignee, Header: "Responsável", Width: 20},
			{Field: FieldStatus, Header: "Status", Width: 12},
		},
	}
}

// LoadLayout parses a YAML layout file. Missing sheet and title fall back to
// the defaults; an empty column list is rejected.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}

	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if len(layout.Columns) == 0 {
		return Layout{}, fmt.Errorf("layout %s declares no columns", path)
	}

	defaults := DefaultLayout()
	if layout.Sheet == "" {
		layout.Sheet = defaults.Sheet
	}
	if layout.Title == "" {
		layout.Title = defaults.Title
	}
	return layout, nil
}
