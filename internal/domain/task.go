package domain

import (
	"strings"
	"time"
)

// Priority and status values are stored exactly as the dashboard client sends
// them (Portuguese labels, accents included).
type Priority string

const (
	PriorityLow    Priority = "baixa"
	PriorityMedium Priority = "média"
	PriorityHigh   Priority = "alta"
)

type Status string

const (
	StatusPending   Status = "pendente"
	StatusCompleted Status = "concluída"
)

// FilterAll is the sentinel meaning "do not filter on this field".
const FilterAll = "todas"

func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusCompleted
}

// Task is a unit of tracked work. Owner is immutable after creation and
// scopes every read and mutation. CompletedDate is set iff Status is
// concluída. The JSON field for Owner is "user" for compatibility with the
// existing dashboard client.
type Task struct {
	ID            string     `datastore:"-" json:"id"`
	Title         string     `datastore:"title" json:"title"`
	Description   string     `datastore:"description,noindex" json:"description"`
	DueDate       time.Time  `datastore:"due_date" json:"dueDate"`
	CompletedDate *time.Time `datastore:"completed_date,omitempty" json:"completedDate,omitempty"`
	Priority      Priority   `datastore:"priority" json:"priority"`
	Assignee      string     `datastore:"assignee" json:"assignee"`
	Status        Status     `datastore:"status" json:"status"`
	Owner         string     `datastore:"owner" json:"user"`
	CreatedAt     time.Time  `datastore:"created_at" json:"createdAt"`
}

// MatchesSearch reports whether term occurs, case-insensitively, in the
// task's title, description or assignee. An empty term matches everything.
func (t *Task) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term) ||
		strings.Contains(strings.ToLower(t.Assignee), term)
}

// TaskFilter narrows a list query. Empty or sentinel ("todas") values mean
// the corresponding clause is omitted. DueFrom/DueTo are independent bounds.
// Search is applied after retrieval (or through the search index); it is not
// part of the store predicate.
type TaskFilter struct {
	Status   Status
	Priority Priority
	DueFrom  *time.Time
	DueTo    *time.Time
	Search   string
}

// HasStatus reports whether the filter carries an effective status clause.
func (f TaskFilter) HasStatus() bool {
	return f.Status != "" && string(f.Status) != FilterAll
}

func (f TaskFilter) HasPriority() bool {
	return f.Priority != "" && string(f.Priority) != FilterAll
}

// TaskInput carries the client-supplied fields for task creation. Status is
// not accepted: new tasks always start pending.
type TaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Assignee    string    `json:"assignee"`
}

// TaskUpdate is a partial update. Nil fields retain their prior value.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *Priority  `json:"priority"`
	Assignee    *string    `json:"assignee"`
	Status      *Status    `json:"status"`
}

// PriorityBreakdown mirrors the summary shape the dashboard expects.
type PriorityBreakdown struct {
	High   int `json:"alta"`
	Medium int `json:"média"`
	Low    int `json:"baixa"`
}

// TaskStats is the owner-scoped statistics summary. The counts come from
// independent queries and carry no cross-field consistency guarantee.
type TaskStats struct {
	TotalTasks     int               `json:"totalTasks"`
	CompletedTasks int               `json:"completedTasks"`
	PendingTasks   int               `json:"pendingTasks"`
	Priorities     PriorityBreakdown `json:"priorities"`
	UpcomingTasks  []Task            `json:"upcomingTasks"`
}

// UpcomingWindow is how far ahead the statistics summary looks for soon-due
// pending tasks. Bounds are inclusive.
const UpcomingWindow = 7 * 24 * time.Hour
