package model

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the kanban state of a task. StatusTasklist is a terminal
// archival state: the task leaves the board entirely but still counts as
// completed on the Task List page.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusComplete   Status = "complete"
	StatusTasklist   Status = "tasklist"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusComplete, StatusTasklist:
		return true
	}
	return false
}

// Category is free-form beyond the built-in values.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryUrgent   Category = "urgent"
)

// CheckThreshold is the number of check increments that complete a task.
const CheckThreshold = 6

type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
	Completed   bool     `json:"completed"`
	CheckCount  int      `json:"checkCount"`
	Progress    int      `json:"progress"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type Project struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Completed   bool   `json:"completed"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// DeletedProject is a soft-deleted project kept on the state-level audit
// list. Deleted projects are never silently discarded.
type DeletedProject struct {
	Project
	DeletedAt string `json:"deletedAt"`
}

// CalendarNote is one note attached to a calendar day. The ID is a UUID so
// notes can be removed by identity rather than list position.
type CalendarNote struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Time string `json:"time,omitempty"`
}
