// Package repo implements task, project and calendar-note repositories over
// the storage backend. Every operation resolves to a Result envelope; faults
// are reported, never thrown past this layer.
package repo

// Failure messages double as the error taxonomy carried to callers. The
// envelope always has a non-empty Message on failure so the view has
// something to show.
const (
	MsgTaskNotFound     = "task not found"
	MsgProjectNotFound  = "project not found"
	MsgNoteNotFound     = "note not found"
	MsgAlreadyCompleted = "task is already completed"
	MsgTitleRequired    = "task title is required"
	MsgDueDateRequired  = "task due date is required"
	MsgInvalidImport    = "invalid import format: tasks must be an array"
)

// Result is the uniform envelope returned by every repository and service
// operation: {success, data, message}.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func ok[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func fail[T any](message string) Result[T] {
	var zero T
	return Result[T]{Success: false, Data: zero, Message: message}
}
