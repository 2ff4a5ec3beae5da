package model

import "math"

// Board holds the three kanban columns. Tasks with StatusTasklist are not
// part of any column.
type Board struct {
	Todo       []Task
	InProgress []Task
	Complete   []Task
}

// GroupByStatus splits tasks into kanban columns. A task without a status is
// treated as todo; archived (tasklist) tasks are excluded from the board.
func GroupByStatus(tasks []Task) Board {
	var b Board
	for _, t := range tasks {
		status := t.Status
		if status == "" {
			status = StatusTodo
		}
		switch status {
		case StatusTodo:
			b.Todo = append(b.Todo, t)
		case StatusInProgress:
			b.InProgress = append(b.InProgress, t)
		case StatusComplete:
			b.Complete = append(b.Complete, t)
		case StatusTasklist:
			// only visible on the Task List page
		}
	}
	return b
}

// CompletedTasks returns the tasks shown on the Task List page: completed
// ones plus anything in the complete or tasklist status.
func CompletedTasks(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Completed || t.Status == StatusComplete || t.Status == StatusTasklist {
			out = append(out, t)
		}
	}
	return out
}

// ActiveTasks returns tasks that have not been completed yet.
func ActiveTasks(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// DisplayProgress resolves the displayed percentage for a task. A completed
// task is always 100. An explicitly set Progress field wins over the
// checkCount derivation, which maps CheckThreshold increments to 100%.
func DisplayProgress(t Task) int {
	if t.Completed {
		return 100
	}
	if t.Progress > 0 {
		return min(t.Progress, 100)
	}
	if t.CheckCount > 0 {
		return CheckProgress(t.CheckCount)
	}
	return 0
}

// CheckProgress converts a check count to a percentage, clamped to 100.
func CheckProgress(checkCount int) int {
	p := int(math.Round(float64(checkCount) / CheckThreshold * 100))
	return min(p, 100)
}

// AverageProgress is the dashboard progress-ring value: the mean of the
// active tasks' displayed progress, 0 when there are no active tasks.
func AverageProgress(tasks []Task) int {
	active := ActiveTasks(tasks)
	if len(active) == 0 {
		return 0
	}
	total := 0
	for _, t := range active {
		total += DisplayProgress(t)
	}
	return int(math.Round(float64(total) / float64(len(active))))
}
