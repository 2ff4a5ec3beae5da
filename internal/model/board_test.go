package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupByStatus(t *testing.T) {
	tasks := []Task{
		{ID: 1, Status: StatusTodo},
		{ID: 2, Status: StatusInProgress},
		{ID: 3, Status: StatusComplete},
		{ID: 4}, // no status yet
		{ID: 5, Status: StatusTasklist},
	}

	b := GroupByStatus(tasks)

	assert.Len(t, b.Todo, 2, "status-less task lands in todo")
	assert.Len(t, b.InProgress, 1)
	assert.Len(t, b.Complete, 1)
	assert.Equal(t, int64(4), b.Todo[1].ID)
}

func TestArchivedTasksOffBoardButListed(t *testing.T) {
	tasks := []Task{
		{ID: 1, Status: StatusTasklist},
		{ID: 2, Status: StatusTodo},
	}

	b := GroupByStatus(tasks)
	total := len(b.Todo) + len(b.InProgress) + len(b.Complete)
	assert.Equal(t, 1, total, "archived task must not appear on the board")

	listed := CompletedTasks(tasks)
	assert.Len(t, listed, 1)
	assert.Equal(t, int64(1), listed[0].ID)
}

func TestCompletedTasks(t *testing.T) {
	tasks := []Task{
		{ID: 1, Completed: true},
		{ID: 2, Status: StatusComplete},
		{ID: 3, Status: StatusTasklist},
		{ID: 4, Status: StatusInProgress},
	}

	got := CompletedTasks(tasks)
	assert.Len(t, got, 3)
}

func TestCheckProgress(t *testing.T) {
	assert.Equal(t, 0, CheckProgress(0))
	assert.Equal(t, 17, CheckProgress(1))
	assert.Equal(t, 33, CheckProgress(2))
	assert.Equal(t, 50, CheckProgress(3))
	assert.Equal(t, 67, CheckProgress(4))
	assert.Equal(t, 83, CheckProgress(5))
	assert.Equal(t, 100, CheckProgress(6))
	assert.Equal(t, 100, CheckProgress(9), "clamped above the threshold")
}

func TestDisplayProgress(t *testing.T) {
	assert.Equal(t, 100, DisplayProgress(Task{Completed: true, Progress: 40}), "completed wins")
	assert.Equal(t, 40, DisplayProgress(Task{Progress: 40, CheckCount: 1}), "explicit progress wins over checks")
	assert.Equal(t, 100, DisplayProgress(Task{Progress: 250}), "explicit progress is clamped")
	assert.Equal(t, 33, DisplayProgress(Task{CheckCount: 2}))
	assert.Equal(t, 0, DisplayProgress(Task{}))
}

func TestAverageProgress(t *testing.T) {
	assert.Equal(t, 0, AverageProgress(nil))
	assert.Equal(t, 0, AverageProgress([]Task{{Completed: true}}), "completed tasks are not active")

	tasks := []Task{
		{CheckCount: 3},        // 50
		{Progress: 30},         // 30
		{Completed: true},      // excluded
		{},                     // 0
	}
	// mean of 50, 30, 0
	assert.Equal(t, 27, AverageProgress(tasks))
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, StatusTodo.Valid())
	assert.True(t, StatusTasklist.Valid())
	assert.False(t, Status("done").Valid())
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority("urgent").Valid())
}
