package tui

import (
	"fmt"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/state"
)

// pages in tab order.
var pageOrder = []state.Page{
	state.PageDashboard,
	state.PageTaskList,
	state.PageAnalytics,
	state.PageCalendar,
	state.PageSettings,
}

// --- Messages ---

// Render messages carry a fresh snapshot with the dispatcher's decision.
type renderBoardMsg struct {
	snap state.Snapshot
}

type showPageMsg struct {
	page state.Page
	snap state.Snapshot
}

type renderCurrentMsg struct {
	page state.Page
	snap state.Snapshot
}

type searchResultsMsg struct {
	tasks    []model.Task
	projects []model.Project
	query    string
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

func formatDue(dueDate string) string {
	if dueDate == "" {
		return "-"
	}
	return dueDate
}

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "!!!"
	case model.PriorityMedium:
		return "!!"
	default:
		return "!"
	}
}

func progressBar(percent, width int) string {
	if width < 2 {
		width = 2
	}
	filled := percent * width / 100
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return fmt.Sprintf("%s %3d%%", bar, percent)
}
