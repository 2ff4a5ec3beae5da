package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskdeck/internal/model"
)

// taskListModel shows completed and archived tasks.
type taskListModel struct {
	cursor int
}

func newTaskListModel() taskListModel {
	return taskListModel{}
}

func (m taskListModel) update(msg tea.KeyMsg, tasks []model.Task) taskListModel {
	completed := model.CompletedTasks(tasks)
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(completed)-1 {
			m.cursor++
		}
	}
	return m
}

func (m taskListModel) view(a *App) string {
	completed := model.CompletedTasks(a.snap.Tasks)

	rows := []string{
		a.styles.title.Render(fmt.Sprintf("%s (%d)", a.tr("completed"), len(completed))),
		"",
	}

	if len(completed) == 0 {
		rows = append(rows, a.styles.muted.Render(a.tr("noTasks")))
		return a.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	for i, t := range completed {
		marker := "  "
		style := a.styles.normal
		if i == m.cursor {
			marker = "> "
			style = a.styles.selected
		}
		tag := string(t.Status)
		if t.Status == model.StatusTasklist {
			tag = "archived"
		}
		line := style.Render(marker+t.Title) + "  " +
			a.styles.muted.Render(tag+"  "+formatDue(t.DueDate))
		rows = append(rows, line)
	}

	return a.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
