package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/repo"
)

// boardModel is the kanban dashboard: three status columns plus the
// create-task form.
type boardModel struct {
	col int
	row int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	fTitle    *string
	fDesc     *string
	fDue      *string
	fPriority *string
	fCategory *string
}

func newBoardModel() boardModel {
	title, desc, due, prio, cat := "", "", "", "", ""
	return boardModel{
		fTitle:    &title,
		fDesc:     &desc,
		fDue:      &due,
		fPriority: &prio,
		fCategory: &cat,
	}
}

func (b boardModel) columns(tasks []model.Task) [][]model.Task {
	board := model.GroupByStatus(tasks)
	return [][]model.Task{board.Todo, board.InProgress, board.Complete}
}

func (b boardModel) selected(tasks []model.Task) *model.Task {
	cols := b.columns(tasks)
	if b.col >= len(cols) || b.row >= len(cols[b.col]) {
		return nil
	}
	t := cols[b.col][b.row]
	return &t
}

func (b *boardModel) clampCursor(tasks []model.Task) {
	cols := b.columns(tasks)
	if b.col >= len(cols) {
		b.col = len(cols) - 1
	}
	if b.col < 0 {
		b.col = 0
	}
	if n := len(cols[b.col]); b.row >= n {
		b.row = max(0, n-1)
	}
}

func (b boardModel) update(msg tea.KeyMsg, a *App) (boardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		if b.col > 0 {
			b.col--
			b.clampCursor(a.snap.Tasks)
		}
	case key.Matches(msg, keys.Right):
		if b.col < 2 {
			b.col++
			b.clampCursor(a.snap.Tasks)
		}
	case key.Matches(msg, keys.Up):
		if b.row > 0 {
			b.row--
		}
	case key.Matches(msg, keys.Down):
		cols := b.columns(a.snap.Tasks)
		if b.row < len(cols[b.col])-1 {
			b.row++
		}

	case key.Matches(msg, keys.New):
		return b.showForm(a)

	case key.Matches(msg, keys.Enter):
		task := b.selected(a.snap.Tasks)
		st := a.deps.State
		return b, func() tea.Msg {
			st.SetSelectedTask(task)
			return nil
		}

	case key.Matches(msg, keys.Check):
		if task := b.selected(a.snap.Tasks); task != nil {
			return b, a.toggleTaskCmd(task.ID)
		}

	case key.Matches(msg, keys.Move):
		if task := b.selected(a.snap.Tasks); task != nil {
			next := nextStatus(task.Status)
			return b, updateStatusCmd(a, task.ID, next)
		}

	case key.Matches(msg, keys.Archive):
		if task := b.selected(a.snap.Tasks); task != nil {
			return b, updateStatusCmd(a, task.ID, model.StatusTasklist)
		}

	case key.Matches(msg, keys.Delete):
		if task := b.selected(a.snap.Tasks); task != nil {
			id := task.ID
			tasks := a.deps.Tasks
			return b, func() tea.Msg {
				res := tasks.DeleteTask(id)
				if !res.Success {
					return statusMsg{text: res.Message, isError: true}
				}
				return statusMsg{text: "Task deleted"}
			}
		}
	}
	return b, nil
}

// nextStatus cycles a task through the board columns.
func nextStatus(current model.Status) model.Status {
	switch current {
	case model.StatusTodo:
		return model.StatusInProgress
	case model.StatusInProgress:
		return model.StatusComplete
	default:
		return model.StatusTodo
	}
}

func updateStatusCmd(a *App, id int64, status model.Status) tea.Cmd {
	tasks := a.deps.Tasks
	return func() tea.Msg {
		res := tasks.UpdateTask(id, repo.TaskPatch{Status: &status})
		if !res.Success {
			return statusMsg{text: res.Message, isError: true}
		}
		return statusMsg{text: "Moved to " + string(status)}
	}
}

func (b boardModel) showForm(a *App) (boardModel, tea.Cmd) {
	*b.fTitle, *b.fDesc, *b.fDue = "", "", ""
	*b.fPriority = string(model.PriorityLow)
	*b.fCategory = string(model.CategoryWork)

	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(a.tr("taskTitle")).Value(b.fTitle),
			huh.NewInput().Title(a.tr("taskDesc")).Value(b.fDesc),
			huh.NewInput().Title(a.tr("dueDate")).Placeholder("2026-01-02").Value(b.fDue),
			huh.NewSelect[string]().Title(a.tr("priority")).
				Options(
					huh.NewOption(a.tr("low"), string(model.PriorityLow)),
					huh.NewOption(a.tr("medium"), string(model.PriorityMedium)),
					huh.NewOption(a.tr("high"), string(model.PriorityHigh)),
				).Value(b.fPriority),
			huh.NewSelect[string]().Title(a.tr("category")).
				Options(
					huh.NewOption(a.tr("work"), string(model.CategoryWork)),
					huh.NewOption(a.tr("personal"), string(model.CategoryPersonal)),
					huh.NewOption(a.tr("urgent"), string(model.CategoryUrgent)),
				).Value(b.fCategory),
		).Title(a.tr("createTask")),
	).WithShowHelp(true).WithShowErrors(true)

	b.formActive = true
	return b, b.form.Init()
}

func (b boardModel) updateForm(msg tea.Msg, a *App) (boardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			b.formActive = false
			b.form = nil
			return b, nil
		}
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	if b.form.State == huh.StateCompleted {
		b.formActive = false
		draft := repo.TaskDraft{
			Title:       *b.fTitle,
			Description: *b.fDesc,
			DueDate:     *b.fDue,
			Priority:    model.Priority(*b.fPriority),
			Category:    model.Category(*b.fCategory),
		}
		tasks := a.deps.Tasks
		return b, func() tea.Msg {
			res := tasks.CreateTask(draft)
			if !res.Success {
				return statusMsg{text: res.Message, isError: true}
			}
			return statusMsg{text: "Created: " + res.Data.Title}
		}
	}

	return b, cmd
}

func (b boardModel) view(a *App) string {
	if b.formActive && b.form != nil {
		title := a.styles.title.Render(a.tr("createTask"))
		return a.styles.panel.Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", b.form.View()),
		)
	}

	cols := b.columns(a.snap.Tasks)
	labels := []string{a.tr("todo"), a.tr("inprogress"), a.tr("complete")}

	colWidth := (a.width - 12) / 3
	if colWidth < 18 {
		colWidth = 18
	}

	var rendered []string
	for i, col := range cols {
		var cards []string
		header := a.styles.title.Render(labels[i])
		cards = append(cards, header)

		if len(col) == 0 {
			cards = append(cards, a.styles.muted.Render("—"))
		}
		for j, t := range col {
			style := a.styles.card
			if i == b.col && j == b.row {
				style = a.styles.cardSel
			}
			body := lipgloss.JoinVertical(lipgloss.Left,
				t.Title,
				a.styles.muted.Render(priorityLabel(t.Priority)+"  "+formatDue(t.DueDate)),
				a.styles.subtitle.Render(progressBar(model.DisplayProgress(t), colWidth-10)),
			)
			cards = append(cards, style.Width(colWidth).Render(body))
		}
		rendered = append(rendered, a.styles.column.Render(
			lipgloss.JoinVertical(lipgloss.Left, cards...),
		))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	summary := a.styles.subtitle.Render(
		a.tr("taskProgress") + ": " + progressBar(model.AverageProgress(a.snap.Tasks), 20),
	)

	parts := []string{summary, board}
	if sel := a.snap.SelectedTask; sel != nil {
		detail := lipgloss.JoinVertical(lipgloss.Left,
			a.styles.title.Render(sel.Title),
			a.styles.normal.Render(sel.Description),
			a.styles.muted.Render(formatDue(sel.DueDate)+"  "+string(sel.Priority)+"  "+string(sel.Category)),
		)
		parts = append(parts, a.styles.activePanel.Render(detail))
	}

	row := a.searchInput.View()
	if !a.searchFocused && a.searchInput.Value() == "" {
		row = a.styles.muted.Render(a.tr("search") + "  (/)")
	}
	parts = append([]string{row}, parts...)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
