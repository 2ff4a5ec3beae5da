package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/repo"
)

const dateKeyLayout = "2006-01-02"

// calendarModel is the month view with per-day notes.
type calendarModel struct {
	notes *repo.Notes

	selected   time.Time
	noteCursor int

	noteInputActive bool
	noteInput       textinput.Model

	cache map[string][]model.CalendarNote
}

func newCalendarModel(notes *repo.Notes) calendarModel {
	input := textinput.New()
	input.Prompt = "note> "
	input.CharLimit = 140

	now := time.Now()
	return calendarModel{
		notes:     notes,
		selected:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
		noteInput: input,
		cache:     map[string][]model.CalendarNote{},
	}
}

func (c *calendarModel) reload() {
	res := c.notes.All()
	c.cache = res.Data
}

func (c calendarModel) dateKey() string {
	return c.selected.Format(dateKeyLayout)
}

func (c calendarModel) update(msg tea.KeyMsg, a *App) (calendarModel, tea.Cmd) {
	if len(c.cache) == 0 {
		c.reload()
	}

	switch {
	case key.Matches(msg, keys.Left):
		c.selected = c.selected.AddDate(0, 0, -1)
		c.noteCursor = 0
	case key.Matches(msg, keys.Right):
		c.selected = c.selected.AddDate(0, 0, 1)
		c.noteCursor = 0
	case key.Matches(msg, keys.Up):
		c.selected = c.selected.AddDate(0, 0, -7)
		c.noteCursor = 0
	case key.Matches(msg, keys.Down):
		c.selected = c.selected.AddDate(0, 0, 7)
		c.noteCursor = 0

	case key.Matches(msg, keys.New):
		c.noteInputActive = true
		c.noteInput.SetValue("")
		c.noteInput.Focus()
		return c, textinput.Blink

	case key.Matches(msg, keys.Delete):
		day := c.cache[c.dateKey()]
		if c.noteCursor < len(day) {
			res := c.notes.Remove(c.dateKey(), day[c.noteCursor].ID)
			c.reload()
			if c.noteCursor > 0 {
				c.noteCursor--
			}
			if !res.Success {
				return c, func() tea.Msg { return statusMsg{text: res.Message, isError: true} }
			}
			return c, func() tea.Msg { return statusMsg{text: "Note removed"} }
		}

	case key.Matches(msg, keys.Enter):
		day := c.cache[c.dateKey()]
		if c.noteCursor < len(day)-1 {
			c.noteCursor++
		} else {
			c.noteCursor = 0
		}
	}
	return c, nil
}

func (c calendarModel) updateNoteInput(msg tea.KeyMsg, a *App) (calendarModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		c.noteInputActive = false
		c.noteInput.Blur()
		return c, nil
	case key.Matches(msg, keys.Enter):
		text := c.noteInput.Value()
		c.noteInputActive = false
		c.noteInput.Blur()
		if text == "" {
			return c, nil
		}
		res := c.notes.Add(c.dateKey(), text, "")
		c.reload()
		if !res.Success {
			return c, func() tea.Msg { return statusMsg{text: res.Message, isError: true} }
		}
		return c, func() tea.Msg { return statusMsg{text: "Note added"} }
	}

	var cmd tea.Cmd
	c.noteInput, cmd = c.noteInput.Update(msg)
	return c, cmd
}

func (c calendarModel) view(a *App) string {
	if len(c.cache) == 0 {
		// read-through on first render
		res := c.notes.All()
		c.cache = res.Data
	}

	grid := c.renderMonth(a)
	notes := c.renderNotes(a)

	var input string
	if c.noteInputActive {
		input = c.noteInput.View()
	} else {
		input = a.styles.muted.Render("n: " + a.tr("addNote") + "  d: " + a.tr("deleteNote"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.title.Render(c.selected.Format("January 2006")),
		"",
		grid,
		"",
		notes,
		"",
		input,
	)
}

func (c calendarModel) renderMonth(a *App) string {
	first := time.Date(c.selected.Year(), c.selected.Month(), 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-first column offset.
	offset := (int(first.Weekday()) + 6) % 7

	header := "Mo Tu We Th Fr Sa Su"
	rows := []string{a.styles.subtitle.Render(header)}

	line := ""
	for i := 0; i < offset; i++ {
		line += "   "
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(c.selected.Year(), c.selected.Month(), day, 0, 0, 0, 0, time.Local)
		cell := fmt.Sprintf("%2d", day)

		switch {
		case date.Equal(c.selected):
			cell = a.styles.selected.Render(cell)
		case len(c.cache[date.Format(dateKeyLayout)]) > 0:
			cell = a.styles.success.Render(cell)
		default:
			cell = a.styles.normal.Render(cell)
		}
		line += cell + " "

		if (offset+day)%7 == 0 {
			rows = append(rows, line)
			line = ""
		}
	}
	if line != "" {
		rows = append(rows, line)
	}

	return a.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (c calendarModel) renderNotes(a *App) string {
	day := c.cache[c.dateKey()]

	rows := []string{a.styles.title.Render(c.dateKey())}
	if len(day) == 0 {
		rows = append(rows, a.styles.muted.Render(a.tr("noNotes")))
		return a.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	for i, n := range day {
		marker := "  "
		style := a.styles.normal
		if i == c.noteCursor {
			marker = "> "
			style = a.styles.selected
		}
		text := n.Text
		if n.Time != "" {
			text = n.Time + " " + text
		}
		rows = append(rows, style.Render(marker+text))
	}

	return a.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
