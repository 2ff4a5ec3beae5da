// Package tui is the terminal front end. It implements the dispatcher's
// renderer contracts by translating render decisions into Bubble Tea
// messages, and calls back into the services for every user action.
package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskdeck/internal/dispatch"
	"github.com/sadopc/taskdeck/internal/i18n"
	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/repo"
	"github.com/sadopc/taskdeck/internal/service"
	"github.com/sadopc/taskdeck/internal/state"
)

// Bridge adapts dispatcher render decisions into program messages. It is
// created before the Bubble Tea program exists; decisions arriving earlier
// are queued and flushed on Bind.
type Bridge struct {
	mu    sync.Mutex
	send  func(tea.Msg)
	queue []tea.Msg
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Bind connects the bridge to a running program and flushes queued
// decisions in arrival order.
func (b *Bridge) Bind(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	queued := b.queue
	b.queue = nil
	b.mu.Unlock()

	for _, msg := range queued {
		send(msg)
	}
}

func (b *Bridge) post(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	if send == nil {
		b.queue = append(b.queue, msg)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	send(msg)
}

var _ dispatch.Renderer = (*Bridge)(nil)
var _ dispatch.SearchRenderer = (*Bridge)(nil)

func (b *Bridge) RenderBoard(snap state.Snapshot) {
	b.post(renderBoardMsg{snap: snap})
}

func (b *Bridge) ShowPage(page state.Page, snap state.Snapshot) {
	b.post(showPageMsg{page: page, snap: snap})
}

func (b *Bridge) RenderCurrent(page state.Page, snap state.Snapshot) {
	b.post(renderCurrentMsg{page: page, snap: snap})
}

func (b *Bridge) RenderSearchResults(tasks []model.Task, projects []model.Project, query string) {
	b.post(searchResultsMsg{tasks: tasks, projects: projects, query: query})
}

// Deps wires the app to the core.
type Deps struct {
	State    *state.Store
	Tasks    *service.Tasks
	Projects *service.Projects
	Notes    *repo.Notes
	Prefs    *repo.Prefs
	Search   *dispatch.SearchController
}

// App is the root Bubble Tea model.
type App struct {
	deps Deps

	width  int
	height int

	snap   state.Snapshot
	styles styleSet

	board    boardModel
	taskList taskListModel
	calendar calendarModel
	settings settingsModel

	searchInput   textinput.Model
	searchFocused bool
	results       *searchResults

	help     help.Model
	showHelp bool
	status   string
	statusIsError bool
}

type searchResults struct {
	tasks    []model.Task
	projects []model.Project
	query    string
	cursor   int
}

func NewApp(deps Deps) App {
	h := help.New()
	h.ShowAll = false

	snap := deps.State.Get()

	input := textinput.New()
	input.Prompt = "/ "
	input.CharLimit = 64

	return App{
		deps:        deps,
		snap:        snap,
		styles:      stylesFor(snap.CurrentTheme),
		board:       newBoardModel(),
		taskList:    newTaskListModel(),
		calendar:    newCalendarModel(deps.Notes),
		settings:    newSettingsModel(deps.Prefs),
		searchInput: input,
		help:        h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) tr(key string) string {
	return i18n.T(a.snap.CurrentLanguage, key)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case renderBoardMsg:
		a.snap = msg.snap
		a.results = nil
		a.styles = stylesFor(a.snap.CurrentTheme)
		a.board.clampCursor(a.snap.Tasks)
		return a, nil

	case showPageMsg:
		a.snap = msg.snap
		a.results = nil
		a.styles = stylesFor(a.snap.CurrentTheme)
		return a, nil

	case renderCurrentMsg:
		a.snap = msg.snap
		a.styles = stylesFor(a.snap.CurrentTheme)
		a.board.clampCursor(a.snap.Tasks)
		return a, nil

	case searchResultsMsg:
		a.results = &searchResults{tasks: msg.tasks, projects: msg.projects, query: msg.query}
		a.snap = a.deps.State.Get()
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusIsError = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusIsError = false
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	if a.settings.formActive {
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg, &a)
		return a, cmd
	}
	if a.board.formActive {
		var cmd tea.Cmd
		a.board, cmd = a.board.updateForm(msg, &a)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Active forms capture all input.
	if a.settings.formActive {
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg, &a)
		return a, cmd
	}
	if a.board.formActive {
		var cmd tea.Cmd
		a.board, cmd = a.board.updateForm(msg, &a)
		return a, cmd
	}
	if a.calendar.noteInputActive {
		var cmd tea.Cmd
		a.calendar, cmd = a.calendar.updateNoteInput(msg, &a)
		return a, cmd
	}

	if a.searchFocused {
		return a.updateSearchInput(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil

	case key.Matches(msg, keys.Search):
		if a.snap.CurrentPage == state.PageDashboard {
			a.searchFocused = true
			a.searchInput.Focus()
			return a, textinput.Blink
		}
		return a, nil

	case key.Matches(msg, keys.Tab1):
		return a, a.gotoPage(state.PageDashboard)
	case key.Matches(msg, keys.Tab2):
		return a, a.gotoPage(state.PageTaskList)
	case key.Matches(msg, keys.Tab3):
		return a, a.gotoPage(state.PageAnalytics)
	case key.Matches(msg, keys.Tab4):
		return a, a.gotoPage(state.PageCalendar)
	case key.Matches(msg, keys.Tab5):
		return a, a.gotoPage(state.PageSettings)
	case key.Matches(msg, keys.Tab):
		return a, a.gotoPage(nextPage(a.snap.CurrentPage))
	}

	// Page-local keys.
	switch a.snap.CurrentPage {
	case state.PageDashboard:
		if a.results != nil {
			return a.updateSearchResults(msg)
		}
		var cmd tea.Cmd
		a.board, cmd = a.board.update(msg, &a)
		return a, cmd
	case state.PageTaskList:
		a.taskList = a.taskList.update(msg, a.snap.Tasks)
		return a, nil
	case state.PageCalendar:
		var cmd tea.Cmd
		a.calendar, cmd = a.calendar.update(msg, &a)
		return a, cmd
	case state.PageSettings:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg, &a)
		return a, cmd
	}
	return a, nil
}

// gotoPage routes navigation through the state store; the dispatcher turns
// the transition into a showPageMsg.
func (a App) gotoPage(page state.Page) tea.Cmd {
	st := a.deps.State
	return func() tea.Msg {
		st.SetCurrentPage(page)
		return nil
	}
}

func nextPage(current state.Page) state.Page {
	for i, p := range pageOrder {
		if p == current {
			return pageOrder[(i+1)%len(pageOrder)]
		}
	}
	return state.PageDashboard
}

func (a App) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		a.searchFocused = false
		a.searchInput.Blur()
		a.searchInput.SetValue("")
		search := a.deps.Search
		return a, func() tea.Msg {
			search.SetQuery("")
			return nil
		}
	case key.Matches(msg, keys.Enter):
		a.searchFocused = false
		a.searchInput.Blur()
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	after := a.searchInput.Value()
	if after == before {
		return a, cmd
	}

	search := a.deps.Search
	run := func() tea.Msg {
		search.SetQuery(after)
		return nil
	}
	return a, tea.Batch(cmd, run)
}

func (a App) updateSearchResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := a.results
	total := len(r.tasks) + len(r.projects)

	switch {
	case key.Matches(msg, keys.Up):
		if r.cursor > 0 {
			r.cursor--
		}
	case key.Matches(msg, keys.Down):
		if r.cursor < total-1 {
			r.cursor++
		}
	case key.Matches(msg, keys.Back):
		a.results = nil
		a.searchInput.SetValue("")
		search := a.deps.Search
		return a, func() tea.Msg {
			search.SetQuery("")
			return nil
		}
	case key.Matches(msg, keys.Check):
		// Quick actions: check a task, or step a project's progress.
		if r.cursor < len(r.tasks) {
			id := r.tasks[r.cursor].ID
			return a, a.toggleTaskCmd(id)
		}
		if idx := r.cursor - len(r.tasks); idx < len(r.projects) {
			id := r.projects[idx].ID
			projects := a.deps.Projects
			return a, func() tea.Msg {
				res := projects.StepProgress(id)
				if !res.Success {
					return statusMsg{text: res.Message, isError: true}
				}
				return statusMsg{text: "Project progress updated"}
			}
		}
	}
	return a, nil
}

func (a App) toggleTaskCmd(id int64) tea.Cmd {
	tasks := a.deps.Tasks
	return func() tea.Msg {
		res := tasks.ToggleTaskComplete(id)
		if !res.Success {
			return statusMsg{text: res.Message, isError: true}
		}
		return statusMsg{text: "Checked: " + res.Data.Title}
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.snap.CurrentPage {
	case state.PageDashboard:
		if a.results != nil {
			content = a.renderSearchResults()
		} else {
			content = a.board.view(&a)
		}
	case state.PageTaskList:
		content = a.taskList.view(&a)
	case state.PageAnalytics:
		content = a.renderAnalytics()
	case state.PageCalendar:
		content = a.calendar.view(&a)
	case state.PageSettings:
		content = a.settings.view(&a)
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for _, page := range pageOrder {
		name := a.tr(string(page))
		if page == a.snap.CurrentPage {
			tabs = append(tabs, a.styles.activeTab.Render(name))
		} else {
			tabs = append(tabs, a.styles.inactiveTab.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := a.styles.title.Render("taskdeck")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return a.styles.header.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	right := ""
	if a.snap.IsLoading {
		right += a.styles.warning.Render(" … ")
	}
	if a.snap.Err != "" {
		right += a.styles.errorS.Render(" " + a.snap.Err)
	} else if a.status != "" {
		if a.statusIsError {
			right += a.styles.errorS.Render(" " + a.status)
		} else {
			right += a.styles.muted.Render(" " + a.status)
		}
	}

	left := a.styles.footer.Render(helpView)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderSearchResults() string {
	r := a.results
	rows := []string{
		a.styles.title.Render("Search: " + r.query),
		"",
	}

	if len(r.tasks) == 0 && len(r.projects) == 0 {
		rows = append(rows, a.styles.muted.Render(a.tr("noResults")))
		return a.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	i := 0
	for _, t := range r.tasks {
		line := t.Title + "  " + a.styles.muted.Render(progressBar(model.DisplayProgress(t), 10))
		if i == r.cursor {
			line = a.styles.selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
		i++
	}
	for _, p := range r.projects {
		line := a.tr("project") + ": " + p.Title + "  " + a.styles.muted.Render(progressBar(p.Progress, 10))
		if i == r.cursor {
			line = a.styles.selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
		i++
	}

	rows = append(rows, "", a.styles.muted.Render("c: quick action  esc: clear"))
	return a.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
