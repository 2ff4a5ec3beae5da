package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskdeck/internal/i18n"
	"github.com/sadopc/taskdeck/internal/repo"
	"github.com/sadopc/taskdeck/internal/state"
)

// settingsModel edits language/theme and hosts the export/import actions.
type settingsModel struct {
	prefs *repo.Prefs

	formActive bool
	form       *huh.Form
	formType   string // "settings" or "import"

	// Form field pointers (survive value copies)
	fLanguage   *string
	fTheme      *string
	fImportPath *string
}

func newSettingsModel(prefs *repo.Prefs) settingsModel {
	lang, theme, path := "", "", ""
	return settingsModel{
		prefs:       prefs,
		fLanguage:   &lang,
		fTheme:      &theme,
		fImportPath: &path,
	}
}

func (s settingsModel) update(msg tea.Msg, a *App) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg, a)
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return s, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Enter):
		return s.showSettingsForm(a)
	case key.Matches(keyMsg, keys.Export):
		return s, exportCmd(a)
	case key.Matches(keyMsg, keys.Import):
		return s.showImportForm(a)
	}
	return s, nil
}

func (s settingsModel) showSettingsForm(a *App) (settingsModel, tea.Cmd) {
	*s.fLanguage = a.snap.CurrentLanguage
	*s.fTheme = a.snap.CurrentTheme

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title(a.tr("language")).
				Options(
					huh.NewOption("English", i18n.LangEN),
					huh.NewOption("Монгол", i18n.LangMN),
				).Value(s.fLanguage),
			huh.NewSelect[string]().Title(a.tr("theme")).
				Options(
					huh.NewOption(a.tr("light"), state.ThemeLight),
					huh.NewOption(a.tr("dark"), state.ThemeDark),
				).Value(s.fTheme),
		).Title(a.tr("settings")),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	s.formType = "settings"
	return s, s.form.Init()
}

func (s settingsModel) showImportForm(a *App) (settingsModel, tea.Cmd) {
	*s.fImportPath = ""

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(a.tr("importTasks")).
				Placeholder("/path/to/tasks-export.json").
				Value(s.fImportPath),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	s.formType = "import"
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg, a *App) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		switch s.formType {
		case "settings":
			return s, s.applySettings(a)
		case "import":
			return s, importCmd(a, *s.fImportPath)
		}
	}

	return s, cmd
}

// applySettings persists the choices and pushes them through the state
// store so every view picks them up.
func (s settingsModel) applySettings(a *App) tea.Cmd {
	language := *s.fLanguage
	theme := *s.fTheme
	prefs := s.prefs
	st := a.deps.State
	return func() tea.Msg {
		prefs.SetLanguage(language)
		prefs.SetTheme(theme)
		st.SetLanguage(language)
		st.SetTheme(theme)
		return statusMsg{text: "Settings saved"}
	}
}

func exportCmd(a *App) tea.Cmd {
	tasks := a.deps.Tasks
	return func() tea.Msg {
		res := tasks.ExportTasks()
		if !res.Success {
			return statusMsg{text: res.Message, isError: true}
		}

		data, err := json.MarshalIndent(res.Data, "", "  ")
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")
		path := filepath.Join(home, fmt.Sprintf("taskdeck-export-%s.json", dateStr))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func importCmd(a *App, path string) tea.Cmd {
	tasks := a.deps.Tasks
	return func() tea.Msg {
		payload, err := os.ReadFile(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		res := tasks.ImportTasks(payload)
		if !res.Success {
			return statusMsg{text: res.Message, isError: true}
		}
		return statusMsg{text: res.Message}
	}
}

func (s settingsModel) view(a *App) string {
	if s.formActive && s.form != nil {
		title := a.styles.title.Render(a.tr("settings"))
		return a.styles.panel.Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{
		a.styles.title.Render(a.tr("settings")),
		"",
		fmt.Sprintf("  %s  %s", lipgloss.NewStyle().Width(12).Render(a.tr("language")), a.styles.selected.Render(a.snap.CurrentLanguage)),
		fmt.Sprintf("  %s  %s", lipgloss.NewStyle().Width(12).Render(a.tr("theme")), a.styles.selected.Render(a.snap.CurrentTheme)),
		"",
		a.styles.muted.Render("enter: edit   e: " + a.tr("exportTasks") + "   i: " + a.tr("importTasks")),
	}

	return a.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
