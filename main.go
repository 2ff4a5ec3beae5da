package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/taskdeck/internal/config"
	"github.com/sadopc/taskdeck/internal/dispatch"
	"github.com/sadopc/taskdeck/internal/logging"
	"github.com/sadopc/taskdeck/internal/repo"
	"github.com/sadopc/taskdeck/internal/service"
	"github.com/sadopc/taskdeck/internal/state"
	"github.com/sadopc/taskdeck/internal/storage"
	"github.com/sadopc/taskdeck/internal/tui"
)

func main() {
	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = storage.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	logPath := cfg.LogPath
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(dbPath), "taskdeck.log")
	}
	logger, logCloser, err := logging.New(logPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	store, err := storage.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	tasksRepo := repo.NewTasks(store, logger)
	projectsRepo := repo.NewProjects(store, logger)
	notesRepo := repo.NewNotes(store, logger)
	prefs := repo.NewPrefs(store, logger)

	// Backfill statuses once, before the first render.
	if _, err := tasksRepo.MigrateStatuses(); err != nil {
		logger.Warn().Err(err).Msg("status migration skipped")
	}

	stateStore := state.New(state.Snapshot{
		CurrentLanguage: prefs.Language(cfg.Language),
		CurrentTheme:    prefs.Theme(cfg.Theme),
	}, logger)

	taskSvc := service.NewTasks(tasksRepo, stateStore, logger)
	projectSvc := service.NewProjects(projectsRepo, stateStore, logger)

	bridge := tui.NewBridge()
	dispatcher := dispatch.New(bridge, stateStore.Get(), logger)
	unsubscribe := dispatcher.Attach(stateStore)
	defer unsubscribe()

	search := dispatch.NewSearchController(stateStore, bridge, logger)

	// Hydrate state before the UI comes up.
	taskSvc.LoadTasks()
	projectSvc.LoadProjects()

	app := tui.NewApp(tui.Deps{
		State:    stateStore,
		Tasks:    taskSvc,
		Projects: projectSvc,
		Notes:    notesRepo,
		Prefs:    prefs,
		Search:   search,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	go bridge.Bind(p.Send)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
