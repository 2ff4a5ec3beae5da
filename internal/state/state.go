// Package state holds the canonical in-memory application state behind a
// small pub/sub container. Views read snapshots; mutation happens only
// through the named actions, each of which notifies subscribers exactly
// once.
package state

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/model"
)

// Page is the navigation target shown by the view layer.
type Page string

const (
	PageDashboard Page = "dashboard"
	PageTaskList  Page = "taskList"
	PageAnalytics Page = "analytics"
	PageSettings  Page = "settings"
	PageCalendar  Page = "calendar"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Snapshot is a point-in-time copy of the application state. Callers own
// their copy and must never expect mutations to flow back.
type Snapshot struct {
	Tasks           []model.Task
	Projects        []model.Project
	DeletedProjects []model.DeletedProject
	CurrentLanguage string
	CurrentTheme    string
	CurrentPage     Page
	SearchQuery     string
	IsLoading       bool
	Err             string
	SelectedTask    *model.Task

	// TaskRev increments on every task-mutating action so subscribers can
	// detect "tasks changed" without diffing the slice.
	TaskRev uint64
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Tasks = append([]model.Task(nil), s.Tasks...)
	out.Projects = append([]model.Project(nil), s.Projects...)
	out.DeletedProjects = append([]model.DeletedProject(nil), s.DeletedProjects...)
	if s.SelectedTask != nil {
		t := *s.SelectedTask
		out.SelectedTask = &t
	}
	return out
}

// Listener receives the post-mutation snapshot.
type Listener func(Snapshot)

// Store is the single application-state container. A mutex serializes
// actions because bubbletea commands run on their own goroutines; listeners
// are invoked outside the lock, in subscription order, over a copy of the
// listener list so unsubscribing mid-notification is safe.
type Store struct {
	mu        sync.Mutex
	state     Snapshot
	listeners []subscription
	nextSubID int
	log       zerolog.Logger
}

type subscription struct {
	id int
	fn Listener
}

// New creates a store seeded with the given defaults.
func New(defaults Snapshot, log zerolog.Logger) *Store {
	if defaults.CurrentLanguage == "" {
		defaults.CurrentLanguage = "en"
	}
	if defaults.CurrentTheme == "" {
		defaults.CurrentTheme = ThemeLight
	}
	if defaults.CurrentPage == "" {
		defaults.CurrentPage = PageDashboard
	}
	return &Store{
		state: defaults,
		log:   log.With().Str("component", "state").Logger(),
	}
}

// Get returns a snapshot copy of the current state.
func (s *Store) Get() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe attaches a listener and returns its unsubscribe function.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// apply runs one mutation and performs the single notification pass for it.
// Every named action funnels through here: one action, one notify.
func (s *Store) apply(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.state)
	snap := s.state.clone()
	subs := append([]subscription(nil), s.listeners...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}
