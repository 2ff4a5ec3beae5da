package state

import (
	"time"

	"github.com/sadopc/taskdeck/internal/model"
)

// SetTasks replaces the task list wholesale.
func (s *Store) SetTasks(tasks []model.Task) {
	s.apply(func(st *Snapshot) {
		st.Tasks = append([]model.Task(nil), tasks...)
		st.TaskRev++
	})
}

// AddTask appends a task. A record without a valid identifier is rejected
// rather than inserted malformed.
func (s *Store) AddTask(task model.Task) {
	if task.ID == 0 {
		s.log.Error().Str("title", task.Title).Msg("rejected task without id")
		return
	}
	s.apply(func(st *Snapshot) {
		st.Tasks = append(st.Tasks, task)
		st.TaskRev++
	})
}

// UpdateTask replaces the task with the same ID, if present.
func (s *Store) UpdateTask(task model.Task) {
	s.apply(func(st *Snapshot) {
		for i := range st.Tasks {
			if st.Tasks[i].ID == task.ID {
				st.Tasks[i] = task
				break
			}
		}
		st.TaskRev++
	})
}

// RemoveTask drops the task with the given ID.
func (s *Store) RemoveTask(id int64) {
	s.apply(func(st *Snapshot) {
		kept := st.Tasks[:0:0]
		for _, t := range st.Tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		st.Tasks = kept
		st.TaskRev++
	})
}

func (s *Store) SetProjects(projects []model.Project) {
	s.apply(func(st *Snapshot) {
		st.Projects = append([]model.Project(nil), projects...)
	})
}

func (s *Store) AddProject(project model.Project) {
	if project.ID == 0 {
		s.log.Error().Str("title", project.Title).Msg("rejected project without id")
		return
	}
	s.apply(func(st *Snapshot) {
		st.Projects = append(st.Projects, project)
	})
}

func (s *Store) UpdateProject(project model.Project) {
	s.apply(func(st *Snapshot) {
		for i := range st.Projects {
			if st.Projects[i].ID == project.ID {
				st.Projects[i] = project
				break
			}
		}
	})
}

// RemoveProject soft-deletes: the record moves onto the DeletedProjects
// audit list with a deletion timestamp in the same state update that
// removes it from the active list.
func (s *Store) RemoveProject(id int64) {
	s.apply(func(st *Snapshot) {
		idx := -1
		for i := range st.Projects {
			if st.Projects[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}
		st.DeletedProjects = append(st.DeletedProjects, model.DeletedProject{
			Project:   st.Projects[idx],
			DeletedAt: time.Now().UTC().Format(time.RFC3339),
		})
		st.Projects = append(st.Projects[:idx], st.Projects[idx+1:]...)
	})
}

// GetProjectByID looks up a project on the active list.
func (s *Store) GetProjectByID(id int64) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// DeletedProjects returns a copy of the audit list.
func (s *Store) DeletedProjects() []model.DeletedProject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.DeletedProject(nil), s.state.DeletedProjects...)
}

func (s *Store) SetLanguage(language string) {
	s.apply(func(st *Snapshot) {
		st.CurrentLanguage = language
	})
}

func (s *Store) SetTheme(theme string) {
	s.apply(func(st *Snapshot) {
		st.CurrentTheme = theme
	})
}

func (s *Store) SetCurrentPage(page Page) {
	if page == "" {
		page = PageDashboard
	}
	s.apply(func(st *Snapshot) {
		st.CurrentPage = page
	})
}

func (s *Store) SetSearchQuery(query string) {
	s.apply(func(st *Snapshot) {
		st.SearchQuery = query
	})
}

// BeginSearch sets the query and forces the dashboard page in one atomic
// update, so searching from another page does not produce an intermediate
// page-change notification.
func (s *Store) BeginSearch(query string) {
	s.apply(func(st *Snapshot) {
		st.SearchQuery = query
		st.CurrentPage = PageDashboard
	})
}

func (s *Store) SetLoading(loading bool) {
	s.apply(func(st *Snapshot) {
		st.IsLoading = loading
	})
}

func (s *Store) SetError(message string) {
	s.apply(func(st *Snapshot) {
		st.Err = message
	})
}

func (s *Store) SetSelectedTask(task *model.Task) {
	s.apply(func(st *Snapshot) {
		if task == nil {
			st.SelectedTask = nil
			return
		}
		t := *task
		st.SelectedTask = &t
	})
}
