// Package service orchestrates repository calls and state-store updates.
// Every operation flips the loading flag, records failures on the state
// error field, and hands the repository's envelope back unchanged. Faults
// never escape: a panicking repository call is translated into a failure
// envelope.
package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/repo"
	"github.com/sadopc/taskdeck/internal/state"
)

// guard runs fn and converts a panic into a failure envelope.
func guard[T any](fn func() repo.Result[T]) (res repo.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = repo.Result[T]{Success: false, Message: fmt.Sprintf("internal fault: %v", r)}
		}
	}()
	return fn()
}

type Tasks struct {
	repo  *repo.Tasks
	state *state.Store
	log   zerolog.Logger
}

func NewTasks(r *repo.Tasks, st *state.Store, log zerolog.Logger) *Tasks {
	return &Tasks{
		repo:  r,
		state: st,
		log:   log.With().Str("service", "tasks").Logger(),
	}
}

// begin marks the operation in progress and clears any stale error.
func (s *Tasks) begin() {
	s.state.SetLoading(true)
	s.state.SetError("")
}

func (s *Tasks) LoadTasks() repo.Result[[]model.Task] {
	s.begin()
	defer s.state.SetLoading(false)

	res := guard(s.repo.GetAll)
	if res.Success {
		s.state.SetTasks(res.Data)
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

func (s *Tasks) CreateTask(draft repo.TaskDraft) repo.Result[*model.Task] {
	s.begin()
	defer s.state.SetLoading(false)

	res := guard(func() repo.Result[*model.Task] { return s.repo.Create(draft) })
	if res.Success {
		s.state.AddTask(*res.Data)
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

func (s *Tasks) UpdateTask(id int64, patch repo.TaskPatch) repo.Result[*model.Task] {
	s.begin()
	defer s.state.SetLoading(false)

	res := guard(func() repo.Result[*model.Task] { return s.repo.Update(id, patch) })
	if res.Success {
		s.state.UpdateTask(*res.Data)
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

func (s *Tasks) DeleteTask(id int64) repo.Result[repo.DeletedID] {
	s.begin()
	defer s.state.SetLoading(false)

	res := guard(func() repo.Result[repo.DeletedID] { return s.repo.Delete(id) })
	if res.Success {
		s.state.RemoveTask(id)
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

func (s *Tasks) ToggleTaskComplete(id int64) repo.Result[*model.Task] {
	s.begin()
	defer s.state.SetLoading(false)

	res := guard(func() repo.Result[*model.Task] { return s.repo.ToggleComplete(id) })
	if res.Success {
		s.state.UpdateTask(*res.Data)
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

// GetTaskByID is a pure read: no loading flag, errors only surface on the
// returned envelope.
func (s *Tasks) GetTaskByID(id int64) repo.Result[*model.Task] {
	return guard(func() repo.Result[*model.Task] { return s.repo.GetByID(id) })
}

// ExportTasks produces the versioned snapshot. Pure read.
func (s *Tasks) ExportTasks() repo.Result[repo.ExportSnapshot] {
	return guard(s.repo.Export)
}

// ImportTasks merges an external payload and refreshes the state task list
// with the merged collection.
func (s *Tasks) ImportTasks(payload []byte) repo.ImportResult {
	s.begin()
	defer s.state.SetLoading(false)

	res := s.importGuarded(payload)
	if res.Success {
		s.state.SetTasks(res.Data)
		s.log.Info().Int("imported", res.Imported).Msg("import applied")
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

func (s *Tasks) importGuarded(payload []byte) (res repo.ImportResult) {
	defer func() {
		if r := recover(); r != nil {
			res = repo.ImportResult{Success: false, Message: fmt.Sprintf("internal fault: %v", r)}
		}
	}()
	return s.repo.Import(payload)
}
