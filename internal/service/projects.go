package service

import (
	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/repo"
	"github.com/sadopc/taskdeck/internal/state"
)

// ProgressStep is the fixed increment applied by project quick actions.
const ProgressStep = 20

type Projects struct {
	repo  *repo.Projects
	state *state.Store
	log   zerolog.Logger
}

func NewProjects(r *repo.Projects, st *state.Store, log zerolog.Logger) *Projects {
	return &Projects{
		repo:  r,
		state: st,
		log:   log.With().Str("service", "projects").Logger(),
	}
}

func (s *Projects) begin() {
	s.state.SetLoading(true)
	s.state.SetError("")
}

func (s *Projects) LoadProjects() repo.Result[[]model.Project] {
	s.begin()
	defer s.state.SetLoading(false)

	res := guard(s.repo.GetAll)
	if res.Success {
		s.state.SetProjects(res.Data)
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

func (s *Projects) CreateProject(draft repo.ProjectDraft) repo.Result[*model.Project] {
	s.begin()
	defer s.state.SetLoading(false)

	res := guard(func() repo.Result[*model.Project] { return s.repo.Create(draft) })
	if res.Success {
		s.state.AddProject(*res.Data)
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

func (s *Projects) UpdateProject(id int64, patch repo.ProjectPatch) repo.Result[*model.Project] {
	s.begin()
	defer s.state.SetLoading(false)

	res := guard(func() repo.Result[*model.Project] { return s.repo.Update(id, patch) })
	if res.Success {
		s.state.UpdateProject(*res.Data)
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

func (s *Projects) DeleteProject(id int64) repo.Result[repo.DeletedID] {
	s.begin()
	defer s.state.SetLoading(false)

	res := guard(func() repo.Result[repo.DeletedID] { return s.repo.Delete(id) })
	if res.Success {
		s.state.RemoveProject(id)
	} else {
		s.state.SetError(res.Message)
	}
	return res
}

func (s *Projects) GetProjectByID(id int64) repo.Result[*model.Project] {
	return guard(func() repo.Result[*model.Project] { return s.repo.GetByID(id) })
}

// StepProgress is the quick action from search results: one fixed increment,
// capped at 100, skipped entirely on a completed project.
func (s *Projects) StepProgress(id int64) repo.Result[*model.Project] {
	project, found := s.state.GetProjectByID(id)
	if !found {
		return repo.Result[*model.Project]{Success: false, Message: repo.MsgProjectNotFound}
	}
	if project.Completed {
		p := project
		return repo.Result[*model.Project]{Success: true, Data: &p, Message: "project already completed"}
	}
	next := min(project.Progress+ProgressStep, 100)
	return s.UpdateProject(id, repo.ProjectPatch{Progress: &next})
}
