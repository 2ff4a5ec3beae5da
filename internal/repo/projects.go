package repo

import (
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/storage"
)

const projectsCollection = "projects"

// Projects mirrors the task repository's CRUD shape. There is no check or
// progress protocol here: progress is caller-driven.
type Projects struct {
	store *storage.Store
	log   zerolog.Logger

	now   func() time.Time
	randn func(n int64) int64
}

func NewProjects(store *storage.Store, log zerolog.Logger) *Projects {
	return &Projects{
		store: store,
		log:   log.With().Str("repo", "projects").Logger(),
		now:   time.Now,
		randn: rand.Int63n,
	}
}

type ProjectDraft struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
}

type ProjectPatch struct {
	Title       *string
	Description *string
	Progress    *int
	Completed   *bool
	StartDate   *string
	EndDate     *string
}

type projectsWrapper struct {
	Projects []model.Project `json:"projects"`
}

func (r *Projects) loadAll() ([]model.Project, error) {
	raw, found, err := r.store.Load(projectsCollection)
	if err != nil {
		return nil, err
	}
	if !found || raw == "" {
		return nil, nil
	}

	var projects []model.Project
	if err := json.Unmarshal([]byte(raw), &projects); err == nil {
		return projects, nil
	}
	var wrapped projectsWrapper
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil && wrapped.Projects != nil {
		return wrapped.Projects, nil
	}
	r.log.Warn().Msg("stored projects value is malformed, treating as empty")
	return nil, nil
}

func (r *Projects) saveAll(projects []model.Project) error {
	if projects == nil {
		projects = []model.Project{}
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	return r.store.Save(projectsCollection, string(data))
}

func (r *Projects) GetAll() Result[[]model.Project] {
	projects, err := r.loadAll()
	if err != nil {
		r.log.Error().Err(err).Msg("storage unavailable")
		return Result[[]model.Project]{Success: false, Data: []model.Project{}, Message: err.Error()}
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return ok(projects, "projects fetched successfully")
}

func (r *Projects) GetByID(id int64) Result[*model.Project] {
	projects, err := r.loadAll()
	if err != nil {
		return fail[*model.Project](err.Error())
	}
	for i := range projects {
		if projects[i].ID == id {
			p := projects[i]
			return ok(&p, "project fetched successfully")
		}
	}
	return fail[*model.Project](MsgProjectNotFound)
}

func (r *Projects) Create(draft ProjectDraft) Result[*model.Project] {
	if strings.TrimSpace(draft.Title) == "" {
		return fail[*model.Project]("project title is required")
	}

	projects, err := r.loadAll()
	if err != nil {
		return fail[*model.Project](err.Error())
	}

	now := r.now().UTC().Format(time.RFC3339)
	project := model.Project{
		ID:          r.newID(projects),
		Title:       draft.Title,
		Description: draft.Description,
		StartDate:   draft.StartDate,
		EndDate:     draft.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	projects = append(projects, project)
	if err := r.saveAll(projects); err != nil {
		return fail[*model.Project](err.Error())
	}
	r.log.Debug().Int64("project_id", project.ID).Msg("created project")
	return ok(&project, "project created successfully")
}

func (r *Projects) newID(projects []model.Project) int64 {
	existing := make(map[int64]struct{}, len(projects))
	for _, p := range projects {
		existing[p.ID] = struct{}{}
	}
	for {
		id := r.now().UnixMilli() + r.randn(10000)
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}

func (r *Projects) Update(id int64, patch ProjectPatch) Result[*model.Project] {
	projects, err := r.loadAll()
	if err != nil {
		return fail[*model.Project](err.Error())
	}

	idx := -1
	for i := range projects {
		if projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fail[*model.Project](MsgProjectNotFound)
	}

	p := &projects[idx]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Progress != nil {
		p.Progress = min(max(*patch.Progress, 0), 100)
		if p.Progress >= 100 {
			p.Completed = true
		}
	}
	if patch.Completed != nil {
		p.Completed = *patch.Completed
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = *patch.EndDate
	}
	p.UpdatedAt = r.now().UTC().Format(time.RFC3339)

	if err := r.saveAll(projects); err != nil {
		return fail[*model.Project](err.Error())
	}
	updated := projects[idx]
	return ok(&updated, "project updated successfully")
}

func (r *Projects) Delete(id int64) Result[DeletedID] {
	projects, err := r.loadAll()
	if err != nil {
		return fail[DeletedID](err.Error())
	}

	filtered := projects[:0:0]
	for _, p := range projects {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == len(projects) {
		return fail[DeletedID](MsgProjectNotFound)
	}

	if err := r.saveAll(filtered); err != nil {
		return fail[DeletedID](err.Error())
	}
	r.log.Debug().Int64("project_id", id).Msg("deleted project")
	return ok(DeletedID{ID: id}, "project deleted successfully")
}
