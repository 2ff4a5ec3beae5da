package repo

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/storage"
)

const tasksCollection = "tasks"

var errNotATaskList = errors.New("not a task list")

// Tasks is the task repository. It owns ID generation, default-field
// population and normalization of the persisted blob.
type Tasks struct {
	store *storage.Store
	log   zerolog.Logger

	// overridable in tests
	now   func() time.Time
	randn func(n int64) int64
}

func NewTasks(store *storage.Store, log zerolog.Logger) *Tasks {
	return &Tasks{
		store: store,
		log:   log.With().Str("repo", "tasks").Logger(),
		now:   time.Now,
		randn: rand.Int63n,
	}
}

// TaskDraft carries the caller-supplied fields for Create. Everything else
// is populated with defaults.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     string
	Priority    model.Priority
	Category    model.Category
	Status      model.Status
}

// TaskPatch is a partial update: only non-nil fields are applied. The task
// ID can never be changed through a patch.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *model.Priority
	Category    *model.Category
	Status      *model.Status
	Completed   *bool
	CheckCount  *int
	Progress    *int
}

// DeletedID identifies a deleted record in a delete envelope.
type DeletedID struct {
	ID int64 `json:"id"`
}

// tasksWrapper is the legacy persisted shape {"tasks":[...]}. Reads accept
// it; writes always normalize to the bare array.
type tasksWrapper struct {
	Tasks []model.Task `json:"tasks"`
}

// loadAll reads the persisted collection. A missing or malformed value
// degrades to an empty list; only a storage failure is reported as err.
func (r *Tasks) loadAll() (tasks []model.Task, err error) {
	raw, found, err := r.store.Load(tasksCollection)
	if err != nil {
		return nil, err
	}
	if !found || raw == "" {
		return nil, nil
	}
	if tasks, jsonErr := decodeTasks([]byte(raw)); jsonErr == nil {
		return tasks, nil
	}
	r.log.Warn().Msg("stored tasks value is malformed, treating as empty")
	return nil, nil
}

func decodeTasks(raw []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err == nil {
		return tasks, nil
	}
	var wrapped tasksWrapper
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Tasks == nil {
		return nil, errNotATaskList
	}
	return wrapped.Tasks, nil
}

func (r *Tasks) saveAll(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return r.store.Save(tasksCollection, string(data))
}

// GetAll never fails the caller on read anomalies: a malformed or missing
// blob yields an empty list. Only an unavailable storage backend flips the
// success flag, and even then the data is a usable empty list.
func (r *Tasks) GetAll() Result[[]model.Task] {
	tasks, err := r.loadAll()
	if err != nil {
		r.log.Error().Err(err).Msg("storage unavailable")
		return Result[[]model.Task]{Success: false, Data: []model.Task{}, Message: err.Error()}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return ok(tasks, "tasks fetched successfully")
}

func (r *Tasks) GetByID(id int64) Result[*model.Task] {
	tasks, err := r.loadAll()
	if err != nil {
		return fail[*model.Task](err.Error())
	}
	for i := range tasks {
		if tasks[i].ID == id {
			t := tasks[i]
			return ok(&t, "task fetched successfully")
		}
	}
	return fail[*model.Task](MsgTaskNotFound)
}

func (r *Tasks) Create(draft TaskDraft) Result[*model.Task] {
	if strings.TrimSpace(draft.Title) == "" {
		return fail[*model.Task](MsgTitleRequired)
	}
	if strings.TrimSpace(draft.DueDate) == "" {
		return fail[*model.Task](MsgDueDateRequired)
	}

	tasks, err := r.loadAll()
	if err != nil {
		return fail[*model.Task](err.Error())
	}

	now := r.now().UTC().Format(time.RFC3339)
	task := model.Task{
		ID:          r.newID(tasks),
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Category:    draft.Category,
		Status:      draft.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityLow
	}
	if task.Category == "" {
		task.Category = model.CategoryWork
	}
	if task.Status == "" {
		task.Status = model.StatusTodo
	}

	tasks = append(tasks, task)
	if err := r.saveAll(tasks); err != nil {
		r.log.Error().Err(err).Msg("persist created task")
		return fail[*model.Task](err.Error())
	}
	r.log.Debug().Int64("task_id", task.ID).Msg("created task")
	return ok(&task, "task created successfully")
}

// newID generates a timestamp-based ID and retries until it is not a member
// of the existing set. Timestamp granularity alone is not trusted.
func (r *Tasks) newID(tasks []model.Task) int64 {
	existing := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		existing[t.ID] = struct{}{}
	}
	for {
		id := r.now().UnixMilli() + r.randn(10000)
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}

func (r *Tasks) Update(id int64, patch TaskPatch) Result[*model.Task] {
	tasks, err := r.loadAll()
	if err != nil {
		return fail[*model.Task](err.Error())
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fail[*model.Task](MsgTaskNotFound)
	}

	t := &tasks[idx]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.CheckCount != nil {
		t.CheckCount = *patch.CheckCount
	}
	if patch.Progress != nil {
		t.Progress = *patch.Progress
	}
	t.UpdatedAt = r.now().UTC().Format(time.RFC3339)

	if err := r.saveAll(tasks); err != nil {
		return fail[*model.Task](err.Error())
	}
	updated := tasks[idx]
	return ok(&updated, "task updated successfully")
}

func (r *Tasks) Delete(id int64) Result[DeletedID] {
	tasks, err := r.loadAll()
	if err != nil {
		return fail[DeletedID](err.Error())
	}

	filtered := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == len(tasks) {
		return fail[DeletedID](MsgTaskNotFound)
	}

	if err := r.saveAll(filtered); err != nil {
		return fail[DeletedID](err.Error())
	}
	r.log.Debug().Int64("task_id", id).Msg("deleted task")
	return ok(DeletedID{ID: id}, "task deleted successfully")
}

// ToggleComplete advances the check-increment protocol: each call bumps the
// check count, recomputes progress, and completes the task when the count
// reaches the threshold. Toggling an already-completed task is reported as
// a distinguishable no-op, not an error worth alarming on.
func (r *Tasks) ToggleComplete(id int64) Result[*model.Task] {
	current := r.GetByID(id)
	if !current.Success {
		return current
	}

	task := current.Data
	if task.Completed {
		res := fail[*model.Task](MsgAlreadyCompleted)
		res.Data = task
		return res
	}

	checkCount := task.CheckCount + 1
	completed := checkCount >= model.CheckThreshold
	progress := model.CheckProgress(checkCount)
	status := task.Status
	if status == "" {
		status = model.StatusTodo
	}
	if completed {
		status = model.StatusComplete
	}

	return r.Update(id, TaskPatch{
		CheckCount: &checkCount,
		Completed:  &completed,
		Progress:   &progress,
		Status:     &status,
	})
}
