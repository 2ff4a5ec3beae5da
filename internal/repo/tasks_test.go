package repo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/storage"
)

func newTestTasks(t *testing.T) *Tasks {
	t.Helper()
	s, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewTasks(s, zerolog.Nop())
}

func mustCreate(t *testing.T, r *Tasks, draft TaskDraft) model.Task {
	t.Helper()
	res := r.Create(draft)
	if !res.Success {
		t.Fatalf("create failed: %s", res.Message)
	}
	return *res.Data
}

// ============================================================
// Create
// ============================================================

func TestCreateDefaults(t *testing.T) {
	r := newTestTasks(t)

	task := mustCreate(t, r, TaskDraft{Title: "write report", DueDate: "2026-09-05"})

	if task.ID == 0 {
		t.Fatal("expected generated ID")
	}
	if task.Priority != model.PriorityLow {
		t.Fatalf("expected default priority low, got %s", task.Priority)
	}
	if task.Category != model.CategoryWork {
		t.Fatalf("expected default category work, got %s", task.Category)
	}
	if task.Status != model.StatusTodo {
		t.Fatalf("expected default status todo, got %s", task.Status)
	}
	if task.Completed || task.CheckCount != 0 || task.Progress != 0 {
		t.Fatal("new task must start uncompleted with zero progress")
	}
	if task.CreatedAt == "" || task.CreatedAt != task.UpdatedAt {
		t.Fatalf("timestamps not initialized: created=%q updated=%q", task.CreatedAt, task.UpdatedAt)
	}
}

func TestCreateValidation(t *testing.T) {
	r := newTestTasks(t)

	res := r.Create(TaskDraft{Title: "   ", DueDate: "2026-09-05"})
	if res.Success || res.Message != MsgTitleRequired {
		t.Fatalf("expected title validation failure, got %+v", res)
	}

	res = r.Create(TaskDraft{Title: "x"})
	if res.Success || res.Message != MsgDueDateRequired {
		t.Fatalf("expected due date validation failure, got %+v", res)
	}

	// Nothing was persisted
	all := r.GetAll()
	if len(all.Data) != 0 {
		t.Fatalf("expected empty store, got %d tasks", len(all.Data))
	}
}

func TestCreateIDUniqueUnderCollisions(t *testing.T) {
	r := newTestTasks(t)

	// Freeze the clock and force the random component to collide first,
	// then yield a fresh value. The generator must keep retrying rather
	// than hand out a duplicate.
	r.now = func() time.Time { return time.UnixMilli(1000) }
	seq := []int64{7, 7, 7, 8}
	r.randn = func(n int64) int64 {
		v := seq[0]
		if len(seq) > 1 {
			seq = seq[1:]
		}
		return v
	}

	first := mustCreate(t, r, TaskDraft{Title: "a", DueDate: "2026-09-05"})
	second := mustCreate(t, r, TaskDraft{Title: "b", DueDate: "2026-09-05"})

	if first.ID != 1007 {
		t.Fatalf("expected first ID 1007, got %d", first.ID)
	}
	if second.ID != 1008 {
		t.Fatalf("expected collision retry to yield 1008, got %d", second.ID)
	}
}

// ============================================================
// GetAll / GetByID
// ============================================================

func TestGetAllEmpty(t *testing.T) {
	r := newTestTasks(t)

	res := r.GetAll()
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Data == nil || len(res.Data) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", res.Data)
	}
}

func TestGetAllMalformedBlob(t *testing.T) {
	r := newTestTasks(t)

	// Corrupt the persisted value directly. Reads must degrade to an
	// empty list without flipping the success flag.
	if err := r.store.Save("tasks", `{"oops": tru`); err != nil {
		t.Fatal(err)
	}

	res := r.GetAll()
	if !res.Success {
		t.Fatalf("malformed blob must not fail the read: %+v", res)
	}
	if len(res.Data) != 0 {
		t.Fatalf("expected empty list, got %d tasks", len(res.Data))
	}
}

func TestGetAllStorageError(t *testing.T) {
	s, err := storage.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	r := NewTasks(s, zerolog.Nop())
	s.Close()

	res := r.GetAll()
	if res.Success {
		t.Fatal("unavailable storage must flip the success flag")
	}
	if res.Data == nil {
		t.Fatal("data must still be a usable empty list")
	}
}

func TestGetAllAcceptsWrappedShape(t *testing.T) {
	r := newTestTasks(t)

	if err := r.store.Save("tasks", `{"tasks":[{"id":5,"title":"legacy"}]}`); err != nil {
		t.Fatal(err)
	}

	res := r.GetAll()
	if !res.Success || len(res.Data) != 1 || res.Data[0].ID != 5 {
		t.Fatalf("expected wrapped shape to decode, got %+v", res)
	}

	// Any write normalizes the stored shape to a bare array.
	mustCreate(t, r, TaskDraft{Title: "new", DueDate: "2026-09-05"})
	raw, _, err := r.store.Load("tasks")
	if err != nil {
		t.Fatal(err)
	}
	var arr []model.Task
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		t.Fatalf("stored value is not a bare array: %v", err)
	}
	if len(arr) != 2 {
		t.Fatalf("expected 2 tasks after normalization, got %d", len(arr))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	r := newTestTasks(t)

	res := r.GetByID(12345)
	if res.Success || res.Message != MsgTaskNotFound {
		t.Fatalf("expected not found, got %+v", res)
	}
}

// ============================================================
// Update / Delete
// ============================================================

func TestUpdateMergesPatch(t *testing.T) {
	r := newTestTasks(t)
	task := mustCreate(t, r, TaskDraft{Title: "draft", DueDate: "2026-09-05"})

	r.now = func() time.Time { return time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC) }
	title := "final"
	status := model.StatusInProgress
	res := r.Update(task.ID, TaskPatch{Title: &title, Status: &status})
	if !res.Success {
		t.Fatalf("update failed: %s", res.Message)
	}

	got := res.Data
	if got.Title != "final" || got.Status != model.StatusInProgress {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.DueDate != "2026-09-05" {
		t.Fatal("untouched fields must survive the patch")
	}
	if got.ID != task.ID {
		t.Fatal("ID must be immutable")
	}
	if got.UpdatedAt != "2026-09-02T12:00:00Z" {
		t.Fatalf("UpdatedAt not refreshed: %q", got.UpdatedAt)
	}
	if got.CreatedAt != task.CreatedAt {
		t.Fatal("CreatedAt must not change on update")
	}
}

func TestUpdateNotFound(t *testing.T) {
	r := newTestTasks(t)

	title := "x"
	res := r.Update(999, TaskPatch{Title: &title})
	if res.Success || res.Message != MsgTaskNotFound {
		t.Fatalf("expected not found, got %+v", res)
	}
}

func TestDelete(t *testing.T) {
	r := newTestTasks(t)
	task := mustCreate(t, r, TaskDraft{Title: "doomed", DueDate: "2026-09-05"})

	res := r.Delete(task.ID)
	if !res.Success || res.Data.ID != task.ID {
		t.Fatalf("delete failed: %+v", res)
	}

	if r.GetByID(task.ID).Success {
		t.Fatal("task still readable after delete")
	}

	res = r.Delete(task.ID)
	if res.Success || res.Message != MsgTaskNotFound {
		t.Fatalf("second delete must report not found, got %+v", res)
	}
}

// ============================================================
// ToggleComplete
// ============================================================

func TestToggleCompleteProtocol(t *testing.T) {
	r := newTestTasks(t)
	task := mustCreate(t, r, TaskDraft{Title: "steps", DueDate: "2026-09-05"})

	wantProgress := []int{17, 33, 50, 67, 83, 100}
	for i := 0; i < model.CheckThreshold; i++ {
		res := r.ToggleComplete(task.ID)
		if !res.Success {
			t.Fatalf("toggle %d failed: %s", i+1, res.Message)
		}
		if res.Data.CheckCount != i+1 {
			t.Fatalf("toggle %d: checkCount=%d", i+1, res.Data.CheckCount)
		}
		if res.Data.Progress != wantProgress[i] {
			t.Fatalf("toggle %d: progress=%d want %d", i+1, res.Data.Progress, wantProgress[i])
		}
	}

	final := r.GetByID(task.ID)
	if !final.Data.Completed {
		t.Fatal("task must be completed after reaching the threshold")
	}
	if final.Data.Status != model.StatusComplete {
		t.Fatalf("expected status complete, got %s", final.Data.Status)
	}
}

func TestToggleCompleteAlreadyCompleted(t *testing.T) {
	r := newTestTasks(t)
	task := mustCreate(t, r, TaskDraft{Title: "done", DueDate: "2026-09-05"})

	for i := 0; i < model.CheckThreshold; i++ {
		r.ToggleComplete(task.ID)
	}
	before := *r.GetByID(task.ID).Data

	res := r.ToggleComplete(task.ID)
	if res.Success {
		t.Fatal("toggling a completed task must not report success")
	}
	if res.Message != MsgAlreadyCompleted {
		t.Fatalf("expected %q, got %q", MsgAlreadyCompleted, res.Message)
	}
	if res.Data == nil || !res.Data.Completed {
		t.Fatal("envelope must carry the unchanged task")
	}

	after := *r.GetByID(task.ID).Data
	if after != before {
		t.Fatalf("record changed by a no-op toggle:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestToggleCompleteNotFound(t *testing.T) {
	r := newTestTasks(t)

	res := r.ToggleComplete(404)
	if res.Success || res.Message != MsgTaskNotFound {
		t.Fatalf("expected not found, got %+v", res)
	}
}

// ============================================================
// Status migration
// ============================================================

func TestMigrateStatuses(t *testing.T) {
	r := newTestTasks(t)

	legacy := []model.Task{
		{ID: 1, Title: "done", Completed: true},
		{ID: 2, Title: "open"},
		{ID: 3, Title: "boarded", Status: model.StatusInProgress},
	}
	data, _ := json.Marshal(legacy)
	if err := r.store.Save("tasks", string(data)); err != nil {
		t.Fatal(err)
	}

	changed, err := r.MigrateStatuses()
	if err != nil {
		t.Fatal(err)
	}
	if changed != 2 {
		t.Fatalf("expected 2 backfilled, got %d", changed)
	}

	all := r.GetAll().Data
	if all[0].Status != model.StatusComplete {
		t.Fatalf("completed task: status=%s", all[0].Status)
	}
	if all[1].Status != model.StatusTodo {
		t.Fatalf("open task: status=%s", all[1].Status)
	}
	if all[2].Status != model.StatusInProgress {
		t.Fatalf("already-set status must not change: %s", all[2].Status)
	}

	// Second run is a no-op
	changed, err = r.MigrateStatuses()
	if err != nil || changed != 0 {
		t.Fatalf("expected idempotent migration, got changed=%d err=%v", changed, err)
	}
}
