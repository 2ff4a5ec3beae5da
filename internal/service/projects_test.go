package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/taskdeck/internal/repo"
	"github.com/sadopc/taskdeck/internal/state"
	"github.com/sadopc/taskdeck/internal/storage"
)

func newTestProjectsEnv(t *testing.T) (*Projects, *state.Store) {
	t.Helper()
	s, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	st := state.New(state.Snapshot{}, zerolog.Nop())
	svc := NewProjects(repo.NewProjects(s, zerolog.Nop()), st, zerolog.Nop())
	return svc, st
}

func TestProjectLifecycleSyncsState(t *testing.T) {
	svc, st := newTestProjectsEnv(t)

	created := svc.CreateProject(repo.ProjectDraft{Title: "alpha"})
	require.True(t, created.Success)
	assert.Len(t, st.Get().Projects, 1)

	title := "alpha v2"
	updated := svc.UpdateProject(created.Data.ID, repo.ProjectPatch{Title: &title})
	require.True(t, updated.Success)
	assert.Equal(t, "alpha v2", st.Get().Projects[0].Title)

	deleted := svc.DeleteProject(created.Data.ID)
	require.True(t, deleted.Success)
	assert.Empty(t, st.Get().Projects)
	assert.Len(t, st.DeletedProjects(), 1, "deleted project moves to the audit list")
}

func TestStepProgress(t *testing.T) {
	svc, st := newTestProjectsEnv(t)
	created := svc.CreateProject(repo.ProjectDraft{Title: "stepper"})
	id := created.Data.ID

	res := svc.StepProgress(id)
	require.True(t, res.Success)
	assert.Equal(t, 20, res.Data.Progress)
	assert.Equal(t, 20, st.Get().Projects[0].Progress)

	// Four more steps reach exactly 100 and complete the project
	for range [4]struct{}{} {
		res = svc.StepProgress(id)
	}
	require.True(t, res.Success)
	assert.Equal(t, 100, res.Data.Progress)
	assert.True(t, res.Data.Completed)
}

func TestStepProgressCapped(t *testing.T) {
	svc, _ := newTestProjectsEnv(t)
	created := svc.CreateProject(repo.ProjectDraft{Title: "near done"})
	ninety := 90
	svc.UpdateProject(created.Data.ID, repo.ProjectPatch{Progress: &ninety})

	res := svc.StepProgress(created.Data.ID)
	require.True(t, res.Success)
	assert.Equal(t, 100, res.Data.Progress, "step never overshoots 100")
}

func TestStepProgressSkipsCompleted(t *testing.T) {
	svc, st := newTestProjectsEnv(t)
	created := svc.CreateProject(repo.ProjectDraft{Title: "done"})
	hundred := 100
	svc.UpdateProject(created.Data.ID, repo.ProjectPatch{Progress: &hundred})
	rev := st.Get().Projects[0].UpdatedAt

	res := svc.StepProgress(created.Data.ID)
	require.True(t, res.Success)
	assert.Equal(t, 100, res.Data.Progress)
	assert.Equal(t, rev, st.Get().Projects[0].UpdatedAt, "completed project must not be rewritten")
}

func TestStepProgressUnknownProject(t *testing.T) {
	svc, _ := newTestProjectsEnv(t)

	res := svc.StepProgress(404)
	assert.False(t, res.Success)
	assert.Equal(t, repo.MsgProjectNotFound, res.Message)
}

func TestProjectFailureSetsError(t *testing.T) {
	svc, st := newTestProjectsEnv(t)

	res := svc.CreateProject(repo.ProjectDraft{})
	require.False(t, res.Success)
	assert.NotEmpty(t, st.Get().Err)
	assert.False(t, st.Get().IsLoading)
}
