package dispatch

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/state"
)

// fakeRenderer counts render decisions.
type fakeRenderer struct {
	boardRenders   int
	pageShows      []state.Page
	currentRenders []state.Page
}

func (f *fakeRenderer) RenderBoard(state.Snapshot) { f.boardRenders++ }
func (f *fakeRenderer) ShowPage(page state.Page, _ state.Snapshot) {
	f.pageShows = append(f.pageShows, page)
}
func (f *fakeRenderer) RenderCurrent(page state.Page, _ state.Snapshot) {
	f.currentRenders = append(f.currentRenders, page)
}

func (f *fakeRenderer) total() int {
	return f.boardRenders + len(f.pageShows) + len(f.currentRenders)
}

func newTestDispatch(t *testing.T) (*state.Store, *fakeRenderer) {
	t.Helper()
	st := state.New(state.Snapshot{}, zerolog.Nop())
	r := &fakeRenderer{}
	d := New(r, st.Get(), zerolog.Nop())
	unsubscribe := d.Attach(st)
	t.Cleanup(unsubscribe)
	return st, r
}

func TestQueryChangeOnDashboardRendersNothing(t *testing.T) {
	st, r := newTestDispatch(t)

	st.BeginSearch("foo")

	assert.Zero(t, r.total(), "search rendering belongs to the search subsystem")
}

func TestQueryClearedRendersBoardOnce(t *testing.T) {
	st, r := newTestDispatch(t)
	st.BeginSearch("foo")

	st.SetSearchQuery("")

	assert.Equal(t, 1, r.boardRenders)
	assert.Equal(t, 1, r.total(), "exactly one render decision")
}

func TestPageChangeShowsPage(t *testing.T) {
	st, r := newTestDispatch(t)

	st.SetCurrentPage(state.PageAnalytics)

	require.Equal(t, []state.Page{state.PageAnalytics}, r.pageShows)
	assert.Equal(t, 1, r.total())
}

func TestTaskChangeRerendersInPlace(t *testing.T) {
	st, r := newTestDispatch(t)
	st.SetCurrentPage(state.PageTaskList)
	r.pageShows = nil

	st.AddTask(model.Task{ID: 1, Title: "new"})

	require.Equal(t, []state.Page{state.PageTaskList}, r.currentRenders)
	assert.Equal(t, 1, r.total(), "no page switch, no board render")
}

func TestStableStateRendersNothing(t *testing.T) {
	st, r := newTestDispatch(t)

	// Actions that change neither page, query nor tasks
	st.SetLoading(true)
	st.SetLoading(false)
	st.SetError("x")
	st.SetTheme(state.ThemeDark)

	assert.Zero(t, r.total())
}

func TestSearchLifecycleScenario(t *testing.T) {
	// Search for "foo", clear it, then mutate a task: one search render,
	// one board render, one in-place render, and never two renders for a
	// single notification.
	st := state.New(state.Snapshot{}, zerolog.Nop())
	r := &fakeRenderer{}
	d := New(r, st.Get(), zerolog.Nop())
	t.Cleanup(d.Attach(st))
	sr := &fakeSearchRenderer{}
	ctl := NewSearchController(st, sr, zerolog.Nop())

	ctl.SetQuery("foo")
	assert.Equal(t, 1, sr.calls, "query set: search results rendered once")
	assert.Zero(t, r.total(), "query set: dispatcher stays quiet")

	ctl.SetQuery("")
	assert.Equal(t, 1, sr.calls, "clearing does not re-render results")
	assert.Equal(t, 1, r.boardRenders, "clearing restores the board once")

	st.AddTask(model.Task{ID: 1})
	assert.Len(t, r.currentRenders, 1, "task change re-renders in place")
	assert.Equal(t, 2, r.total())
}

func TestSearchFromOtherPageForcesDashboardSilently(t *testing.T) {
	st := state.New(state.Snapshot{CurrentPage: state.PageSettings}, zerolog.Nop())
	r := &fakeRenderer{}
	d := New(r, st.Get(), zerolog.Nop())
	t.Cleanup(d.Attach(st))
	sr := &fakeSearchRenderer{}
	ctl := NewSearchController(st, sr, zerolog.Nop())

	ctl.SetQuery("report")

	assert.Equal(t, state.PageDashboard, st.Get().CurrentPage)
	assert.Equal(t, 1, sr.calls)
	assert.Zero(t, r.total(), "the atomic page+query update must not trigger ShowPage")
}

func TestTaskRevAlwaysTracked(t *testing.T) {
	// A task change that arrives in the same notification as a page change
	// must not cause a second in-place render afterwards.
	st, r := newTestDispatch(t)

	st.AddTask(model.Task{ID: 1}) // dashboard, in-place render
	st.SetCurrentPage(state.PageAnalytics)
	st.SetCurrentPage(state.PageDashboard)

	assert.Len(t, r.currentRenders, 1)
	assert.Len(t, r.pageShows, 2)
}
