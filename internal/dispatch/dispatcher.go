// Package dispatch decides which view re-renders on each state transition.
// Naive re-rendering on every mutation causes duplicate work and flicker;
// the dispatcher tracks page/query/task deltas across notifications and
// fires exactly one render decision per notification.
package dispatch

import (
	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/state"
)

// Renderer is the view-layer contract the dispatcher drives.
type Renderer interface {
	// RenderBoard re-renders the dashboard board after a search is cleared.
	RenderBoard(snap state.Snapshot)
	// ShowPage hides other pages, shows the target page and renders it.
	ShowPage(page state.Page, snap state.Snapshot)
	// RenderCurrent re-renders the current page's content in place.
	RenderCurrent(page state.Page, snap state.Snapshot)
}

// Dispatcher is the state-store subscriber that routes notifications to the
// renderer. It must be subscribed once; Attach wires it up and returns the
// unsubscribe function.
type Dispatcher struct {
	renderer Renderer
	log      zerolog.Logger

	lastPage    state.Page
	lastQuery   string
	lastTaskRev uint64
}

func New(renderer Renderer, initial state.Snapshot, log zerolog.Logger) *Dispatcher {
	page := initial.CurrentPage
	if page == "" {
		page = state.PageDashboard
	}
	return &Dispatcher{
		renderer:    renderer,
		log:         log.With().Str("component", "dispatch").Logger(),
		lastPage:    page,
		lastQuery:   initial.SearchQuery,
		lastTaskRev: initial.TaskRev,
	}
}

// Attach subscribes the dispatcher to the store.
func (d *Dispatcher) Attach(store *state.Store) (unsubscribe func()) {
	return store.Subscribe(d.OnState)
}

// OnState applies the delta rules in priority order. Exactly one branch
// fires per notification:
//  1. an active search query changed while on the dashboard — the search
//     subsystem already rendered its results, so only record the delta;
//  2. the query was cleared on the dashboard — render the normal board;
//  3. the page changed — switch to and render the new page;
//  4. page and query stable but tasks changed — re-render in place.
func (d *Dispatcher) OnState(snap state.Snapshot) {
	page := snap.CurrentPage
	if page == "" {
		page = state.PageDashboard
	}
	query := snap.SearchQuery

	pageChanged := page != d.lastPage
	queryChanged := query != d.lastQuery

	switch {
	case query != "" && page == state.PageDashboard && queryChanged:
		d.lastQuery = query
		d.lastPage = page

	case query == "" && page == state.PageDashboard && queryChanged:
		d.renderer.RenderBoard(snap)
		d.lastQuery = ""
		d.lastPage = page

	case pageChanged:
		d.renderer.ShowPage(page, snap)
		d.lastPage = page
		d.lastQuery = query

	case snap.TaskRev != d.lastTaskRev:
		d.renderer.RenderCurrent(page, snap)
	}

	d.lastTaskRev = snap.TaskRev
}
