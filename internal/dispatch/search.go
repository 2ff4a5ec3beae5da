package dispatch

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/state"
)

// SearchRenderer shows a result set on the dashboard. Owned by the search
// subsystem, not the dispatcher, so a query change never renders twice.
type SearchRenderer interface {
	RenderSearchResults(tasks []model.Task, projects []model.Project, query string)
}

// SearchController runs searches against the state snapshot and renders the
// results directly. An explicit in-flight flag guards against reentry: a
// listener reacting to the search's own state update cannot start a second
// search (idle -> searching -> idle).
type SearchController struct {
	state    *state.Store
	renderer SearchRenderer
	log      zerolog.Logger

	searching bool
}

func NewSearchController(st *state.Store, renderer SearchRenderer, log zerolog.Logger) *SearchController {
	return &SearchController{
		state:    st,
		renderer: renderer,
		log:      log.With().Str("component", "search").Logger(),
	}
}

// SetQuery runs one search pass for the given query. An empty query clears
// the search; the dispatcher then restores the normal board.
func (c *SearchController) SetQuery(query string) {
	if c.searching {
		c.log.Debug().Str("query", query).Msg("search already in flight, dropping")
		return
	}
	c.searching = true
	defer func() { c.searching = false }()

	if strings.TrimSpace(query) == "" {
		c.state.SetSearchQuery("")
		return
	}

	snap := c.state.Get()
	tasks, projects := Filter(snap.Tasks, snap.Projects, query)

	// Query and forced dashboard page land in one update; the dispatcher
	// sees the query delta and leaves rendering to us.
	c.state.BeginSearch(query)
	c.renderer.RenderSearchResults(tasks, projects, query)
}

// Filter matches tasks and projects whose title or description contains the
// query, case-insensitively.
func Filter(tasks []model.Task, projects []model.Project, query string) ([]model.Task, []model.Project) {
	q := strings.ToLower(strings.TrimSpace(query))

	var matchedTasks []model.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			matchedTasks = append(matchedTasks, t)
		}
	}

	var matchedProjects []model.Project
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			matchedProjects = append(matchedProjects, p)
		}
	}
	return matchedTasks, matchedProjects
}
