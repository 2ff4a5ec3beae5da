package repo

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/model"
	"github.com/sadopc/taskdeck/internal/storage"
)

const notesCollection = "calendarNotes"

// Notes stores calendar notes keyed by ISO date (YYYY-MM-DD). It shares the
// blob store and the degrade-to-empty read policy with the other repos.
type Notes struct {
	store *storage.Store
	log   zerolog.Logger
}

func NewNotes(store *storage.Store, log zerolog.Logger) *Notes {
	return &Notes{
		store: store,
		log:   log.With().Str("repo", "notes").Logger(),
	}
}

func (r *Notes) loadAll() (map[string][]model.CalendarNote, error) {
	raw, found, err := r.store.Load(notesCollection)
	if err != nil {
		return nil, err
	}
	if !found || raw == "" {
		return map[string][]model.CalendarNote{}, nil
	}

	var notes map[string][]model.CalendarNote
	if err := json.Unmarshal([]byte(raw), &notes); err != nil || notes == nil {
		r.log.Warn().Msg("stored calendar notes are malformed, treating as empty")
		return map[string][]model.CalendarNote{}, nil
	}
	return notes, nil
}

func (r *Notes) saveAll(notes map[string][]model.CalendarNote) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return err
	}
	return r.store.Save(notesCollection, string(data))
}

// All returns every note, keyed by date.
func (r *Notes) All() Result[map[string][]model.CalendarNote] {
	notes, err := r.loadAll()
	if err != nil {
		return Result[map[string][]model.CalendarNote]{
			Success: false,
			Data:    map[string][]model.CalendarNote{},
			Message: err.Error(),
		}
	}
	return ok(notes, "notes fetched successfully")
}

// Add appends a note to the given date and returns it.
func (r *Notes) Add(date, text, timeOfDay string) Result[*model.CalendarNote] {
	if text == "" {
		return fail[*model.CalendarNote]("note text is required")
	}

	notes, err := r.loadAll()
	if err != nil {
		return fail[*model.CalendarNote](err.Error())
	}

	note := model.CalendarNote{
		ID:   uuid.NewString(),
		Text: text,
		Time: timeOfDay,
	}
	notes[date] = append(notes[date], note)

	if err := r.saveAll(notes); err != nil {
		return fail[*model.CalendarNote](err.Error())
	}
	return ok(&note, "note added successfully")
}

// Remove deletes the note with the given ID from a date. Date keys with no
// remaining notes are dropped from the map.
func (r *Notes) Remove(date, id string) Result[struct{}] {
	notes, err := r.loadAll()
	if err != nil {
		return fail[struct{}](err.Error())
	}

	day, found := notes[date]
	if !found {
		return fail[struct{}](MsgNoteNotFound)
	}

	kept := day[:0:0]
	for _, n := range day {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(day) {
		return fail[struct{}](MsgNoteNotFound)
	}

	if len(kept) == 0 {
		delete(notes, date)
	} else {
		notes[date] = kept
	}

	if err := r.saveAll(notes); err != nil {
		return fail[struct{}](err.Error())
	}
	return ok(struct{}{}, "note removed successfully")
}
