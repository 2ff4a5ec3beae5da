package repo

import (
	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/storage"
)

const (
	languageCollection = "language"
	themeCollection    = "theme"
)

// Prefs persists the language and theme choices as plain strings.
type Prefs struct {
	store *storage.Store
	log   zerolog.Logger
}

func NewPrefs(store *storage.Store, log zerolog.Logger) *Prefs {
	return &Prefs{
		store: store,
		log:   log.With().Str("repo", "prefs").Logger(),
	}
}

// Language returns the persisted language, or fallback when unset.
func (r *Prefs) Language(fallback string) string {
	return r.load(languageCollection, fallback)
}

func (r *Prefs) SetLanguage(language string) {
	r.save(languageCollection, language)
}

// Theme returns the persisted theme, or fallback when unset.
func (r *Prefs) Theme(fallback string) string {
	return r.load(themeCollection, fallback)
}

func (r *Prefs) SetTheme(theme string) {
	r.save(themeCollection, theme)
}

func (r *Prefs) load(name, fallback string) string {
	value, found, err := r.store.Load(name)
	if err != nil {
		r.log.Error().Err(err).Str("pref", name).Msg("load preference")
		return fallback
	}
	if !found || value == "" {
		return fallback
	}
	return value
}

func (r *Prefs) save(name, value string) {
	if err := r.store.Save(name, value); err != nil {
		r.log.Error().Err(err).Str("pref", name).Msg("save preference")
	}
}
