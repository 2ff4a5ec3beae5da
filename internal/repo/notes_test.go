package repo

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/sadopc/taskdeck/internal/storage"
)

func newTestNotes(t *testing.T) *Notes {
	t.Helper()
	s, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewNotes(s, zerolog.Nop())
}

func TestNotesAddAndAll(t *testing.T) {
	r := newTestNotes(t)

	res := r.Add("2026-09-01", "standup", "09:00")
	if !res.Success {
		t.Fatalf("add failed: %s", res.Message)
	}
	if res.Data.ID == "" {
		t.Fatal("note must get a generated ID")
	}

	r.Add("2026-09-01", "review", "")
	r.Add("2026-09-02", "retro", "15:00")

	all := r.All()
	if !all.Success {
		t.Fatalf("all failed: %s", all.Message)
	}
	if len(all.Data["2026-09-01"]) != 2 || len(all.Data["2026-09-02"]) != 1 {
		t.Fatalf("unexpected notes: %+v", all.Data)
	}
}

func TestNotesAddRequiresText(t *testing.T) {
	r := newTestNotes(t)

	if res := r.Add("2026-09-01", "", ""); res.Success {
		t.Fatal("empty note must be rejected")
	}
}

func TestNotesRemove(t *testing.T) {
	r := newTestNotes(t)
	note := r.Add("2026-09-01", "only one", "").Data

	res := r.Remove("2026-09-01", note.ID)
	if !res.Success {
		t.Fatalf("remove failed: %s", res.Message)
	}

	// The emptied date key is dropped entirely
	all := r.All().Data
	if _, found := all["2026-09-01"]; found {
		t.Fatal("empty date key must be dropped")
	}

	if res := r.Remove("2026-09-01", note.ID); res.Success {
		t.Fatal("removing a missing note must fail")
	}
	if res := r.Remove("2026-12-31", "nope"); res.Success || res.Message != MsgNoteNotFound {
		t.Fatalf("expected not found, got %+v", res)
	}
}

func TestNotesMalformedBlob(t *testing.T) {
	r := newTestNotes(t)

	if err := r.store.Save("calendarNotes", `"just a string"`); err != nil {
		t.Fatal(err)
	}
	all := r.All()
	if !all.Success || len(all.Data) != 0 {
		t.Fatalf("malformed blob must read as empty, got %+v", all)
	}
}

func TestPrefsFallback(t *testing.T) {
	s, err := storage.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	r := NewPrefs(s, zerolog.Nop())

	if got := r.Language("en"); got != "en" {
		t.Fatalf("expected fallback en, got %q", got)
	}
	r.SetLanguage("mn")
	if got := r.Language("en"); got != "mn" {
		t.Fatalf("expected persisted mn, got %q", got)
	}

	if got := r.Theme("light"); got != "light" {
		t.Fatalf("expected fallback light, got %q", got)
	}
	r.SetTheme("dark")
	if got := r.Theme("light"); got != "dark" {
		t.Fatalf("expected persisted dark, got %q", got)
	}
}
