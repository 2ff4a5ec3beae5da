package repo

import (
	"fmt"
	"time"

	"github.com/sadopc/taskdeck/internal/model"
)

// ExportVersion identifies the snapshot format produced by Export.
const ExportVersion = "1.0"

// ExportSnapshot is the versioned handoff format for task data.
type ExportSnapshot struct {
	Version    string       `json:"version"`
	ExportDate string       `json:"exportDate"`
	Tasks      []model.Task `json:"tasks"`
}

// ImportResult extends the envelope with the count of records actually
// inserted.
type ImportResult struct {
	Success  bool         `json:"success"`
	Data     []model.Task `json:"data"`
	Imported int          `json:"imported"`
	Message  string       `json:"message"`
}

// Export produces a versioned snapshot of the stored tasks. Pure read.
func (r *Tasks) Export() Result[ExportSnapshot] {
	tasks, err := r.loadAll()
	if err != nil {
		return fail[ExportSnapshot](err.Error())
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	snapshot := ExportSnapshot{
		Version:    ExportVersion,
		ExportDate: r.now().UTC().Format(time.RFC3339),
		Tasks:      tasks,
	}
	return ok(snapshot, "tasks exported successfully")
}

// Import merges an external task list into storage. The payload may be a
// bare task array or a {"tasks":[...]} object; anything else rejects the
// whole import. Records whose ID already exists are skipped, never
// overwritten.
func (r *Tasks) Import(payload []byte) ImportResult {
	incoming, err := decodeTasks(payload)
	if err != nil {
		return ImportResult{Success: false, Message: MsgInvalidImport}
	}

	existing, err := r.loadAll()
	if err != nil {
		return ImportResult{Success: false, Message: err.Error()}
	}

	existingIDs := make(map[int64]struct{}, len(existing))
	for _, t := range existing {
		existingIDs[t.ID] = struct{}{}
	}

	merged := existing
	inserted := 0
	for _, t := range incoming {
		if _, dup := existingIDs[t.ID]; dup {
			continue
		}
		existingIDs[t.ID] = struct{}{}
		merged = append(merged, t)
		inserted++
	}

	if err := r.saveAll(merged); err != nil {
		return ImportResult{Success: false, Message: err.Error()}
	}

	r.log.Info().Int("imported", inserted).Int("skipped", len(incoming)-inserted).Msg("imported tasks")
	return ImportResult{
		Success:  true,
		Data:     merged,
		Imported: inserted,
		Message:  fmt.Sprintf("successfully imported %d tasks", inserted),
	}
}
