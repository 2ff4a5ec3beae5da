package repo

import (
	"time"

	"github.com/sadopc/taskdeck/internal/model"
)

// MigrateStatuses backfills the status field on tasks persisted before the
// kanban board existed: completed tasks become complete, the rest todo.
// Run once at startup, before the first render. Returns the number of tasks
// that were backfilled.
func (r *Tasks) MigrateStatuses() (int, error) {
	tasks, err := r.loadAll()
	if err != nil {
		return 0, err
	}

	changed := 0
	now := r.now().UTC().Format(time.RFC3339)
	for i := range tasks {
		if tasks[i].Status != "" {
			continue
		}
		if tasks[i].Completed {
			tasks[i].Status = model.StatusComplete
		} else {
			tasks[i].Status = model.StatusTodo
		}
		tasks[i].UpdatedAt = now
		changed++
	}

	if changed == 0 {
		return 0, nil
	}
	if err := r.saveAll(tasks); err != nil {
		return 0, err
	}
	r.log.Info().Int("backfilled", changed).Msg("migrated task statuses")
	return changed, nil
}
