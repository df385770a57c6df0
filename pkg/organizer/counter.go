package organizer

import (
	"sync"
	"time"

	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/serializer"
	"github.com/mediashelf/mediashelf/pkg/util"
	"github.com/samber/lo"
)

// RecountDelay debounce window for deferred reconciliation. Rapid
// successive mutations from one user action collapse into a single
// recount.
var RecountDelay = 2 * time.Second

var (
	recountMu    sync.Mutex
	recountTimer *time.Timer
)

// RecomputeAllCounts recounts every folder's membership straight from
// the relationship table and writes the result back onto the folder
// records. This is the only writer of Folder.Count.
func RecomputeAllCounts() error {
	counts, err := model.CountRelationsByFolder()
	if err != nil {
		return serializer.NewError(serializer.CodeDBError, "Failed to count folder relationships.", err)
	}

	folders, err := model.GetAllFolders()
	if err != nil {
		return serializer.NewError(serializer.CodeDBError, "Failed to list folders.", err)
	}

	for i := range folders {
		desired := counts[folders[i].ID]
		if folders[i].Count == desired {
			continue
		}
		if err := folders[i].SetCount(desired); err != nil {
			return serializer.NewError(serializer.CodeDBError, "Failed to write folder count.", err)
		}
	}
	return nil
}

// GetCountsSnapshot recomputes all counts and returns a read-only
// projection. The recompute always happens first, a pending deferred
// recount is never the source of freshness for this read.
func GetCountsSnapshot() (map[uint]model.FolderCount, error) {
	if err := RecomputeAllCounts(); err != nil {
		return nil, err
	}

	folders, err := model.GetAllFolders()
	if err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to list folders.", err)
	}

	snapshot := make(map[uint]model.FolderCount, len(folders))
	for _, folder := range folders {
		snapshot[folder.ID] = model.FolderCount{
			Name:  folder.Name,
			Slug:  folder.Slug,
			Count: folder.Count,
		}
	}
	return snapshot, nil
}

// ScheduleRecount schedules a deferred reconciliation. At most one job
// is pending at any time, scheduling again inside the window restarts
// it.
func ScheduleRecount() {
	recountMu.Lock()
	defer recountMu.Unlock()

	if recountTimer != nil {
		recountTimer.Stop()
	}
	recountTimer = time.AfterFunc(RecountDelay, func() {
		recountMu.Lock()
		recountTimer = nil
		recountMu.Unlock()

		if err := RecomputeAllCounts(); err != nil {
			util.Log().Warning("Deferred recount failed: %s", err)
		}
	})
}

// StopPendingRecount cancels a pending deferred reconciliation, used on
// shutdown. Counts are recomputed on the next read anyway.
func StopPendingRecount() {
	recountMu.Lock()
	defer recountMu.Unlock()

	if recountTimer != nil {
		recountTimer.Stop()
		recountTimer = nil
	}
}

// DisplayTotal returns the aggregated count shown for a parent folder,
// its own members plus every child's. Computed at read time, never
// stored.
func DisplayTotal(parent model.Folder, children []model.Folder) uint {
	return parent.Count + lo.SumBy(children, func(child model.Folder) uint {
		return child.Count
	})
}
