package organizer

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	model "github.com/mediashelf/mediashelf/models"
	"github.com/stretchr/testify/assert"
)

func TestRecomputeAllCounts(t *testing.T) {
	asserts := assert.New(t)

	// Folder 2's stored count is stale and gets rewritten, folder 9 is
	// already correct and is left alone
	mock.ExpectQuery("SELECT(.+)").
		WillReturnRows(sqlmock.NewRows([]string{"folder_id", "total"}).AddRow(2, 3))
	mock.ExpectQuery("SELECT(.+)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "count"}).
			AddRow(2, "photos", 1).
			AddRow(9, model.UnassignedSlug, 0))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := RecomputeAllCounts()
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
}

func TestGetCountsSnapshot(t *testing.T) {
	asserts := assert.New(t)

	// The recompute always runs first, the snapshot reflects ground truth
	mock.ExpectQuery("SELECT(.+)").
		WillReturnRows(sqlmock.NewRows([]string{"folder_id", "total"}).AddRow(2, 3))
	mock.ExpectQuery("SELECT(.+)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "count"}).
			AddRow(2, "photos", 1).
			AddRow(9, model.UnassignedSlug, 0))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT(.+)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "count"}).
			AddRow(2, "Photos", "photos", 3).
			AddRow(9, model.UnassignedName, model.UnassignedSlug, 0))

	snapshot, err := GetCountsSnapshot()
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.EqualValues(3, snapshot[2].Count)
	asserts.EqualValues(0, snapshot[9].Count)
}

func TestScheduleRecount_Debounce(t *testing.T) {
	asserts := assert.New(t)

	old := RecountDelay
	RecountDelay = 50 * time.Millisecond
	defer func() {
		StopPendingRecount()
		RecountDelay = old
	}()

	// Two schedules inside the window collapse into a single recount run
	expectNoChangeRecount()
	ScheduleRecount()
	ScheduleRecount()

	time.Sleep(200 * time.Millisecond)
	asserts.NoError(mock.ExpectationsWereMet())
}

func TestStopPendingRecount(t *testing.T) {
	asserts := assert.New(t)

	old := RecountDelay
	RecountDelay = 50 * time.Millisecond
	defer func() { RecountDelay = old }()

	// Cancelled before the window elapses, no queries are issued
	ScheduleRecount()
	StopPendingRecount()

	time.Sleep(200 * time.Millisecond)
	asserts.NoError(mock.ExpectationsWereMet())
}

func TestDisplayTotal(t *testing.T) {
	asserts := assert.New(t)

	parent := model.Folder{Count: 2}
	children := []model.Folder{{Count: 3}, {Count: 0}, {Count: 1}}
	asserts.EqualValues(6, DisplayTotal(parent, children))
	asserts.EqualValues(2, DisplayTotal(parent, nil))
}
