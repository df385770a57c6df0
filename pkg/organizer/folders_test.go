package organizer

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/serializer"
	"github.com/stretchr/testify/assert"
)

func appErrorCode(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(serializer.AppError)
	if !ok {
		t.Fatalf("expected an AppError, got %T", err)
	}
	return appErr.Code
}

func TestCreateFolder_InvalidName(t *testing.T) {
	asserts := assert.New(t)

	_, err := CreateFolder("", 0)
	asserts.Equal(serializer.CodeInvalidName, appErrorCode(t, err))

	_, err = CreateFolder("   ", 0)
	asserts.Equal(serializer.CodeInvalidName, appErrorCode(t, err))

	_, err = CreateFolder("2024", 0)
	asserts.Equal(serializer.CodeInvalidName, appErrorCode(t, err))
}

func TestCreateFolder_TopLevel(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").WithArgs("my-photos", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT(.+)").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	folder, err := CreateFolder(" My Photos ", 0)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.Equal("My Photos", folder.Name)
	asserts.Equal("my-photos", folder.Slug)
	asserts.Nil(folder.ParentID)
	asserts.EqualValues(3, folder.ID)
}

func TestCreateFolder_ParentNotFound(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err := CreateFolder("Child", 99)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.Equal(serializer.CodeParentNotFound, appErrorCode(t, err))
}

func TestCreateFolder_CannotNestUnderUnassigned(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(9, model.UnassignedSlug))
	_, err := CreateFolder("Child", 9)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.Equal(serializer.CodeCannotNestUnderUnassigned, appErrorCode(t, err))
}

func TestCreateFolder_DepthLimit(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "parent_id"}).AddRow(4, "raw", 2))
	_, err := CreateFolder("Grandchild", 4)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.Equal(serializer.CodeDepthLimitExceeded, appErrorCode(t, err))
}

func TestCreateFolder_UnderParent(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(2, "photos"))
	mock.ExpectQuery("SELECT(.+)").WithArgs("raw", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT(.+)").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	folder, err := CreateFolder("Raw", 2)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.NotNil(folder.ParentID)
	asserts.EqualValues(2, *folder.ParentID)
}

func TestRenameFolder(t *testing.T) {
	asserts := assert.New(t)

	// Not found
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		_, err := RenameFolder(99, "Videos")
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.Equal(serializer.CodeNotFound, appErrorCode(t, err))
	}

	// The Unassigned folder is protected
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs(9).
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(9, model.UnassignedSlug))
		_, err := RenameFolder(9, "Videos")
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.Equal(serializer.CodeProtectedFolder, appErrorCode(t, err))
	}

	// Numeric name rejected after the fetch
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(2, "photos"))
		_, err := RenameFolder(2, "42")
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.Equal(serializer.CodeInvalidName, appErrorCode(t, err))
	}

	// Success, slug rederived excluding the folder itself
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(2, "photos"))
		mock.ExpectQuery("SELECT(.+)").WithArgs("videos", 2).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		folder, err := RenameFolder(2, "Videos")
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Equal("Videos", folder.Name)
		asserts.Equal("videos", folder.Slug)
	}
}

func TestDeleteFolder_Protected(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(9, model.UnassignedSlug))
	_, err := DeleteFolder(context.Background(), 9)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.Equal(serializer.CodeProtectedFolder, appErrorCode(t, err))
}

func TestDeleteFolder_CountsOnlyNewlyMoved(t *testing.T) {
	asserts := assert.New(t)

	// Folder 2 has members 10 and 11, member 10 is abnormally already
	// related to Unassigned and must not inflate the moved count
	mock.ExpectQuery("SELECT(.+)").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(2, "photos"))
	mock.ExpectQuery("SELECT(.+)").WithArgs(model.UnassignedSlug).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(9, model.UnassignedSlug))
	mock.ExpectQuery("SELECT(.+)").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"attachment_id"}).AddRow(10).AddRow(11))

	// Attachment 10, already present in Unassigned
	mock.ExpectQuery("SELECT count(.+)").WithArgs(10, 9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE(.+)").WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Attachment 11, newly moved
	mock.ExpectQuery("SELECT count(.+)").WithArgs(11, 9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE(.+)").WithArgs(11).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT(.+)").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	// Children promoted, folder row hard deleted
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE(.+)").WillReturnResult(sqlmock.NewResult(1, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	expectNoChangeRecount()

	moved, err := DeleteFolder(context.Background(), 2)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.Equal(1, moved)
}

func TestDeleteFolder_AbortsWhenMemberMoveFails(t *testing.T) {
	asserts := assert.New(t)

	// The member cannot be reassigned, so the folder must survive and
	// the deletion must surface an error the caller can retry on
	mock.ExpectQuery("SELECT(.+)").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(2, "photos"))
	mock.ExpectQuery("SELECT(.+)").WithArgs(model.UnassignedSlug).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(9, model.UnassignedSlug))
	mock.ExpectQuery("SELECT(.+)").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"attachment_id"}).AddRow(10))

	mock.ExpectQuery("SELECT count(.+)").WithArgs(10, 9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE(.+)").WithArgs(10).WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	// No promotion, no folder delete, no recount
	moved, err := DeleteFolder(context.Background(), 2)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.Equal(serializer.CodeDBError, appErrorCode(t, err))
	asserts.Equal(0, moved)
}

func TestDeleteFolder_FreesSlugForReuse(t *testing.T) {
	asserts := assert.New(t)

	// Empty folder deleted, then a folder with the same name gets the
	// original slug back, not a suffixed one
	mock.ExpectQuery("SELECT(.+)").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(2, "photos"))
	mock.ExpectQuery("SELECT(.+)").WithArgs(model.UnassignedSlug).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(9, model.UnassignedSlug))
	mock.ExpectQuery("SELECT(.+)").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"attachment_id"}))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE(.+)").WillReturnResult(sqlmock.NewResult(1, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	expectNoChangeRecount()

	moved, err := DeleteFolder(context.Background(), 2)
	asserts.NoError(err)
	asserts.Equal(0, moved)

	mock.ExpectQuery("SELECT(.+)").WithArgs("photos", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT(.+)").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	folder, err := CreateFolder("Photos", 0)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.Equal("photos", folder.Slug)
}

func TestListFolders(t *testing.T) {
	asserts := assert.New(t)

	// All folders
	{
		mock.ExpectQuery("SELECT(.+)").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(9))
		folders, err := ListFolders(true)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Len(folders, 3)
	}

	// Only folders with members, Unassigned always included
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs(model.UnassignedSlug).
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "count"}).
				AddRow(2, "photos", 3).
				AddRow(9, model.UnassignedSlug, 0))
		folders, err := ListFolders(false)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Len(folders, 2)
	}
}

func TestGetOrganized(t *testing.T) {
	asserts := assert.New(t)

	// Full partition
	{
		mock.ExpectQuery("SELECT(.+)").
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "parent_id"}).
				AddRow(2, "photos", nil).
				AddRow(4, "raw", 2).
				AddRow(9, model.UnassignedSlug, nil))
		organized, err := GetOrganized()
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.EqualValues(9, organized.Unassigned.ID)
		asserts.Len(organized.Parents, 1)
		asserts.Len(organized.ChildrenByParent[2], 1)
	}

	// Unassigned created lazily when absent
	{
		mock.ExpectQuery("SELECT(.+)").
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "parent_id"}).
				AddRow(2, "photos", nil))
		mock.ExpectQuery("SELECT(.+)").WithArgs(model.UnassignedSlug).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT(.+)").WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectCommit()
		organized, err := GetOrganized()
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.EqualValues(9, organized.Unassigned.ID)
	}
}
