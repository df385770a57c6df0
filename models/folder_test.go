package model

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestFolder_Create(t *testing.T) {
	asserts := assert.New(t)
	folder := Folder{Name: "Photos", Slug: "photos"}

	// Success
	{
		mock.ExpectBegin()
		mock.ExpectExec("INSERT(.+)").WillReturnResult(sqlmock.NewResult(5, 1))
		mock.ExpectCommit()
		id, err := folder.Create()
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.EqualValues(5, id)
	}

	// Failure
	{
		folder := Folder{Name: "Photos", Slug: "photos"}
		mock.ExpectBegin()
		mock.ExpectExec("INSERT(.+)").WillReturnError(errors.New("error"))
		mock.ExpectRollback()
		id, err := folder.Create()
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.Error(err)
		asserts.EqualValues(0, id)
	}
}

func TestFolder_IsUnassigned(t *testing.T) {
	asserts := assert.New(t)
	asserts.True((&Folder{Slug: UnassignedSlug}).IsUnassigned())
	asserts.False((&Folder{Slug: "photos"}).IsUnassigned())
}

func TestFolder_IsChild(t *testing.T) {
	asserts := assert.New(t)
	parent := uint(3)
	zero := uint(0)
	asserts.True((&Folder{ParentID: &parent}).IsChild())
	asserts.False((&Folder{ParentID: &zero}).IsChild())
	asserts.False((&Folder{}).IsChild())
}

func TestFolder_Rename(t *testing.T) {
	asserts := assert.New(t)
	folder := Folder{}
	folder.ID = 2

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	err := folder.Rename("Videos", "videos")
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
}

func TestFolder_SetCount(t *testing.T) {
	asserts := assert.New(t)
	folder := Folder{}
	folder.ID = 2

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	err := folder.SetCount(5)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
}

func TestFolder_Delete(t *testing.T) {
	asserts := assert.New(t)
	folder := Folder{}
	folder.ID = 2

	// Hard delete, not a soft-delete UPDATE
	mock.ExpectBegin()
	mock.ExpectExec("DELETE(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	err := folder.Delete()
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
}

func TestFolder_DeleteFreesSlug(t *testing.T) {
	asserts := assert.New(t)
	folder := Folder{Name: "Photos", Slug: "photos"}
	folder.ID = 2

	mock.ExpectBegin()
	mock.ExpectExec("DELETE(.+)").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	asserts.NoError(folder.Delete())

	// With the row gone the slug is available again without a suffix
	mock.ExpectQuery("SELECT(.+)").WithArgs("photos", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	slug, err := UniqueSlug("photos", 0)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.Equal("photos", slug)
}

func TestGetFolderByID(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Photos"))
	folder, err := GetFolderByID(1)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.Equal("Photos", folder.Name)
}

func TestGetFolderBySlug(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").WithArgs("photos").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(1, "photos"))
	folder, err := GetFolderBySlug("photos")
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.EqualValues(1, folder.ID)
}

func TestGetAllFolders(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	folders, err := GetAllFolders()
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.Len(folders, 2)
}

func TestGetFoldersWithMembers(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectQuery("SELECT(.+)").WithArgs(UnassignedSlug).
		WillReturnRows(sqlmock.NewRows([]string{"id", "count"}).AddRow(1, 0).AddRow(2, 3))
	folders, err := GetFoldersWithMembers()
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
	asserts.Len(folders, 2)
}

func TestPromoteChildren(t *testing.T) {
	asserts := assert.New(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE(.+)").WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()
	err := PromoteChildren(3)
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)
}

func TestUniqueSlug(t *testing.T) {
	asserts := assert.New(t)

	// No collision
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs("photos", 0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		slug, err := UniqueSlug("photos", 0)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Equal("photos", slug)
	}

	// One collision, suffix appended
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs("photos", 0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("SELECT(.+)").WithArgs("photos-2", 0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		slug, err := UniqueSlug("photos", 0)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Equal("photos-2", slug)
	}

	// Empty base falls back to a generic slug
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs("folder", 0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		slug, err := UniqueSlug("", 0)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Equal("folder", slug)
	}
}

func TestGetOrCreateUnassigned(t *testing.T) {
	asserts := assert.New(t)

	// Already exists
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs(UnassignedSlug).
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(9, UnassignedSlug))
		folder, err := GetOrCreateUnassigned()
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.EqualValues(9, folder.ID)
	}

	// First access creates the row
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs(UnassignedSlug).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT(.+)").WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectCommit()
		folder, err := GetOrCreateUnassigned()
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.EqualValues(9, folder.ID)
	}

	// Lost the creation race, resolves to the winner's row
	{
		mock.ExpectQuery("SELECT(.+)").WithArgs(UnassignedSlug).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT(.+)").WillReturnError(errors.New("UNIQUE constraint failed"))
		mock.ExpectRollback()
		mock.ExpectQuery("SELECT(.+)").WithArgs(UnassignedSlug).
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(9, UnassignedSlug))
		folder, err := GetOrCreateUnassigned()
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.EqualValues(9, folder.ID)
	}
}
