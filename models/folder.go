package model

import (
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// Reserved attributes of the default folder. The row carrying this slug
// can never be renamed, deleted or nested under.
const (
	UnassignedSlug        = "unassigned"
	UnassignedName        = "Unassigned"
	UnassignedDescription = "Media that has not been organized into a folder yet."
)

// Folder a named, optionally one-level-nested tag applied to attachments
type Folder struct {
	gorm.Model
	Name        string `gorm:"size:255"`
	Slug        string `gorm:"size:255;unique_index:idx_folder_slug"`
	ParentID    *uint  `gorm:"index:parent_id"`
	Description string `gorm:"type:text"`

	// Count cached number of member attachments. Derived from the
	// relationship table, the recount is its only writer.
	Count uint
}

// FolderCount read-only projection of a folder's recomputed count
type FolderCount struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count uint   `json:"count"`
}

// Create inserts the folder record
func (folder *Folder) Create() (uint, error) {
	if err := DB.Create(folder).Error; err != nil {
		util.Log().Warning("Failed to insert folder record: %s", err)
		return 0, err
	}
	return folder.ID, nil
}

// IsUnassigned returns whether this is the reserved default folder
func (folder *Folder) IsUnassigned() bool {
	return folder.Slug == UnassignedSlug
}

// IsChild returns whether the folder is nested under a parent
func (folder *Folder) IsChild() bool {
	return folder.ParentID != nil && *folder.ParentID != 0
}

// Rename updates the folder's name and slug
func (folder *Folder) Rename(name, slug string) error {
	return DB.Model(folder).Updates(map[string]interface{}{
		"name": name,
		"slug": slug,
	}).Error
}

// SetCount writes the cached member count
func (folder *Folder) SetCount(count uint) error {
	return DB.Model(folder).Update("count", count).Error
}

// Delete removes the folder record permanently. The slug carries a
// unique index that covers soft-deleted rows, so the row must go for
// the slug to return to the namespace.
func (folder *Folder) Delete() error {
	return DB.Unscoped().Delete(folder).Error
}

// GetFolderByID finds a folder by primary key
func GetFolderByID(id uint) (Folder, error) {
	var folder Folder
	result := DB.First(&folder, id)
	return folder, result.Error
}

// GetFolderBySlug finds a folder by its slug
func GetFolderBySlug(slug string) (Folder, error) {
	var folder Folder
	result := DB.Where("slug = ?", slug).First(&folder)
	return folder, result.Error
}

// GetAllFolders returns every folder
func GetAllFolders() ([]Folder, error) {
	var folders []Folder
	result := DB.Order("id asc").Find(&folders)
	return folders, result.Error
}

// GetFoldersWithMembers returns folders with at least one member. The
// Unassigned folder is always included.
func GetFoldersWithMembers() ([]Folder, error) {
	var folders []Folder
	result := DB.Where("count > 0 OR slug = ?", UnassignedSlug).Order("id asc").Find(&folders)
	return folders, result.Error
}

// PromoteChildren lifts every child of the given folder to top level
func PromoteChildren(parentID uint) error {
	return DB.Model(&Folder{}).Where("parent_id = ?", parentID).
		Update("parent_id", gorm.Expr("NULL")).Error
}

// UniqueSlug resolves a slug collision by appending a numeric suffix.
// excludeID skips the folder being renamed.
func UniqueSlug(base string, excludeID uint) (string, error) {
	if base == "" {
		base = "folder"
	}

	candidate := base
	for i := 2; ; i++ {
		var existing Folder
		err := DB.Where("slug = ? AND id <> ?", candidate, excludeID).First(&existing).Error
		if gorm.IsRecordNotFoundError(err) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// GetOrCreateUnassigned fetches the reserved default folder, creating it
// on first access. Two concurrent first callers may both attempt the
// insert, the unique index on slug rejects the loser, who then reads the
// winner's row.
func GetOrCreateUnassigned() (Folder, error) {
	var folder Folder
	err := DB.Where("slug = ?", UnassignedSlug).First(&folder).Error
	if err == nil {
		return folder, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return Folder{}, err
	}

	folder = Folder{
		Name:        UnassignedName,
		Slug:        UnassignedSlug,
		Description: UnassignedDescription,
	}
	if err := DB.Create(&folder).Error; err != nil {
		// Lost the creation race, fall back to the winner's row
		var existing Folder
		if err2 := DB.Where("slug = ?", UnassignedSlug).First(&existing).Error; err2 == nil {
			return existing, nil
		}
		return Folder{}, err
	}
	return folder, nil
}
