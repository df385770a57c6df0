package organizer

import (
	"context"
	"strings"

	"github.com/jinzhu/gorm"
	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/serializer"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// Organized partition of all folders by the one-level hierarchy
type Organized struct {
	Unassigned       model.Folder
	Parents          []model.Folder
	ChildrenByParent map[uint][]model.Folder
}

// validateName rejects empty and purely numeric folder names. Numeric
// names are ambiguous with folder ids in every place a folder reference
// is accepted.
func validateName(name string) error {
	if name == "" {
		return serializer.NewError(serializer.CodeInvalidName, "Folder name cannot be empty.", nil)
	}
	if util.IsNumeric(name) {
		return serializer.NewError(serializer.CodeInvalidName, "Folder name cannot be purely numeric.", nil)
	}
	return nil
}

// CreateFolder validates and creates a new folder. parentID of zero
// creates a top-level folder.
func CreateFolder(name string, parentID uint) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	var parentRef *uint
	if parentID != 0 {
		parent, err := model.GetFolderByID(parentID)
		if gorm.IsRecordNotFoundError(err) {
			return nil, serializer.NewError(serializer.CodeParentNotFound, "Parent folder does not exist.", err)
		}
		if err != nil {
			return nil, serializer.NewError(serializer.CodeDBError, "Failed to fetch parent folder.", err)
		}
		if parent.IsUnassigned() {
			return nil, serializer.NewError(serializer.CodeCannotNestUnderUnassigned,
				"Folders cannot be nested under Unassigned.", nil)
		}
		if parent.IsChild() {
			return nil, serializer.NewError(serializer.CodeDepthLimitExceeded,
				"Only one level of nesting is allowed.", nil)
		}
		parentRef = &parent.ID
	}

	slug, err := model.UniqueSlug(util.Slugify(name), 0)
	if err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to derive folder slug.", err)
	}

	folder := model.Folder{
		Name:     name,
		Slug:     slug,
		ParentID: parentRef,
	}
	if _, err := folder.Create(); err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to create folder.", err)
	}
	return &folder, nil
}

// RenameFolder validates and renames a folder, deriving a fresh slug
func RenameFolder(id uint, newName string) (*model.Folder, error) {
	folder, err := model.GetFolderByID(id)
	if gorm.IsRecordNotFoundError(err) {
		return nil, serializer.NewError(serializer.CodeNotFound, "Folder does not exist.", err)
	}
	if err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to fetch folder.", err)
	}
	if folder.IsUnassigned() {
		return nil, serializer.NewError(serializer.CodeProtectedFolder, "The Unassigned folder cannot be renamed.", nil)
	}

	newName = strings.TrimSpace(newName)
	if err := validateName(newName); err != nil {
		return nil, err
	}

	slug, err := model.UniqueSlug(util.Slugify(newName), folder.ID)
	if err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to derive folder slug.", err)
	}

	if err := folder.Rename(newName, slug); err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to rename folder.", err)
	}
	folder.Name = newName
	folder.Slug = slug
	return &folder, nil
}

// DeleteFolder deletes a folder, first reassigning every member
// attachment into Unassigned so none is left orphaned. Returns the
// number of attachments actually moved, members abnormally present in
// Unassigned already are not counted twice.
func DeleteFolder(ctx context.Context, id uint) (int, error) {
	folder, err := model.GetFolderByID(id)
	if gorm.IsRecordNotFoundError(err) {
		return 0, serializer.NewError(serializer.CodeNotFound, "Folder does not exist.", err)
	}
	if err != nil {
		return 0, serializer.NewError(serializer.CodeDBError, "Failed to fetch folder.", err)
	}
	if folder.IsUnassigned() {
		return 0, serializer.NewError(serializer.CodeProtectedFolder, "The Unassigned folder cannot be deleted.", nil)
	}

	unassigned, err := model.GetOrCreateUnassigned()
	if err != nil {
		return 0, serializer.NewError(serializer.CodeDBError, "Failed to fetch the Unassigned folder.", err)
	}

	memberIDs, err := model.GetAttachmentIDsByFolder(folder.ID)
	if err != nil {
		return 0, serializer.NewError(serializer.CodeDBError, "Failed to list folder members.", err)
	}

	// Every member must land in Unassigned before the folder row goes.
	// A failed reassignment aborts the deletion, a member still pointing
	// at a deleted folder would be invisible to every listing.
	moved := 0
	for _, attachmentID := range memberIDs {
		already := model.RelationExists(attachmentID, unassigned.ID)
		if err := model.ReplaceAttachmentRelations(attachmentID, unassigned.ID); err != nil {
			return moved, serializer.NewError(serializer.CodeDBError,
				"Failed to reassign folder members, folder not deleted.", err)
		}
		if !already {
			moved++
		}
	}

	// Children survive the parent, lifted to top level
	if err := model.PromoteChildren(folder.ID); err != nil {
		util.Log().Warning("Failed to promote children of folder %d: %s", folder.ID, err)
	}

	if err := folder.Delete(); err != nil {
		return moved, serializer.NewError(serializer.CodeDBError, "Failed to delete folder.", err)
	}

	if err := RecomputeAllCounts(); err != nil {
		util.Log().Warning("Recount after folder deletion failed: %s", err)
	}
	publishRelationshipChanged("organizer.DeleteFolder")

	return moved, nil
}

// ListFolders returns all folders, or only folders with members when
// includeEmpty is false. The Unassigned folder is never filtered out
// here, presentation layers may hide it themselves.
func ListFolders(includeEmpty bool) ([]model.Folder, error) {
	var (
		folders []model.Folder
		err     error
	)
	if includeEmpty {
		folders, err = model.GetAllFolders()
	} else {
		folders, err = model.GetFoldersWithMembers()
	}
	if err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to list folders.", err)
	}
	return folders, nil
}

// GetFolderSlug returns the folder's slug and name
func GetFolderSlug(id uint) (*model.Folder, error) {
	folder, err := model.GetFolderByID(id)
	if gorm.IsRecordNotFoundError(err) {
		return nil, serializer.NewError(serializer.CodeNotFound, "Folder does not exist.", err)
	}
	if err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to fetch folder.", err)
	}
	return &folder, nil
}

// GetOrganized partitions every folder by the one-level hierarchy for
// hierarchical consumption. The Unassigned folder is created lazily on
// first access.
func GetOrganized() (*Organized, error) {
	folders, err := model.GetAllFolders()
	if err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to list folders.", err)
	}

	organized := &Organized{
		ChildrenByParent: make(map[uint][]model.Folder),
	}

	found := false
	for _, folder := range folders {
		switch {
		case folder.IsUnassigned():
			organized.Unassigned = folder
			found = true
		case folder.IsChild():
			organized.ChildrenByParent[*folder.ParentID] = append(organized.ChildrenByParent[*folder.ParentID], folder)
		default:
			organized.Parents = append(organized.Parents, folder)
		}
	}

	if !found {
		unassigned, err := model.GetOrCreateUnassigned()
		if err != nil {
			return nil, serializer.NewError(serializer.CodeDBError, "Failed to create the Unassigned folder.", err)
		}
		organized.Unassigned = unassigned
	}

	return organized, nil
}
