// Package organize exposes the folder organization features as
// request-bound services
package organize

import (
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/pkg/hashid"
	"github.com/mediashelf/mediashelf/pkg/organizer"
	"github.com/mediashelf/mediashelf/pkg/serializer"
)

// FolderCreateService creates a new folder
type FolderCreateService struct {
	Name     string `json:"name" binding:"required,max=255"`
	ParentID string `json:"parent_id"`
}

// FolderRenameService renames the folder referenced in the URI
type FolderRenameService struct {
	ID   string `uri:"id" binding:"required"`
	Name string `json:"name" binding:"required,max=255"`
}

// FolderIDService operates on the folder referenced in the URI
type FolderIDService struct {
	ID string `uri:"id" binding:"required"`
}

// FolderListService lists folders flat
type FolderListService struct {
	IncludeEmpty bool `form:"include_empty"`
}

func decodeFolderID(raw string) (uint, error) {
	return hashid.DecodeHashID(raw, hashid.FolderID)
}

// Create validates and creates the folder
func (service *FolderCreateService) Create(c *gin.Context) serializer.Response {
	var parentID uint
	if service.ParentID != "" {
		id, err := decodeFolderID(service.ParentID)
		if err != nil {
			return serializer.Err(serializer.CodeParentNotFound, "Parent folder does not exist.", err)
		}
		parentID = id
	}

	folder, err := organizer.CreateFolder(service.Name, parentID)
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.BuildFolderResponse(*folder)
}

// Rename renames the folder
func (service *FolderRenameService) Rename(c *gin.Context) serializer.Response {
	id, err := decodeFolderID(service.ID)
	if err != nil {
		return serializer.Err(serializer.CodeNotFound, "Folder does not exist.", err)
	}

	folder, err := organizer.RenameFolder(id, service.Name)
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.BuildFolderResponse(*folder)
}

// Delete deletes the folder, reporting how many attachments were moved
// into Unassigned
func (service *FolderIDService) Delete(c *gin.Context) serializer.Response {
	id, err := decodeFolderID(service.ID)
	if err != nil {
		return serializer.Err(serializer.CodeNotFound, "Folder does not exist.", err)
	}

	moved, err := organizer.DeleteFolder(c.Request.Context(), id)
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.Response{
		Data: map[string]interface{}{"moved": moved},
	}
}

// Slug returns the folder's slug and name
func (service *FolderIDService) Slug(c *gin.Context) serializer.Response {
	id, err := decodeFolderID(service.ID)
	if err != nil {
		return serializer.Err(serializer.CodeNotFound, "Folder does not exist.", err)
	}

	folder, err := organizer.GetFolderSlug(id)
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.Response{
		Data: map[string]string{
			"name": folder.Name,
			"slug": folder.Slug,
		},
	}
}

// List lists folders flat, empty ones included on demand
func (service *FolderListService) List(c *gin.Context) serializer.Response {
	folders, err := organizer.ListFolders(service.IncludeEmpty)
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.BuildFolderList(folders)
}

// OrganizedListService lists folders hierarchically
type OrganizedListService struct{}

// List builds the hierarchical listing with aggregated display counts
func (service *OrganizedListService) List(c *gin.Context) serializer.Response {
	organized, err := organizer.GetOrganized()
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.BuildOrganizedList(organized.Unassigned, organized.Parents,
		organized.ChildrenByParent)
}

// CountsService reads the per-folder counts
type CountsService struct{}

// Counts recomputes and returns the per-folder counts
func (service *CountsService) Counts(c *gin.Context) serializer.Response {
	snapshot, err := organizer.GetCountsSnapshot()
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.BuildCountsSnapshot(snapshot)
}
