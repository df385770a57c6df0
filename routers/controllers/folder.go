package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/service/organize"
)

// CreateFolder creates a new folder
func CreateFolder(c *gin.Context) {
	var service organize.FolderCreateService
	if err := c.ShouldBindJSON(&service); err == nil {
		res := service.Create(c)
		c.JSON(200, res)
	} else {
		c.JSON(200, ErrorResponse(err))
	}
}

// RenameFolder renames a folder
func RenameFolder(c *gin.Context) {
	var service organize.FolderRenameService
	if err := c.ShouldBindUri(&service); err != nil {
		c.JSON(200, ErrorResponse(err))
		return
	}
	if err := c.ShouldBindJSON(&service); err == nil {
		res := service.Rename(c)
		c.JSON(200, res)
	} else {
		c.JSON(200, ErrorResponse(err))
	}
}

// DeleteFolder deletes a folder, moving its members into Unassigned
func DeleteFolder(c *gin.Context) {
	var service organize.FolderIDService
	if err := c.ShouldBindUri(&service); err == nil {
		res := service.Delete(c)
		c.JSON(200, res)
	} else {
		c.JSON(200, ErrorResponse(err))
	}
}

// FolderSlug returns a folder's slug and name
func FolderSlug(c *gin.Context) {
	var service organize.FolderIDService
	if err := c.ShouldBindUri(&service); err == nil {
		res := service.Slug(c)
		c.JSON(200, res)
	} else {
		c.JSON(200, ErrorResponse(err))
	}
}

// ListFolders lists folders flat
func ListFolders(c *gin.Context) {
	var service organize.FolderListService
	if err := c.ShouldBindQuery(&service); err == nil {
		res := service.List(c)
		c.JSON(200, res)
	} else {
		c.JSON(200, ErrorResponse(err))
	}
}

// ListOrganized lists folders hierarchically
func ListOrganized(c *gin.Context) {
	var service organize.OrganizedListService
	res := service.List(c)
	c.JSON(200, res)
}

// FolderCounts recomputes and returns per-folder counts
func FolderCounts(c *gin.Context) {
	var service organize.CountsService
	res := service.Counts(c)
	c.JSON(200, res)
}
