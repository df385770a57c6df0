package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/service/organize"
)

// MoveAttachments moves attachments into a folder in batch
func MoveAttachments(c *gin.Context) {
	var service organize.MoveService
	if err := c.ShouldBindJSON(&service); err == nil {
		res := service.Move(c)
		c.JSON(200, res)
	} else {
		c.JSON(200, ErrorResponse(err))
	}
}

// AttachmentCreated finalizes the folder placement of a new attachment
func AttachmentCreated(c *gin.Context) {
	var service organize.AttachmentCreatedService
	if err := c.ShouldBindUri(&service); err == nil {
		res := service.Created(c)
		c.JSON(200, res)
	} else {
		c.JSON(200, ErrorResponse(err))
	}
}

// StageUploadFolder stages a folder selection for a deferred upload
func StageUploadFolder(c *gin.Context) {
	var service organize.UploadStageService
	if err := c.ShouldBindJSON(&service); err == nil {
		res := service.Stage(c)
		c.JSON(200, res)
	} else {
		c.JSON(200, ErrorResponse(err))
	}
}

// EnsureAssigned runs the remediation sweep on demand
func EnsureAssigned(c *gin.Context) {
	var service organize.EnsureService
	res := service.Ensure(c)
	c.JSON(200, res)
}
