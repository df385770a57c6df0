package organize

import (
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/pkg/hashid"
	"github.com/mediashelf/mediashelf/pkg/organizer"
	"github.com/mediashelf/mediashelf/pkg/serializer"
)

// UploadFolderCookie client-set cookie carrying a sticky folder choice
// for uploads
const UploadFolderCookie = "mediashelf_upload_folder"

// UploadStageService stages a folder selection for an upload whose
// attachment record is created by a later request
type UploadStageService struct {
	FileName string `json:"file_name" binding:"required,max=255"`
	FolderID string `json:"folder_id" binding:"required"`
}

// Stage records the selection under the sanitized file name
func (service *UploadStageService) Stage(c *gin.Context) serializer.Response {
	folderID, err := decodeFolderID(service.FolderID)
	if err != nil {
		return serializer.Err(serializer.CodeFolderNotFound, "Target folder does not exist.", err)
	}

	if err := organizer.StageUploadFolder(service.FileName, folderID); err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.Response{}
}

// AttachmentCreatedService finalizes the folder placement of a newly
// created attachment
type AttachmentCreatedService struct {
	ID string `uri:"id" binding:"required"`
}

// Created gathers the request's folder hints and assigns the attachment.
// Legacy uploaders send plain numeric folder ids in their form fields,
// those are accepted as-is.
func (service *AttachmentCreatedService) Created(c *gin.Context) serializer.Response {
	attachmentID, err := hashid.DecodeHashID(service.ID, hashid.AttachmentID)
	if err != nil {
		return serializer.Err(serializer.CodeNotFound, "Attachment does not exist.", err)
	}

	signals := organizer.UploadSignals{
		FormFolderID:       c.PostForm("folder_id"),
		LegacyFormFolderID: c.PostForm("folder"),
		Filename:           c.PostForm("file_name"),
		ContextFolderSlug:  c.Query("folder_slug"),
	}
	if cookie, err := c.Cookie(UploadFolderCookie); err == nil {
		signals.CookieFolderID = cookie
	}

	if err := organizer.OnAttachmentCreated(c.Request.Context(), attachmentID, signals); err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.Response{}
}
