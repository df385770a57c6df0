package organize

import (
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/pkg/hashid"
	"github.com/mediashelf/mediashelf/pkg/organizer"
	"github.com/mediashelf/mediashelf/pkg/serializer"
)

// MoveService moves attachments into a folder in batch
type MoveService struct {
	AttachmentIDs []string `json:"attachments" binding:"required,min=1"`
	FolderID      string   `json:"folder_id" binding:"required"`
}

// Move performs the batch move. Attachments that no longer exist are
// reported in the failed list, a malformed request is rejected outright.
func (service *MoveService) Move(c *gin.Context) serializer.Response {
	folderID, err := decodeFolderID(service.FolderID)
	if err != nil {
		return serializer.Err(serializer.CodeFolderNotFound, "Target folder does not exist.", err)
	}

	ids := make([]uint, 0, len(service.AttachmentIDs))
	for _, raw := range service.AttachmentIDs {
		id, err := hashid.DecodeHashID(raw, hashid.AttachmentID)
		if err != nil {
			return serializer.ParamErr("Malformed attachment reference.", err)
		}
		ids = append(ids, id)
	}

	res, err := organizer.MoveAttachments(c.Request.Context(), ids, folderID)
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.BuildMoveResult(res.MovedIDs, res.FailedIDs)
}

// EnsureService sweeps attachments without any folder into Unassigned
type EnsureService struct{}

// Ensure runs the remediation sweep on demand
func (service *EnsureService) Ensure(c *gin.Context) serializer.Response {
	assigned, err := organizer.EnsureAllAssigned(c.Request.Context())
	if err != nil {
		return serializer.Err(serializer.CodeNotSet, err.Error(), err)
	}
	return serializer.Response{
		Data: map[string]interface{}{"assigned": assigned},
	}
}
