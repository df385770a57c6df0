package model

import (
	"github.com/jinzhu/gorm"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// AttachmentFolder the association record linking one attachment to one
// folder. This table is the ground truth for folder membership, cached
// counts on Folder are derived from it.
type AttachmentFolder struct {
	gorm.Model
	AttachmentID uint `gorm:"index:attachment_id;unique_index:idx_attachment_folder"`
	FolderID     uint `gorm:"index:folder_id;unique_index:idx_attachment_folder"`
}

// ReplaceAttachmentRelations removes every folder relationship of the
// attachment, then inserts exactly one for the target folder. The order
// guarantees the attachment can never surface in two folders once this
// returns.
func ReplaceAttachmentRelations(attachmentID, folderID uint) error {
	if err := DB.Unscoped().Where("attachment_id = ?", attachmentID).
		Delete(&AttachmentFolder{}).Error; err != nil {
		util.Log().Warning("Failed to clear folder relationships of attachment %d: %s", attachmentID, err)
		return err
	}

	relation := AttachmentFolder{
		AttachmentID: attachmentID,
		FolderID:     folderID,
	}
	return DB.Create(&relation).Error
}

// CreateRelation inserts a single relationship record. The composite
// unique index rejects duplicates.
func CreateRelation(attachmentID, folderID uint) error {
	relation := AttachmentFolder{
		AttachmentID: attachmentID,
		FolderID:     folderID,
	}
	return DB.Create(&relation).Error
}

// RelationExists returns whether the attachment is related to the folder
func RelationExists(attachmentID, folderID uint) bool {
	var count int
	DB.Model(&AttachmentFolder{}).
		Where("attachment_id = ? AND folder_id = ?", attachmentID, folderID).
		Count(&count)
	return count > 0
}

// HasAnyFolder returns whether the attachment has at least one folder
// relationship
func HasAnyFolder(attachmentID uint) (bool, error) {
	var count int
	result := DB.Model(&AttachmentFolder{}).
		Where("attachment_id = ?", attachmentID).
		Count(&count)
	return count > 0, result.Error
}

// GetAttachmentIDsByFolder returns the ids of every member attachment
func GetAttachmentIDsByFolder(folderID uint) ([]uint, error) {
	var ids []uint
	result := DB.Model(&AttachmentFolder{}).Where("folder_id = ?", folderID).
		Pluck("attachment_id", &ids)
	return ids, result.Error
}

// GetOrphanAttachmentIDs returns the ids of attachments with zero folder
// relationships
func GetOrphanAttachmentIDs() ([]uint, error) {
	var ids []uint
	result := DB.Model(&Attachment{}).
		Where("id NOT IN (?)", DB.Model(&AttachmentFolder{}).Select("attachment_id").QueryExpr()).
		Pluck("id", &ids)
	return ids, result.Error
}

// CountRelationsByFolder counts relationships grouped by folder, straight
// from the ground-truth table
func CountRelationsByFolder() (map[uint]uint, error) {
	rows, err := DB.Model(&AttachmentFolder{}).
		Select("folder_id, count(*) as total").
		Group("folder_id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uint]uint)
	for rows.Next() {
		var (
			folderID uint
			total    uint
		)
		if err := rows.Scan(&folderID, &total); err != nil {
			return nil, err
		}
		counts[folderID] = total
	}
	return counts, rows.Err()
}
