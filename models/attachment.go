package model

import (
	"github.com/jinzhu/gorm"
)

// Attachment a media item owned by the external media subsystem. This
// core only reads it to validate ids, rows are created and deleted by
// the upload pipeline.
type Attachment struct {
	gorm.Model
	Name   string `gorm:"size:255"`
	Type   string `gorm:"size:64"`
	UserID uint   `gorm:"index:user_id"`
}

// GetAttachmentByID finds an attachment by primary key
func GetAttachmentByID(id uint) (Attachment, error) {
	var attachment Attachment
	result := DB.First(&attachment, id)
	return attachment, result.Error
}

// AttachmentExists returns whether the id resolves to a live attachment
func AttachmentExists(id uint) bool {
	var count int
	DB.Model(&Attachment{}).Where("id = ?", id).Count(&count)
	return count > 0
}
