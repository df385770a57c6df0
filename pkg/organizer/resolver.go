package organizer

import (
	"context"
	"strconv"

	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/cache"
	"github.com/mediashelf/mediashelf/pkg/mq"
	"github.com/mediashelf/mediashelf/pkg/serializer"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// stagingKeyPrefix namespaces staged folder selections in the cache
const stagingKeyPrefix = "upload_folder_"

// StagingTTL lifetime in seconds of a staged folder selection
var StagingTTL = 24 * 3600

// UploadSignals advisory folder hints collected from the upload request.
// The caller maps its transport onto this struct, the resolver itself is
// transport-agnostic.
type UploadSignals struct {
	// FormFolderID folder id carried in the request's primary form field
	FormFolderID string
	// LegacyFormFolderID alternate field name kept for older uploaders
	LegacyFormFolderID string
	// Filename key of a staged folder selection from an earlier request
	Filename string
	// CookieFolderID folder id carried in a client-set cookie
	CookieFolderID string
	// ContextFolderSlug folder filter active on the page the upload
	// started from
	ContextFolderSlug string
}

func stagingKey(filename string) string {
	return stagingKeyPrefix + util.SanitizeFilename(filename)
}

func parseFolderID(raw string) uint {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// StageUploadFolder records a folder selection for an upload whose
// attachment will be created by a later request, keyed by the sanitized
// file name
func StageUploadFolder(filename string, folderID uint) error {
	if filename == "" {
		return serializer.NewError(serializer.CodeParamErr, "File name is required.", nil)
	}
	if _, err := model.GetFolderByID(folderID); err != nil {
		return serializer.NewError(serializer.CodeFolderNotFound, "Target folder does not exist.", err)
	}
	if err := cache.Set(stagingKey(filename), folderID, StagingTTL); err != nil {
		return serializer.NewError(serializer.CodeCacheOperation, "Failed to stage folder selection.", err)
	}
	return nil
}

// ResolveUploadFolder determines the folder a new attachment should
// join. The precedence chain is evaluated once, first match wins: form
// field, legacy form field, staged selection, cookie, page folder
// filter, Unassigned. Whatever tier produced the candidate, an id that
// no longer resolves to an existing folder falls back to Unassigned.
func ResolveUploadFolder(signals UploadSignals) (uint, error) {
	candidate := parseFolderID(signals.FormFolderID)
	if candidate == 0 {
		candidate = parseFolderID(signals.LegacyFormFolderID)
	}
	if candidate == 0 && signals.Filename != "" {
		if staged, ok := cache.Get(stagingKey(signals.Filename)); ok {
			if id, ok := staged.(uint); ok {
				candidate = id
			}
		}
	}
	if candidate == 0 {
		candidate = parseFolderID(signals.CookieFolderID)
	}
	if candidate == 0 && signals.ContextFolderSlug != "" {
		if folder, err := model.GetFolderBySlug(signals.ContextFolderSlug); err == nil {
			candidate = folder.ID
		}
	}

	// The staged selection is one-shot. Clear it even when a higher tier
	// won, a future upload reusing the file name must not inherit it.
	if signals.Filename != "" {
		if err := cache.Deletes([]string{stagingKey(signals.Filename)}, ""); err != nil {
			util.Log().Warning("Failed to clear staged folder selection: %s", err)
		}
	}

	if candidate != 0 {
		if _, err := model.GetFolderByID(candidate); err == nil {
			return candidate, nil
		}
		util.Log().Debug("Resolved folder %d no longer exists, falling back to Unassigned.", candidate)
	}

	return GetUnassignedID()
}

// OnAttachmentCreated performs the initial folder assignment for a newly
// created attachment. Invoking it twice for the same attachment is safe,
// the second call is a no-op once a folder is assigned.
func OnAttachmentCreated(ctx context.Context, attachmentID uint, signals UploadSignals) error {
	if !model.AttachmentExists(attachmentID) {
		return serializer.NewError(serializer.CodeNotFound, "Attachment does not exist.", nil)
	}

	has, err := model.HasAnyFolder(attachmentID)
	if err != nil {
		return serializer.NewError(serializer.CodeDBError, "Failed to check folder relationships.", err)
	}
	if has {
		util.Log().Debug("Attachment %d already has a folder, skipping initial assignment.", attachmentID)
		return nil
	}

	folderID, err := ResolveUploadFolder(signals)
	if err != nil {
		return err
	}

	if err := SetAttachmentFolder(ctx, attachmentID, folderID); err != nil {
		return err
	}

	mq.GlobalMQ.Publish(mq.TopicAttachmentCreated, mq.Message{
		TriggeredBy: "organizer.OnAttachmentCreated",
		Event:       mq.TopicAttachmentCreated,
		Content:     attachmentID,
	})
	return nil
}
