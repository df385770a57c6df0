package organizer

import (
	"context"

	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/serializer"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// GetUnassignedID returns the id of the reserved Unassigned folder,
// creating it on first access. Safe to call concurrently, the slug
// unique index resolves the creation race.
func GetUnassignedID() (uint, error) {
	folder, err := model.GetOrCreateUnassigned()
	if err != nil {
		return 0, serializer.NewError(serializer.CodeDBError, "Failed to fetch the Unassigned folder.", err)
	}
	return folder.ID, nil
}

// EnsureAttachmentHasFolder assigns the attachment to Unassigned when it
// has no folder relationship at all. An attachment already in any folder
// is left alone, this fills gaps, it does not correct placements.
func EnsureAttachmentHasFolder(ctx context.Context, attachmentID uint) error {
	has, err := model.HasAnyFolder(attachmentID)
	if err != nil {
		return serializer.NewError(serializer.CodeDBError, "Failed to check folder relationships.", err)
	}
	if has {
		return nil
	}
	return SetAttachmentFolder(ctx, attachmentID, 0)
}

// EnsureAllAssigned finds every attachment with zero folder
// relationships and assigns each to Unassigned. Attachments that acquire
// a folder between the query and the insert are skipped. Idempotent, a
// second run with no intervening mutation returns 0.
func EnsureAllAssigned(ctx context.Context) (int, error) {
	unassignedID, err := GetUnassignedID()
	if err != nil {
		return 0, err
	}

	orphans, err := model.GetOrphanAttachmentIDs()
	if err != nil {
		return 0, serializer.NewError(serializer.CodeDBError, "Failed to query orphaned attachments.", err)
	}

	assigned := 0
	for _, attachmentID := range orphans {
		if err := model.CreateRelation(attachmentID, unassignedID); err != nil {
			// The insert fails benignly when the attachment acquired a
			// folder after the query, anything else is a real failure
			if has, checkErr := model.HasAnyFolder(attachmentID); checkErr == nil && has {
				util.Log().Debug("Attachment %d already acquired a folder, skipping.", attachmentID)
				continue
			}
			util.Log().Warning("Failed to assign attachment %d to Unassigned: %s", attachmentID, err)
			continue
		}
		assigned++
	}

	if err := RecomputeAllCounts(); err != nil {
		util.Log().Warning("Recount after remediation failed: %s", err)
	}
	if assigned > 0 {
		publishRelationshipChanged("organizer.EnsureAllAssigned")
	}

	return assigned, nil
}
