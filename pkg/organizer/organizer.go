// Package organizer maintains folder membership of media attachments.
// Every attachment belongs to exactly one folder at any observable time,
// orphans are routed into the reserved Unassigned folder.
package organizer

import (
	"context"
	"sync"

	"github.com/jinzhu/gorm"
	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/mq"
	"github.com/mediashelf/mediashelf/pkg/serializer"
	"github.com/mediashelf/mediashelf/pkg/util"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// TaxonomyName identity of the folder taxonomy. Kept as a single
// constant, legacy deployments used a differently named taxonomy for the
// same data and the split is not carried forward.
const TaxonomyName = "mediashelf_folder"

// MoveResult partition of a batch move into succeeded and failed ids
type MoveResult struct {
	MovedIDs  []uint
	FailedIDs []uint
}

// assigningKey context key carrying the set of attachment ids whose
// assignment is currently in flight on this call chain
type assigningKey struct{}

func assigningSet(ctx context.Context) map[uint]struct{} {
	if set, ok := ctx.Value(assigningKey{}).(map[uint]struct{}); ok {
		return set
	}
	return nil
}

// withAssigning marks the attachment as being assigned on the returned
// context. The parent set is copied, sibling branches are unaffected.
func withAssigning(ctx context.Context, attachmentID uint) context.Context {
	set := make(map[uint]struct{})
	for id := range assigningSet(ctx) {
		set[id] = struct{}{}
	}
	set[attachmentID] = struct{}{}
	return context.WithValue(ctx, assigningKey{}, set)
}

// isAssigning reports whether an assignment for this attachment is
// already in flight on the current call chain. The guard is scoped per
// attachment id, an unrelated attachment's assignment is never
// suppressed.
func isAssigning(ctx context.Context, attachmentID uint) bool {
	_, ok := assigningSet(ctx)[attachmentID]
	return ok
}

var initOnce sync.Once

// Init registers the internal event subscriptions. Relationship
// mutations schedule a deferred recount, redundant firings recompute
// from ground truth and are therefore harmless. Creation events run the
// guarantor once more, a no-op when the attachment already has a folder.
func Init() {
	initOnce.Do(func() {
		mq.GlobalMQ.SubscribeCallback(mq.TopicRelationshipChanged, func(message mq.Message) {
			ScheduleRecount()
		})
		mq.GlobalMQ.SubscribeCallback(mq.TopicAttachmentCreated, func(message mq.Message) {
			if id, ok := message.Content.(uint); ok {
				if err := EnsureAttachmentHasFolder(context.Background(), id); err != nil {
					util.Log().Warning("Failed to guarantee a folder for attachment %d: %s", id, err)
				}
			}
		})
	})
}

func publishRelationshipChanged(triggeredBy string) {
	mq.GlobalMQ.Publish(mq.TopicRelationshipChanged, mq.Message{
		TriggeredBy: triggeredBy,
		Event:       mq.TopicRelationshipChanged,
	})
}

// MoveAttachments moves the given attachments into the target folder.
// Attachments are processed independently, one invalid id does not abort
// the batch. Each successful item ends up related to exactly one folder.
func MoveAttachments(ctx context.Context, attachmentIDs []uint, targetFolderID uint) (*MoveResult, error) {
	if len(attachmentIDs) == 0 {
		return nil, serializer.NewError(serializer.CodeEmptySelection, "No attachments selected.", nil)
	}

	folder, err := model.GetFolderByID(targetFolderID)
	if gorm.IsRecordNotFoundError(err) {
		return nil, serializer.NewError(serializer.CodeFolderNotFound, "Target folder does not exist.", err)
	}
	if err != nil {
		return nil, serializer.NewError(serializer.CodeDBError, "Failed to fetch target folder.",
			errors.Wrap(err, "move attachments"))
	}

	ids := lo.Uniq(attachmentIDs)
	util.Log().Debug("Moving %d attachment(s) into folder %q.", len(ids), folder.Name)

	res := &MoveResult{}
	for _, id := range ids {
		if !model.AttachmentExists(id) {
			res.FailedIDs = append(res.FailedIDs, id)
			continue
		}
		if err := model.ReplaceAttachmentRelations(id, folder.ID); err != nil {
			util.Log().Warning("Failed to move attachment %d: %s", id, err)
			res.FailedIDs = append(res.FailedIDs, id)
			continue
		}
		res.MovedIDs = append(res.MovedIDs, id)
	}

	if len(res.MovedIDs) > 0 {
		// One reconciliation per batch. It recounts every folder, which
		// covers the target and each folder that lost a member.
		if err := RecomputeAllCounts(); err != nil {
			util.Log().Warning("Recount after move failed: %s", err)
		}
		publishRelationshipChanged("organizer.MoveAttachments")
	}

	util.Log().Debug("Move finished, %d moved, %d failed.", len(res.MovedIDs), len(res.FailedIDs))
	return res, nil
}

// SetAttachmentFolder assigns a single attachment to the given folder. A
// zero folderID means "assign to Unassigned". Nested invocations for the
// same attachment on the same call chain are ignored.
func SetAttachmentFolder(ctx context.Context, attachmentID, folderID uint) error {
	if isAssigning(ctx, attachmentID) {
		util.Log().Debug("Assignment of attachment %d already in flight, ignoring nested call.", attachmentID)
		return nil
	}
	return assign(withAssigning(ctx, attachmentID), attachmentID, folderID)
}

func assign(ctx context.Context, attachmentID, folderID uint) error {
	if folderID == 0 {
		unassignedID, err := GetUnassignedID()
		if err != nil {
			return err
		}
		folderID = unassignedID
	}

	if !model.AttachmentExists(attachmentID) {
		return serializer.NewError(serializer.CodeNotFound, "Attachment does not exist.", nil)
	}

	if _, err := model.GetFolderByID(folderID); err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return serializer.NewError(serializer.CodeFolderNotFound, "Target folder does not exist.", err)
		}
		return serializer.NewError(serializer.CodeDBError, "Failed to fetch target folder.", err)
	}

	if err := model.ReplaceAttachmentRelations(attachmentID, folderID); err != nil {
		return serializer.NewError(serializer.CodeDBError, "Failed to update folder relationship.",
			errors.Wrap(err, "set attachment folder"))
	}

	ScheduleRecount()
	publishRelationshipChanged("organizer.SetAttachmentFolder")
	return nil
}
