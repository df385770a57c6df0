package serializer

import (
	"fmt"
	"time"

	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/hashid"
)

// Folder folder as exposed on the public surface, primary keys are
// obfuscated
type Folder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ParentID    string    `json:"parent_id,omitempty"`
	Count       uint      `json:"count"`
	Unassigned  bool      `json:"unassigned"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrganizedFolder a top-level folder with its children and the
// aggregated count shown next to it
type OrganizedFolder struct {
	Folder
	Children     []Folder `json:"children"`
	DisplayCount uint     `json:"display_count"`
}

// OrganizedList full hierarchical folder listing
type OrganizedList struct {
	Unassigned Folder            `json:"unassigned"`
	Folders    []OrganizedFolder `json:"folders"`
}

// BuildFolder serializes a single folder
func BuildFolder(folder model.Folder) Folder {
	res := Folder{
		ID:          hashid.HashID(folder.ID, hashid.FolderID),
		Name:        folder.Name,
		Slug:        folder.Slug,
		Description: folder.Description,
		Count:       folder.Count,
		Unassigned:  folder.IsUnassigned(),
		CreatedAt:   folder.CreatedAt,
	}
	if folder.IsChild() {
		res.ParentID = hashid.HashID(*folder.ParentID, hashid.FolderID)
	}
	return res
}

// BuildFolderResponse serializes a single-folder response
func BuildFolderResponse(folder model.Folder) Response {
	return Response{
		Data: BuildFolder(folder),
	}
}

// BuildFolderList serializes a flat folder listing
func BuildFolderList(folders []model.Folder) Response {
	res := make([]Folder, 0, len(folders))
	for _, folder := range folders {
		res = append(res, BuildFolder(folder))
	}
	return Response{
		Data: res,
	}
}

// BuildOrganizedList serializes the hierarchical listing. A parent's
// display count aggregates its own members and every child's.
func BuildOrganizedList(unassigned model.Folder, parents []model.Folder,
	childrenByParent map[uint][]model.Folder) Response {
	list := OrganizedList{
		Unassigned: BuildFolder(unassigned),
		Folders:    make([]OrganizedFolder, 0, len(parents)),
	}

	for _, parent := range parents {
		entry := OrganizedFolder{
			Folder:       BuildFolder(parent),
			Children:     make([]Folder, 0),
			DisplayCount: parent.Count,
		}
		for _, child := range childrenByParent[parent.ID] {
			entry.Children = append(entry.Children, BuildFolder(child))
			entry.DisplayCount += child.Count
		}
		list.Folders = append(list.Folders, entry)
	}

	return Response{
		Data: list,
	}
}

// MoveResultData outcome of a batch move, ids obfuscated
type MoveResultData struct {
	Moved  []string `json:"moved"`
	Failed []string `json:"failed"`
}

// BuildMoveResult serializes a batch move outcome. A batch with failures
// reports partial success instead of an error.
func BuildMoveResult(moved, failed []uint) Response {
	data := MoveResultData{
		Moved:  make([]string, 0, len(moved)),
		Failed: make([]string, 0, len(failed)),
	}
	for _, id := range moved {
		data.Moved = append(data.Moved, hashid.HashID(id, hashid.AttachmentID))
	}
	for _, id := range failed {
		data.Failed = append(data.Failed, hashid.HashID(id, hashid.AttachmentID))
	}

	res := Response{
		Data: data,
		Msg:  fmt.Sprintf("Moved %d of %d attachment(s).", len(moved), len(moved)+len(failed)),
	}
	if len(failed) > 0 {
		res.Code = CodeNotFullySuccess
	}
	return res
}

// BuildCountsSnapshot serializes the recomputed per-folder counts keyed
// by obfuscated folder id
func BuildCountsSnapshot(snapshot map[uint]model.FolderCount) Response {
	res := make(map[string]model.FolderCount, len(snapshot))
	for id, count := range snapshot {
		res[hashid.HashID(id, hashid.FolderID)] = count
	}
	return Response{
		Data: res,
	}
}
