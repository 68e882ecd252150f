package folders

import (
	"context"

	"github.com/notewind/notewind/internal/model"
)

// IMembership is the slice of the API client that mutates folder
// membership.
type IMembership interface {
	AddNoteToFolder(ctx context.Context, folderID, noteID string) error
	RemoveNoteFromFolder(ctx context.Context, folderID, noteID string) error
}

// OptimisticRemove drops the note from the folder's local list first,
// then calls the API; on failure the previous list is restored. The
// snapshot/apply/revert steps are explicit so the revert path can be
// tested without a network.
func OptimisticRemove(ctx context.Context, m IMembership, folder *model.Folder, noteID string) error {
	snapshot := folder.Notes
	kept := make([]model.Note, 0, len(folder.Notes))
	for _, note := range folder.Notes {
		if note.ID != noteID {
			kept = append(kept, note)
		}
	}
	folder.Notes = kept
	if err := m.RemoveNoteFromFolder(ctx, folder.ID, noteID); err != nil {
		folder.Notes = snapshot
		return err
	}
	return nil
}

// OptimisticAdd mirrors OptimisticRemove for adding a note.
func OptimisticAdd(ctx context.Context, m IMembership, folder *model.Folder, note model.Note) error {
	snapshot := folder.Notes
	folder.Notes = append(append([]model.Note{}, folder.Notes...), note)
	if err := m.AddNoteToFolder(ctx, folder.ID, note.ID); err != nil {
		folder.Notes = snapshot
		return err
	}
	return nil
}
