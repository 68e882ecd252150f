package folders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notewind/notewind/internal/folders"
	"github.com/notewind/notewind/internal/model"
	appErr "github.com/notewind/notewind/internal/pkg/errors"
)

type fakeMembership struct {
	addErr    error
	removeErr error
	adds      int
	removes   int
}

func (f *fakeMembership) AddNoteToFolder(ctx context.Context, folderID, noteID string) error {
	f.adds++
	return f.addErr
}

func (f *fakeMembership) RemoveNoteFromFolder(ctx context.Context, folderID, noteID string) error {
	f.removes++
	return f.removeErr
}

func testFolder() *model.Folder {
	return &model.Folder{
		ID:     "f1",
		UserID: "u1",
		Title:  "Biology",
		Notes: []model.Note{
			{ID: "n1", Title: "Cells"},
			{ID: "n2", Title: "Genetics"},
		},
	}
}

func TestOptimisticRemove(t *testing.T) {
	m := &fakeMembership{}
	folder := testFolder()

	require.NoError(t, folders.OptimisticRemove(context.Background(), m, folder, "n1"))
	require.Equal(t, 1, m.removes)
	require.Len(t, folder.Notes, 1)
	require.Equal(t, "n2", folder.Notes[0].ID)
}

func TestOptimisticRemoveRevertsOnFailure(t *testing.T) {
	m := &fakeMembership{removeErr: appErr.ErrTransport}
	folder := testFolder()

	err := folders.OptimisticRemove(context.Background(), m, folder, "n1")
	require.ErrorIs(t, err, appErr.ErrTransport)

	// The local list is back to what it was before the call.
	require.Len(t, folder.Notes, 2)
	require.Equal(t, "n1", folder.Notes[0].ID)
}

func TestOptimisticRemoveUnknownNote(t *testing.T) {
	m := &fakeMembership{}
	folder := testFolder()

	require.NoError(t, folders.OptimisticRemove(context.Background(), m, folder, "ghost"))
	require.Len(t, folder.Notes, 2)
}

func TestOptimisticAdd(t *testing.T) {
	m := &fakeMembership{}
	folder := testFolder()

	require.NoError(t, folders.OptimisticAdd(context.Background(), m, folder, model.Note{ID: "n3", Title: "Evolution"}))
	require.Equal(t, 1, m.adds)
	require.Len(t, folder.Notes, 3)
	require.Equal(t, "n3", folder.Notes[2].ID)
}

func TestOptimisticAddRevertsOnFailure(t *testing.T) {
	m := &fakeMembership{addErr: appErr.ErrTransport}
	folder := testFolder()

	err := folders.OptimisticAdd(context.Background(), m, folder, model.Note{ID: "n3"})
	require.ErrorIs(t, err, appErr.ErrTransport)
	require.Len(t, folder.Notes, 2)
}
