package api_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/notewind/notewind/internal/api"
	"github.com/notewind/notewind/internal/mockapi"
	"github.com/notewind/notewind/internal/model"
	appErr "github.com/notewind/notewind/internal/pkg/errors"
)

func newTestClient(t *testing.T, opts ...mockapi.Option) (*api.Client, *mockapi.Server) {
	t.Helper()
	server := mockapi.New(opts...)
	ts := httptest.NewServer(server.Engine())
	t.Cleanup(ts.Close)
	return api.New(ts.URL), server
}

func seedNotes(server *mockapi.Server, userID string, n int) {
	notes := make([]model.Note, 0, n)
	for i := 0; i < n; i++ {
		notes = append(notes, model.Note{
			ID:         fmt.Sprintf("seed-%02d", i),
			UserID:     userID,
			Title:      fmt.Sprintf("Seeded note %d", i),
			SourceType: model.SourceText,
			CreateDate: int64(1000 + i),
		})
	}
	server.Seed(notes...)
}

func TestListNotesPagination(t *testing.T) {
	client, server := newTestClient(t)
	seedNotes(server, "u1", 11)

	page1, err := client.ListNotes(context.Background(), api.ListNotesQuery{UserID: "u1", Page: 1, Limit: 8})
	require.NoError(t, err)
	require.Len(t, page1, 8)

	page2, err := client.ListNotes(context.Background(), api.ListNotesQuery{UserID: "u1", Page: 2, Limit: 8})
	require.NoError(t, err)
	require.Len(t, page2, 3)

	// Newest first.
	require.Equal(t, "seed-10", page1[0].ID)
}

func TestListNotesFilterAndKeyword(t *testing.T) {
	client, server := newTestClient(t)
	server.Seed(
		model.Note{ID: "a", UserID: "u1", Title: "Linear Algebra", SourceType: model.SourcePDF},
		model.Note{ID: "b", UserID: "u1", Title: "Organic Chemistry", SourceType: model.SourceYouTube},
		model.Note{ID: "c", UserID: "u2", Title: "Algebra II", SourceType: model.SourcePDF},
	)

	pdfs, err := client.ListNotes(context.Background(), api.ListNotesQuery{UserID: "u1", Page: 1, Limit: 8, SourceType: model.SourcePDF})
	require.NoError(t, err)
	require.Len(t, pdfs, 1)
	require.Equal(t, "a", pdfs[0].ID)

	found, err := client.ListNotes(context.Background(), api.ListNotesQuery{UserID: "u1", Page: 1, Limit: 8, Keyword: "algebra"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	// No user id: global scope sees both owners.
	global, err := client.ListNotes(context.Background(), api.ListNotesQuery{Page: 1, Limit: 8, Keyword: "algebra"})
	require.NoError(t, err)
	require.Len(t, global, 2)
}

func TestCreateFromYouTube(t *testing.T) {
	client, _ := newTestClient(t)

	note, err := client.CreateFromYouTube(context.Background(), api.YouTubeCreateInput{
		UserID: "u1",
		Link:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	require.Equal(t, model.SourceYouTube, note.SourceType)
	require.Contains(t, note.Title, "dQw4w9WgXcQ")
	require.NotEmpty(t, note.ID)
}

func TestCreateFromYouTubeServerMessage(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.CreateFromYouTube(context.Background(), api.YouTubeCreateInput{
		UserID: "u1",
		Link:   "https://example.com/nope",
	})
	require.Error(t, err)
	require.ErrorIs(t, err, appErr.ErrTransport)
	require.Equal(t, "The video link could not be processed.", api.MessageFrom(err))
}

func TestCreateFromPDFMultipart(t *testing.T) {
	client, _ := newTestClient(t)

	note, err := client.CreateFromPDF(context.Background(), api.FileCreateInput{
		UserID:   "u1",
		FileName: "lecture.pdf",
		Data:     []byte("%PDF-1.4 fake"),
	})
	require.NoError(t, err)
	require.Equal(t, model.SourcePDF, note.SourceType)
	require.Equal(t, "lecture.pdf", note.Title)
}

func TestGenerateMindMapAndGetNote(t *testing.T) {
	client, _ := newTestClient(t)

	note, err := client.CreateFromText(context.Background(), api.TextCreateInput{
		UserID: "u1",
		Text:   longText(),
	})
	require.NoError(t, err)

	mm, err := client.GenerateMindMap(context.Background(), note.ID)
	require.NoError(t, err)
	require.NotEmpty(t, mm.Nodes)
	require.Equal(t, "root", mm.Root)

	fetched, err := client.GetNote(context.Background(), note.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.MindMap)

	_, err = client.GetNote(context.Background(), "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestUpdateStreak(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, mockapi.WithClock(func() time.Time { return now }))

	first, err := client.UpdateStreak(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, first.StreakUpdated)
	require.False(t, first.AlreadyCompletedToday)

	second, err := client.UpdateStreak(context.Background(), "u1")
	require.NoError(t, err)
	require.False(t, second.StreakUpdated)
	require.True(t, second.AlreadyCompletedToday)
}

func TestFolderLifecycle(t *testing.T) {
	client, server := newTestClient(t)
	server.Seed(model.Note{ID: "n1", UserID: "u1", Title: "Kept note"})

	folder, err := client.CreateFolder(context.Background(), api.FolderCreateInput{UserID: "u1", Title: "Biology", Color: "green"})
	require.NoError(t, err)

	require.NoError(t, client.AddNoteToFolder(context.Background(), folder.ID, "n1"))

	folders, err := client.ListFolders(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	require.Len(t, folders[0].Notes, 1)

	require.NoError(t, client.RemoveNoteFromFolder(context.Background(), folder.ID, "n1"))
	require.NoError(t, client.DeleteFolder(context.Background(), folder.ID))

	// Deleting the folder leaves the note alone.
	note, err := client.GetNote(context.Background(), "n1")
	require.NoError(t, err)
	require.Equal(t, "Kept note", note.Title)
}

func longText() string {
	text := ""
	for len(text) < 120 {
		text += "all work and no play makes a dull study session "
	}
	return text
}
