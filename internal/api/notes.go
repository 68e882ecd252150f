package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/notewind/notewind/internal/model"
)

// INoteLister is the slice of the client the list controller depends on.
type INoteLister interface {
	ListNotes(ctx context.Context, q ListNotesQuery) ([]model.Note, error)
}

// ListNotesQuery mirrors GET /notes. An empty UserID omits the parameter
// (global search scope); an empty SourceType means all kinds.
type ListNotesQuery struct {
	UserID     string
	Page       int
	Limit      int
	Keyword    string
	SourceType model.SourceType
}

type YouTubeCreateInput struct {
	UserID   string `json:"userId"`
	Link     string `json:"link"`
	FolderID string `json:"folderId,omitempty"`
	Interest string `json:"interest,omitempty"`
}

type TextCreateInput struct {
	UserID   string `json:"userId"`
	Text     string `json:"text"`
	FolderID string `json:"folderId,omitempty"`
	Interest string `json:"interest,omitempty"`
}

// FileCreateInput covers the two multipart creation endpoints.
type FileCreateInput struct {
	UserID   string
	FileName string
	Data     []byte
	FolderID string
}

func (c *Client) ListNotes(ctx context.Context, q ListNotesQuery) ([]model.Note, error) {
	query := url.Values{}
	if q.UserID != "" {
		query.Set("userId", q.UserID)
	}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limit", strconv.Itoa(q.Limit))
	if q.Keyword != "" {
		query.Set("keyword", q.Keyword)
	}
	if q.SourceType != "" {
		query.Set("sourceType", string(q.SourceType))
	}
	var out struct {
		Notes []model.Note `json:"notes"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/notes", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

func (c *Client) GetNote(ctx context.Context, noteID string) (*model.Note, error) {
	var out struct {
		Note *model.Note `json:"note"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/notes/"+noteID, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/notes/"+noteID, nil, nil, nil)
}

func (c *Client) CreateFromYouTube(ctx context.Context, in YouTubeCreateInput) (*model.Note, error) {
	var out struct {
		Note *model.Note `json:"note"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/notes/youtube", nil, in, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) CreateFromText(ctx context.Context, in TextCreateInput) (*model.Note, error) {
	var out struct {
		Note *model.Note `json:"note"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/notes/text", nil, in, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) CreateFromPDF(ctx context.Context, in FileCreateInput) (*model.Note, error) {
	return c.createFromFile(ctx, "/notes/pdf", "pdf", in)
}

func (c *Client) CreateFromAudio(ctx context.Context, in FileCreateInput) (*model.Note, error) {
	return c.createFromFile(ctx, "/notes/audio", "audio", in)
}

func (c *Client) createFromFile(ctx context.Context, path, fileField string, in FileCreateInput) (*model.Note, error) {
	fields := map[string]string{
		"userId":   in.UserID,
		"folderId": in.FolderID,
	}
	var out struct {
		Note *model.Note `json:"note"`
	}
	if err := c.doMultipart(ctx, path, fields, fileField, in.FileName, in.Data, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) GenerateMindMap(ctx context.Context, noteID string) (*model.MindMap, error) {
	body := map[string]string{"noteId": noteID}
	var out struct {
		MindMap *model.MindMap `json:"mindmap"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/notes/mindmap", nil, body, &out); err != nil {
		return nil, err
	}
	return out.MindMap, nil
}
