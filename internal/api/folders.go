package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/notewind/notewind/internal/model"
)

type FolderCreateInput struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Color  string `json:"color,omitempty"`
}

func (c *Client) CreateFolder(ctx context.Context, in FolderCreateInput) (*model.Folder, error) {
	var out struct {
		Folder *model.Folder `json:"folder"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/folders", nil, in, &out); err != nil {
		return nil, err
	}
	return out.Folder, nil
}

func (c *Client) ListFolders(ctx context.Context, userID string) ([]model.Folder, error) {
	query := url.Values{}
	query.Set("userId", userID)
	var out struct {
		Folders []model.Folder `json:"folders"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/folders", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Folders, nil
}

func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/folders/"+folderID, nil, nil, nil)
}

func (c *Client) AddNoteToFolder(ctx context.Context, folderID, noteID string) error {
	body := map[string]string{"noteId": noteID}
	return c.doJSON(ctx, http.MethodPost, "/folders/"+folderID+"/notes", nil, body, nil)
}

func (c *Client) RemoveNoteFromFolder(ctx context.Context, folderID, noteID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/folders/"+folderID+"/notes/"+noteID, nil, nil, nil)
}
