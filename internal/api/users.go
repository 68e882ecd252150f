package api

import (
	"context"
	"net/http"

	"github.com/notewind/notewind/internal/model"
)

func (c *Client) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+userID, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) UpdateStreak(ctx context.Context, userID string) (*model.StreakResult, error) {
	var out model.StreakResult
	if err := c.doJSON(ctx, http.MethodPost, "/users/"+userID+"/streak", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
