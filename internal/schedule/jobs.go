package schedule

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/notewind/notewind/internal/listctl"
	"github.com/notewind/notewind/internal/model"
)

// SilentRefreshJob keeps a watched list fresh without loading flicker.
type SilentRefreshJob struct {
	Controller *listctl.Controller
}

func (j *SilentRefreshJob) Name() string { return "silent_refresh" }

func (j *SilentRefreshJob) Run(ctx context.Context) error {
	j.Controller.RefreshSilent()
	return nil
}

type IStreakUpdater interface {
	UpdateStreak(ctx context.Context, userID string) (*model.StreakResult, error)
}

// StreakJob pings the daily streak endpoint for the session owner.
type StreakJob struct {
	API    IStreakUpdater
	UserID string
}

func (j *StreakJob) Name() string { return "streak_update" }

func (j *StreakJob) Run(ctx context.Context) error {
	res, err := j.API.UpdateStreak(ctx, j.UserID)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("streak checked",
		zap.Bool("updated", res.StreakUpdated),
		zap.Bool("already_done", res.AlreadyCompletedToday))
	return nil
}
