package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// CommentPurger hard-deletes comments whose soft delete is older than cutoff.
type CommentPurger interface {
	PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeDeletedCommentsUseCase enforces the retention window for deleted comments.
type PurgeDeletedCommentsUseCase struct {
	purger    CommentPurger
	retention time.Duration
	logger    logger.Interface
}

func NewPurgeDeletedCommentsUseCase(purger CommentPurger, retentionDays int, logger logger.Interface) *PurgeDeletedCommentsUseCase {
	return &PurgeDeletedCommentsUseCase{
		purger:    purger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
	}
}

// Execute returns the number of comments removed.
func (uc *PurgeDeletedCommentsUseCase) Execute(ctx context.Context) (int, error) {
	if uc.retention <= 0 {
		return 0, nil
	}

	cutoff := biztime.NowUTC().Add(-uc.retention)
	n, err := uc.purger.PurgeDeleted(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to purge deleted comments", "cutoff", cutoff, "error", err)
		return 0, err
	}
	if n > 0 {
		uc.logger.Infow("deleted comments purged", "count", n, "cutoff", cutoff)
	}
	return int(n), nil
}
