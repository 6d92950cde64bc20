package repository

import (
	"context"

	"barterhub/internal/domain/entity"
)

type ActivityRepository interface {
	// Upsert writes the activity under its deterministic tuple key,
	// overwriting content and timestamps on repeat.
	Upsert(ctx context.Context, activity *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Activity, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	MarkReviewDone(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
