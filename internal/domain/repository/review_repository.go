package repository

import (
	"context"

	"barterhub/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
	ListByReviewee(ctx context.Context, revieweeID string, limit, offset int) ([]*entity.Review, int64, error)
}
