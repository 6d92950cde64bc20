package repository

import (
	"context"

	"barterhub/internal/domain/entity"
)

type RecentSearchRepository interface {
	Create(ctx context.Context, search *entity.RecentSearch) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.RecentSearch, error)
	DeleteByUser(ctx context.Context, userID string) error
}
