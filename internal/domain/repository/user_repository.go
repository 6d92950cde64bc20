package repository

import (
	"context"

	"barterhub/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error

	AddLikedProduct(ctx context.Context, userID, productID string) error
	RemoveLikedProduct(ctx context.Context, userID, productID string) error
	AddLikedUser(ctx context.Context, userID, targetID string) error
	RemoveLikedUser(ctx context.Context, userID, targetID string) error
	AddProfileLike(ctx context.Context, userID, likerID string) error
	RemoveProfileLike(ctx context.Context, userID, likerID string) error

	// ApplyRatingDelta atomically adjusts the integer rating aggregate.
	ApplyRatingDelta(ctx context.Context, userID string, sumDelta, countDelta int) error
}
