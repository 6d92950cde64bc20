package usecase

import (
	"context"
	"fmt"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/pkg/errors"
	"barterhub/pkg/logger"
)

type LikeUseCase struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	activities  *ActivityUseCase
}

func NewLikeUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	activities *ActivityUseCase,
) *LikeUseCase {
	return &LikeUseCase{
		userRepo:    userRepo,
		productRepo: productRepo,
		activities:  activities,
	}
}

// ToggleProductLike flips the like relationship between actor and product,
// keeping both sides' arrays consistent, and returns the resulting state.
func (uc *LikeUseCase) ToggleProductLike(ctx context.Context, actorID, productID string) (bool, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}

	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return false, err
	}

	if product.IsLikedBy(actorID) {
		if err := uc.productRepo.RemoveLike(ctx, productID, actorID); err != nil {
			return false, err
		}
		if err := uc.userRepo.RemoveLikedProduct(ctx, actorID, productID); err != nil {
			return false, err
		}
		if err := uc.activities.Retract(ctx, product.SellerID, entity.ActivityProductLike, actorID, productID); err != nil {
			logger.LogActivityError(entity.ActivityProductLike, product.SellerID, err)
		}
		return false, nil
	}

	if err := uc.productRepo.AddLike(ctx, productID, actorID); err != nil {
		return false, err
	}
	if err := uc.userRepo.AddLikedProduct(ctx, actorID, productID); err != nil {
		return false, err
	}

	content := fmt.Sprintf("%s liked your listing \"%s\"", actor.Username, product.Title)
	if err := uc.activities.Notify(ctx, product.SellerID, entity.ActivityProductLike, actorID, content, productID); err != nil {
		logger.LogActivityError(entity.ActivityProductLike, product.SellerID, err)
	}

	return true, nil
}

// ToggleProfileLike flips the like relationship between two users.
func (uc *LikeUseCase) ToggleProfileLike(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, errors.BadRequest("You cannot like your own profile", nil)
	}

	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}

	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return false, err
	}

	if actor.HasLikedUser(targetID) {
		if err := uc.userRepo.RemoveLikedUser(ctx, actorID, targetID); err != nil {
			return false, err
		}
		if err := uc.userRepo.RemoveProfileLike(ctx, targetID, actorID); err != nil {
			return false, err
		}
		if err := uc.activities.Retract(ctx, targetID, entity.ActivityProfileLike, actorID, ""); err != nil {
			logger.LogActivityError(entity.ActivityProfileLike, targetID, err)
		}
		return false, nil
	}

	if err := uc.userRepo.AddLikedUser(ctx, actorID, targetID); err != nil {
		return false, err
	}
	if err := uc.userRepo.AddProfileLike(ctx, targetID, actorID); err != nil {
		return false, err
	}

	content := fmt.Sprintf("%s liked your profile", actor.Username)
	if err := uc.activities.Notify(ctx, target.ID, entity.ActivityProfileLike, actorID, content, ""); err != nil {
		logger.LogActivityError(entity.ActivityProfileLike, targetID, err)
	}

	return true, nil
}
