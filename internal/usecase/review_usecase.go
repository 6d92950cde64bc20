package usecase

import (
	"context"
	"fmt"
	"time"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/pkg/errors"
	"barterhub/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	activities  *ActivityUseCase
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	activities *ActivityUseCase,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		activities:  activities,
	}
}

type CreateReviewInput struct {
	RevieweeID string
	ProductID  string
	Rating     int
	Comment    string
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID string, input CreateReviewInput) (*entity.Review, error) {
	if reviewerID == input.RevieweeID {
		return nil, errors.BadRequest("You cannot review yourself", nil)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	reviewee, err := uc.userRepo.GetByID(ctx, input.RevieweeID)
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != input.RevieweeID {
		return nil, errors.BadRequest("Product does not belong to the reviewed user", nil)
	}

	key := entity.ReviewKey(reviewerID, input.RevieweeID, input.ProductID)
	existing, err := uc.reviewRepo.GetByID(ctx, key)
	if err == nil && existing != nil {
		return nil, errors.BadRequest("You have already reviewed this user for this product", nil)
	}

	review := &entity.Review{
		ID:         key,
		ReviewerID: reviewerID,
		RevieweeID: input.RevieweeID,
		ProductID:  input.ProductID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.userRepo.ApplyRatingDelta(ctx, input.RevieweeID, input.Rating, 1); err != nil {
		logger.Warn("Rating aggregate update failed for user %s: %v", input.RevieweeID, err)
	}

	if err := uc.activities.MarkReviewPromptDone(ctx, reviewerID, input.RevieweeID, input.ProductID); err != nil {
		logger.Warn("Review prompt flag update failed for user %s: %v", reviewerID, err)
	}

	content := fmt.Sprintf("You received a %d-star review", input.Rating)
	if err := uc.activities.Notify(ctx, reviewee.ID, entity.ActivityReview, reviewerID, content, input.ProductID); err != nil {
		logger.LogActivityError(entity.ActivityReview, reviewee.ID, err)
	}

	return review, nil
}

func (uc *ReviewUseCase) UpdateReview(ctx context.Context, reviewerID, reviewID string, rating int, comment string) (*entity.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.ReviewerID != reviewerID {
		return nil, errors.Forbidden("You don't have permission to update this review", nil)
	}

	// Re-derive the aggregate: remove the old contribution, add the new
	// one at constant count.
	sumDelta := rating - review.Rating

	review.Rating = rating
	review.Comment = comment
	review.UpdatedAt = time.Now()

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if sumDelta != 0 {
		if err := uc.userRepo.ApplyRatingDelta(ctx, review.RevieweeID, sumDelta, 0); err != nil {
			logger.Warn("Rating aggregate update failed for user %s: %v", review.RevieweeID, err)
		}
	}

	return review, nil
}

func (uc *ReviewUseCase) DeleteReview(ctx context.Context, reviewerID, reviewID string) error {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.ReviewerID != reviewerID {
		return errors.Forbidden("You don't have permission to delete this review", nil)
	}

	if err := uc.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	// Floor the aggregate at zero; a desynced counter must never go negative
	sumDelta, countDelta := -review.Rating, -1
	if reviewee, err := uc.userRepo.GetByID(ctx, review.RevieweeID); err == nil {
		if reviewee.ReviewCount <= 1 {
			sumDelta = -reviewee.RatingSum
			countDelta = -reviewee.ReviewCount
		}
	}

	if err := uc.userRepo.ApplyRatingDelta(ctx, review.RevieweeID, sumDelta, countDelta); err != nil {
		logger.Warn("Rating aggregate update failed for user %s: %v", review.RevieweeID, err)
	}

	return nil
}

func (uc *ReviewUseCase) GetReviewByID(ctx context.Context, id string) (*entity.Review, error) {
	return uc.reviewRepo.GetByID(ctx, id)
}

func (uc *ReviewUseCase) ListReviews(ctx context.Context, revieweeID string, page, limit int) ([]*entity.Review, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.reviewRepo.ListByReviewee(ctx, revieweeID, limit, offset)
}
