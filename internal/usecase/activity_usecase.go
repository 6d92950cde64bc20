package usecase

import (
	"context"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/pkg/errors"
)

type ActivityUseCase struct {
	activityRepo repository.ActivityRepository
}

func NewActivityUseCase(activityRepo repository.ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{
		activityRepo: activityRepo,
	}
}

// Notify records a notification for userID about senderID's action. Upserted
// on the (user, type, sender, product) tuple so a like-unlike-like cycle
// refreshes one record instead of multiplying rows. Self-notifications are
// suppressed.
func (uc *ActivityUseCase) Notify(ctx context.Context, userID, activityType, senderID, content, productID string) error {
	if userID == "" || userID == senderID {
		return nil
	}

	activity := &entity.Activity{
		UserID:    userID,
		Type:      activityType,
		SenderID:  senderID,
		Content:   content,
		ProductID: productID,
	}

	return uc.activityRepo.Upsert(ctx, activity)
}

// Retract removes the tuple's notification. Callers invoke it on the inverse
// action (e.g. unlike); a missing record is not an error.
func (uc *ActivityUseCase) Retract(ctx context.Context, userID, activityType, senderID, productID string) error {
	if userID == "" || userID == senderID {
		return nil
	}

	key := entity.ActivityKey(userID, activityType, senderID, productID)
	return uc.activityRepo.Delete(ctx, key)
}

// MarkReviewPromptDone flips the reviewDone flag on the review_prompt that
// asked reviewerID to review revieweeID for the product, if one exists.
func (uc *ActivityUseCase) MarkReviewPromptDone(ctx context.Context, reviewerID, revieweeID, productID string) error {
	key := entity.ActivityKey(reviewerID, entity.ActivityReviewPrompt, revieweeID, productID)
	err := uc.activityRepo.MarkReviewDone(ctx, key)
	if errors.Is(err, "NOT_FOUND") {
		return nil
	}
	return err
}

func (uc *ActivityUseCase) List(ctx context.Context, userID string, page, limit int) ([]*entity.Activity, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.activityRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *ActivityUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.activityRepo.UnreadCount(ctx, userID)
}

func (uc *ActivityUseCase) MarkRead(ctx context.Context, userID, activityID string) error {
	activity, err := uc.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return err
	}

	if activity.UserID != userID {
		return errors.Forbidden("You don't have permission to update this activity", nil)
	}

	return uc.activityRepo.MarkRead(ctx, activityID)
}

func (uc *ActivityUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.activityRepo.MarkAllRead(ctx, userID)
}

func (uc *ActivityUseCase) Delete(ctx context.Context, userID, activityID string) error {
	activity, err := uc.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return err
	}

	if activity.UserID != userID {
		return errors.Forbidden("You don't have permission to delete this activity", nil)
	}

	return uc.activityRepo.Delete(ctx, activityID)
}
