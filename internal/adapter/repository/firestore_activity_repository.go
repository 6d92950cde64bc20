package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/pkg/errors"
)

type firestoreActivityRepository struct {
	client *firestore.Client
}

func NewFirestoreActivityRepository(client *firestore.Client) repository.ActivityRepository {
	return &firestoreActivityRepository{
		client: client,
	}
}

func (r *firestoreActivityRepository) Upsert(ctx context.Context, activity *entity.Activity) error {
	if activity.ID == "" {
		activity.ID = entity.ActivityKey(activity.UserID, activity.Type, activity.SenderID, activity.ProductID)
	}

	now := time.Now()
	docRef := r.client.Collection("activities").Doc(activity.ID)

	existing, err := docRef.Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return errors.Internal("Failed to check existing activity", err)
	}

	if existing != nil && existing.Exists() {
		// Repeat of the same action refreshes the record instead of
		// multiplying rows; read state resets so the user sees it again.
		_, err = docRef.Update(ctx, []firestore.Update{
			{Path: "content", Value: activity.Content},
			{Path: "read", Value: false},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			return errors.Internal("Failed to refresh activity", err)
		}
		return nil
	}

	activity.CreatedAt = now
	activity.UpdatedAt = now
	activity.Read = false

	_, err = docRef.Set(ctx, activity)
	if err != nil {
		return errors.Internal("Failed to create activity", err)
	}
	return nil
}

func (r *firestoreActivityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	doc, err := r.client.Collection("activities").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Activity", err)
		}
		return nil, errors.Internal("Failed to get activity", err)
	}

	var activity entity.Activity
	if err := doc.DataTo(&activity); err != nil {
		return nil, errors.Internal("Failed to parse activity data", err)
	}

	return &activity, nil
}

func (r *firestoreActivityRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Activity, int64, error) {
	query := r.client.Collection("activities").
		Where("userId", "==", userID).
		OrderBy("updatedAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count activities", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var activities []*entity.Activity

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate activities", err)
		}

		var activity entity.Activity
		if err := doc.DataTo(&activity); err != nil {
			return nil, 0, errors.Internal("Failed to parse activity data", err)
		}
		activities = append(activities, &activity)
	}

	return activities, total, nil
}

func (r *firestoreActivityRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("activities").
		Where("userId", "==", userID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread activities", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreActivityRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.client.Collection("activities").Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Activity", err)
		}
		return errors.Internal("Failed to mark activity read", err)
	}
	return nil
}

func (r *firestoreActivityRepository) MarkAllRead(ctx context.Context, userID string) error {
	docs, err := r.client.Collection("activities").
		Where("userId", "==", userID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to list unread activities", err)
	}

	now := time.Now()
	for _, doc := range docs {
		_, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "read", Value: true},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			return errors.Internal("Failed to mark activities read", err)
		}
	}
	return nil
}

func (r *firestoreActivityRepository) MarkReviewDone(ctx context.Context, id string) error {
	_, err := r.client.Collection("activities").Doc(id).Update(ctx, []firestore.Update{
		{Path: "reviewDone", Value: true},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Activity", err)
		}
		return errors.Internal("Failed to mark review done", err)
	}
	return nil
}

func (r *firestoreActivityRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("activities").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete activity", err)
	}
	return nil
}
