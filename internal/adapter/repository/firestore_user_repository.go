package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.Recalculate()

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := r.client.Collection("users").Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query user by email", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("User", nil)
	}

	var user entity.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.Recalculate()

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"username":  user.Username,
		"fullName":  user.FullName,
		"bio":       user.Bio,
		"photoURL":  user.PhotoURL,
		"updatedAt": time.Now(),
	}

	// Skip empty strings so a partial update never wipes existing data
	cleanUpdateData := make(map[string]interface{})
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		cleanUpdateData[key] = value
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("users").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete user", err)
	}
	return nil
}

func (r *firestoreUserRepository) AddLikedProduct(ctx context.Context, userID, productID string) error {
	return r.arrayUpdate(ctx, userID, "likedProducts", firestore.ArrayUnion(productID))
}

func (r *firestoreUserRepository) RemoveLikedProduct(ctx context.Context, userID, productID string) error {
	return r.arrayUpdate(ctx, userID, "likedProducts", firestore.ArrayRemove(productID))
}

func (r *firestoreUserRepository) AddLikedUser(ctx context.Context, userID, targetID string) error {
	return r.arrayUpdate(ctx, userID, "likedUsers", firestore.ArrayUnion(targetID))
}

func (r *firestoreUserRepository) RemoveLikedUser(ctx context.Context, userID, targetID string) error {
	return r.arrayUpdate(ctx, userID, "likedUsers", firestore.ArrayRemove(targetID))
}

func (r *firestoreUserRepository) AddProfileLike(ctx context.Context, userID, likerID string) error {
	return r.arrayUpdate(ctx, userID, "likes", firestore.ArrayUnion(likerID))
}

func (r *firestoreUserRepository) RemoveProfileLike(ctx context.Context, userID, likerID string) error {
	return r.arrayUpdate(ctx, userID, "likes", firestore.ArrayRemove(likerID))
}

func (r *firestoreUserRepository) arrayUpdate(ctx context.Context, userID, field string, value interface{}) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: field, Value: value},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user "+field, err)
	}
	return nil
}

func (r *firestoreUserRepository) ApplyRatingDelta(ctx context.Context, userID string, sumDelta, countDelta int) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "ratingSum", Value: firestore.Increment(sumDelta)},
		{Path: "reviewCount", Value: firestore.Increment(countDelta)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user rating", err)
	}
	return nil
}
