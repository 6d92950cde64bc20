package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/pkg/errors"
)

type firestoreRecentSearchRepository struct {
	client *firestore.Client
}

func NewFirestoreRecentSearchRepository(client *firestore.Client) repository.RecentSearchRepository {
	return &firestoreRecentSearchRepository{
		client: client,
	}
}

func (r *firestoreRecentSearchRepository) Create(ctx context.Context, search *entity.RecentSearch) error {
	if search.ID == "" {
		doc := r.client.Collection("recent_searches").NewDoc()
		search.ID = doc.ID
	}
	search.CreatedAt = time.Now()

	_, err := r.client.Collection("recent_searches").Doc(search.ID).Set(ctx, search)
	if err != nil {
		return errors.Internal("Failed to record search", err)
	}
	return nil
}

func (r *firestoreRecentSearchRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.RecentSearch, error) {
	// No retention job; the cap is applied at query time.
	query := r.client.Collection("recent_searches").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)

	iter := query.Documents(ctx)
	var searches []*entity.RecentSearch

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate recent searches", err)
		}

		var search entity.RecentSearch
		if err := doc.DataTo(&search); err != nil {
			return nil, errors.Internal("Failed to parse search data", err)
		}
		searches = append(searches, &search)
	}

	return searches, nil
}

func (r *firestoreRecentSearchRepository) DeleteByUser(ctx context.Context, userID string) error {
	docs, err := r.client.Collection("recent_searches").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to list recent searches", err)
	}

	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to clear recent searches", err)
		}
	}
	return nil
}
