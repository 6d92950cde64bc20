package usecase

import (
	"context"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/pkg/errors"
)

const recentSearchLimit = 10

type SearchUseCase struct {
	searchRepo repository.RecentSearchRepository
}

func NewSearchUseCase(searchRepo repository.RecentSearchRepository) *SearchUseCase {
	return &SearchUseCase{
		searchRepo: searchRepo,
	}
}

func (uc *SearchUseCase) RecordSearch(ctx context.Context, userID, query, productID string) (*entity.RecentSearch, error) {
	if query == "" {
		return nil, errors.BadRequest("Search query is required", nil)
	}

	search := &entity.RecentSearch{
		UserID:    userID,
		Query:     query,
		ProductID: productID,
	}

	if err := uc.searchRepo.Create(ctx, search); err != nil {
		return nil, err
	}

	return search, nil
}

func (uc *SearchUseCase) RecentSearches(ctx context.Context, userID string) ([]*entity.RecentSearch, error) {
	return uc.searchRepo.ListByUser(ctx, userID, recentSearchLimit)
}

func (uc *SearchUseCase) ClearSearches(ctx context.Context, userID string) error {
	return uc.searchRepo.DeleteByUser(ctx, userID)
}
