package handler

import (
	"github.com/labstack/echo/v4"

	"barterhub/internal/usecase"
	"barterhub/pkg/response"
)

type SearchHandler struct {
	searchUseCase *usecase.SearchUseCase
}

func NewSearchHandler(searchUseCase *usecase.SearchUseCase) *SearchHandler {
	return &SearchHandler{
		searchUseCase: searchUseCase,
	}
}

type recordSearchRequest struct {
	Query     string `json:"query" validate:"required"`
	ProductID string `json:"product_id"`
}

func (h *SearchHandler) RecordSearch(c echo.Context) error {
	var req recordSearchRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	search, err := h.searchUseCase.RecordSearch(c.Request().Context(), userID, req.Query, req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, search)
}

func (h *SearchHandler) RecentSearches(c echo.Context) error {
	userID := c.Get("uid").(string)

	searches, err := h.searchUseCase.RecentSearches(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, searches)
}

func (h *SearchHandler) ClearSearches(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.searchUseCase.ClearSearches(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Recent searches cleared",
	})
}
