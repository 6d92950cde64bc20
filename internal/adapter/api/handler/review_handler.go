package handler

import (
	"github.com/labstack/echo/v4"

	"barterhub/internal/usecase"
	"barterhub/pkg/response"
	"barterhub/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	RevieweeID string `json:"reviewee_id" validate:"required"`
	ProductID  string `json:"product_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"omitempty,max=1000"`
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reviewerID := c.Get("uid").(string)

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), reviewerID, usecase.CreateReviewInput{
		RevieweeID: req.RevieweeID,
		ProductID:  req.ProductID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id := c.Param("id")

	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reviewerID := c.Get("uid").(string)

	review, err := h.reviewUseCase.UpdateReview(c.Request().Context(), reviewerID, id, req.Rating, req.Comment)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id := c.Param("id")
	reviewerID := c.Get("uid").(string)

	if err := h.reviewUseCase.DeleteReview(c.Request().Context(), reviewerID, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Review deleted successfully",
	})
}

func (h *ReviewHandler) GetReview(c echo.Context) error {
	id := c.Param("id")

	review, err := h.reviewUseCase.GetReviewByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

func (h *ReviewHandler) ListUserReviews(c echo.Context) error {
	revieweeID := c.Param("id")

	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListReviews(c.Request().Context(), revieweeID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}
