package handler

import (
	"github.com/labstack/echo/v4"

	"barterhub/internal/usecase"
	"barterhub/pkg/response"
)

type LikeHandler struct {
	likeUseCase    *usecase.LikeUseCase
	productUseCase *usecase.ProductUseCase
}

func NewLikeHandler(likeUseCase *usecase.LikeUseCase, productUseCase *usecase.ProductUseCase) *LikeHandler {
	return &LikeHandler{
		likeUseCase:    likeUseCase,
		productUseCase: productUseCase,
	}
}

func (h *LikeHandler) ToggleProductLike(c echo.Context) error {
	productID := c.Param("id")
	userID := c.Get("uid").(string)

	liked, err := h.likeUseCase.ToggleProductLike(c.Request().Context(), userID, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"product_id": productID,
		"liked":      liked,
	})
}

func (h *LikeHandler) ToggleProfileLike(c echo.Context) error {
	targetID := c.Param("id")
	userID := c.Get("uid").(string)

	liked, err := h.likeUseCase.ToggleProfileLike(c.Request().Context(), userID, targetID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user_id": targetID,
		"liked":   liked,
	})
}

func (h *LikeHandler) ListLikedProducts(c echo.Context) error {
	userID := c.Get("uid").(string)

	products, err := h.productUseCase.ListLikedProducts(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}
