package handler

import (
	"github.com/labstack/echo/v4"

	"barterhub/internal/usecase"
	"barterhub/pkg/response"
	"barterhub/pkg/utils"
)

type ActivityHandler struct {
	activityUseCase *usecase.ActivityUseCase
}

func NewActivityHandler(activityUseCase *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{
		activityUseCase: activityUseCase,
	}
}

func (h *ActivityHandler) ListActivities(c echo.Context) error {
	userID := c.Get("uid").(string)

	pagination := utils.GetPaginationParams(c)

	activities, total, err := h.activityUseCase.List(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, activities, total, pagination.Page, pagination.PageSize)
}

func (h *ActivityHandler) UnreadCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.activityUseCase.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{
		"unread_count": count,
	})
}

func (h *ActivityHandler) MarkRead(c echo.Context) error {
	id := c.Param("id")
	userID := c.Get("uid").(string)

	if err := h.activityUseCase.MarkRead(c.Request().Context(), userID, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Activity marked as read",
	})
}

func (h *ActivityHandler) MarkAllRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.activityUseCase.MarkAllRead(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "All activities marked as read",
	})
}

func (h *ActivityHandler) DeleteActivity(c echo.Context) error {
	id := c.Param("id")
	userID := c.Get("uid").(string)

	if err := h.activityUseCase.Delete(c.Request().Context(), userID, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Activity deleted successfully",
	})
}
