package router

import (
	"barterhub/internal/adapter/api/handler"
	"barterhub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupActivityRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	activityHandler := handler.GetActivityHandler()

	activities := e.Group("/v1/activities")
	activities.Use(authMiddleware.Authenticate)
	activities.GET("", activityHandler.ListActivities)
	activities.GET("/unread-count", activityHandler.UnreadCount)
	activities.PUT("/read-all", activityHandler.MarkAllRead)
	activities.PUT("/:id/read", activityHandler.MarkRead)
	activities.DELETE("/:id", activityHandler.DeleteActivity)
}
