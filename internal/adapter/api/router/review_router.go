package router

import (
	"barterhub/internal/adapter/api/handler"
	"barterhub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := e.Group("/v1/reviews")
	reviews.GET("/:id", reviewHandler.GetReview)

	authed := e.Group("/v1/reviews")
	authed.Use(authMiddleware.Authenticate)
	authed.POST("", reviewHandler.CreateReview)
	authed.PUT("/:id", reviewHandler.UpdateReview)
	authed.DELETE("/:id", reviewHandler.DeleteReview)
}
