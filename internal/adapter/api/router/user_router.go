package router

import (
	"barterhub/internal/adapter/api/handler"
	"barterhub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()
	likeHandler := handler.GetLikeHandler()
	productHandler := handler.GetProductHandler()
	reviewHandler := handler.GetReviewHandler()

	me := e.Group("/v1/users/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.GetProfile)
	me.PUT("", userHandler.UpdateProfile)
	me.DELETE("", userHandler.DeleteAccount)
	me.GET("/liked-products", likeHandler.ListLikedProducts)

	users := e.Group("/v1/users")
	users.GET("/:id", userHandler.GetUser)
	users.GET("/:id/products", productHandler.ListUserProducts)
	users.GET("/:id/reviews", reviewHandler.ListUserReviews)

	users.POST("/:id/like", likeHandler.ToggleProfileLike, authMiddleware.Authenticate)
}
