package router

import (
	"barterhub/internal/adapter/api/handler"
	"barterhub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupSearchRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	searchHandler := handler.GetSearchHandler()

	searches := e.Group("/v1/recent-searches")
	searches.Use(authMiddleware.Authenticate)
	searches.POST("", searchHandler.RecordSearch)
	searches.GET("", searchHandler.RecentSearches)
	searches.DELETE("", searchHandler.ClearSearches)
}
