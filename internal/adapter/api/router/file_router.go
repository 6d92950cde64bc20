package router

import (
	"barterhub/internal/adapter/api/handler"
	"barterhub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)
	files.Use(middleware.UploadRateLimit())
	files.POST("", fileHandler.UploadFile)
	files.DELETE("", fileHandler.DeleteFile)
}
