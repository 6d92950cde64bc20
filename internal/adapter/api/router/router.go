package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"barterhub/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authClient *auth.Client) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupProductRouter(e, authMiddleware, authClient)
	SetupReviewRouter(e, authMiddleware)
	SetupActivityRouter(e, authMiddleware)
	SetupSearchRouter(e, authMiddleware)
	SetupFileRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
