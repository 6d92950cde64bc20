package router

import (
	"barterhub/internal/adapter/api/handler"
	"barterhub/internal/adapter/api/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authClient *auth.Client) {
	productHandler := handler.GetProductHandler()
	likeHandler := handler.GetLikeHandler()

	// The public listing surface is the only one reachable without a
	// token, so it gets the general IP budget.
	products := e.Group("/v1/products", middleware.GeneralRateLimit())
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	// Search records recent queries for signed-in callers, so the token is
	// verified when present but never required.
	e.GET("/v1/products/search", productHandler.SearchProducts, middleware.GeneralRateLimit(), VerifyToken(authClient))

	authed := e.Group("/v1/products")
	authed.Use(authMiddleware.Authenticate)
	authed.POST("/:id/like", likeHandler.ToggleProductLike)
	authed.POST("/:id/purchase-request", productHandler.RequestPurchase)
	authed.POST("/:id/purchase-request/accept", productHandler.AcceptPurchaseRequest)
	authed.POST("/:id/purchase-request/cancel", productHandler.CancelPurchaseRequest)
	authed.POST("/:id/purchase", productHandler.PurchaseProduct)

	myProducts := e.Group("/v1/my-products")
	myProducts.Use(authMiddleware.Authenticate)
	myProducts.GET("", productHandler.ListMyProducts)
	myProducts.POST("", productHandler.CreateProduct)
	myProducts.PUT("/:id", productHandler.UpdateProduct)
	myProducts.DELETE("/:id", productHandler.DeleteProduct)
}
