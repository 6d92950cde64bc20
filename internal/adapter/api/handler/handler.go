package handler

import (
	"barterhub/internal/usecase"
)

var (
	authHandler     *AuthHandler
	userHandler     *UserHandler
	productHandler  *ProductHandler
	likeHandler     *LikeHandler
	reviewHandler   *ReviewHandler
	activityHandler *ActivityHandler
	searchHandler   *SearchHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	productUseCase *usecase.ProductUseCase,
	likeUseCase *usecase.LikeUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	activityUseCase *usecase.ActivityUseCase,
	searchUseCase *usecase.SearchUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	productHandler = NewProductHandler(productUseCase, searchUseCase)
	likeHandler = NewLikeHandler(likeUseCase, productUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	activityHandler = NewActivityHandler(activityUseCase)
	searchHandler = NewSearchHandler(searchUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetLikeHandler() *LikeHandler {
	return likeHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetActivityHandler() *ActivityHandler {
	return activityHandler
}

func GetSearchHandler() *SearchHandler {
	return searchHandler
}
