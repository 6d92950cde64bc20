package handler

import (
	"github.com/labstack/echo/v4"

	"barterhub/internal/domain/repository"
	"barterhub/internal/infrastructure/firebase"
	"barterhub/pkg/errors"
	"barterhub/pkg/response"
)

type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	userRepo     repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		userRepo:     userRepo,
	}
}

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) {
	devTokenHandler = NewDevTokenHandler(firebaseAuth, userRepo)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

// GenerateUserToken mints a long-lived token for a known user. Only wired up
// in development environments.
func (h *DevTokenHandler) GenerateUserToken(c echo.Context) error {
	var req struct {
		UserID string `json:"user_id" validate:"required"`
	}

	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), req.UserID)
	if err != nil {
		return response.Error(c, errors.NotFound("User", err))
	}

	token, err := h.firebaseAuth.GenerateLongLivedToken(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}

	result := map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	}
	if expiry, err := firebase.TokenExpiry(token); err == nil {
		result["expires_at"] = expiry
	}

	return response.Success(c, result)
}
