package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/singerjob/singerjob/internal/auth"
	"github.com/singerjob/singerjob/internal/config"
	"github.com/singerjob/singerjob/internal/domain/user"
)

// Small interfaces so tests can fake the service and token manager.
type AccountService interface {
	Register(ctx context.Context, req user.RegisterRequest) (user.User, error)
	Login(ctx context.Context, email, password string) (user.User, error)
	Logout(ctx context.Context) error
}

type TokenIssuer interface {
	GenerateAccessToken(u user.User) (string, error)
	GenerateRefreshToken(u user.User) (string, error)
	VerifyRefreshToken(token string) (*auth.Claims, error)
}

type AuthHandler struct {
	accounts AccountService
	jwt      TokenIssuer
}

func NewAuthHandler(accounts AccountService, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		jwt:      jwt,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	u, err := h.accounts.Register(cctx, req)

	if err != nil {
		var verr *auth.ValidationError

		if errors.As(err, &verr) {
			RespondValidation(ctx, verr.Fields)
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	u, err := h.accounts.Login(cctx, req.Email, req.Password)

	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// one generic message for unknown email and wrong password
			RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
			return
		}

		RespondInternal(ctx, "Could not log in")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(u)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	refreshToken, err := h.jwt.GenerateRefreshToken(u)

	if err != nil {
		RespondInternal(ctx, "Could not generate refresh token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":        accessToken,
		"refreshToken": refreshToken,
		"user":         u,
	})
}

func (h *AuthHandler) Refresh(ctx *gin.Context) {
	var req RefreshRequest

	if !BindJSON(ctx, &req) {
		return
	}

	claims, err := h.jwt.VerifyRefreshToken(req.RefreshToken)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_refresh", "Invalid refresh token")
		return
	}

	u := user.User{
		ID:       claims.UserID,
		Email:    claims.Email,
		UserType: claims.UserType,
	}

	accessToken, err := h.jwt.GenerateAccessToken(u)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	refreshToken, err := h.jwt.GenerateRefreshToken(u)

	if err != nil {
		RespondInternal(ctx, "Could not generate refresh token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

// Logout clears the session record. Always 204: logging out twice is
// a no-op, and a failed removal still ends the client's session.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	_ = h.accounts.Logout(cctx)

	ctx.Status(http.StatusNoContent)
}
