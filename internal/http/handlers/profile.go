package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/singerjob/singerjob/internal/config"
	"github.com/singerjob/singerjob/internal/domain/user"
	"github.com/singerjob/singerjob/internal/http/middlewares"
)

type ProfileService interface {
	CurrentSession(ctx context.Context) (user.User, bool, error)
	UpdateProfile(ctx context.Context, id string, t user.UserType, req user.UpdateProfileRequest) (user.User, error)
}

type ProfileHandler struct {
	profiles ProfileService
}

func NewProfileHandler(profiles ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	u, found, err := h.profiles.CurrentSession(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not fetch profile")
		return
	}

	if !found {
		RespondNotFound(ctx, "No user logged in")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) Update(ctx *gin.Context) {
	var req user.UpdateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	id, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	t, ok := middlewares.UserTypeFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	u, err := h.profiles.UpdateProfile(cctx, id, t, req)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not update profile")
		return
	}

	ctx.JSON(http.StatusOK, u)
}
