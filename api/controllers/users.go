package controllers

import (
	"net/http"

	"github.com/videoteka/videoteka-backend/api/middleware"
	"github.com/videoteka/videoteka-backend/api/responses"
	"github.com/videoteka/videoteka-backend/api/validators"
	"github.com/videoteka/videoteka-backend/internal/users"
	pkgerrors "github.com/videoteka/videoteka-backend/pkg/errors"
	"github.com/videoteka/videoteka-backend/pkg/logger"
)

type avatarPayload struct {
	AvatarBase64 string `json:"avatar_base64" validate:"required"`
}

type passwordChangePayload struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// Me returns the authenticated user's profile.
func Me(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		username := middleware.UsernameFromContext(ctx)
		if username == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		user, err := svc.GetByUsername(ctx, username)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UpdateAvatar replaces the profile image and echoes the updated profile.
func UpdateAvatar(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		username := middleware.UsernameFromContext(ctx)
		if username == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body avatarPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.UpdateAvatar(ctx, username, body.AvatarBase64)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// ChangePassword swaps credentials and answers 204 on success.
func ChangePassword(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		username := middleware.UsernameFromContext(ctx)
		if username == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body passwordChangePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.ChangePassword(ctx, username, body.CurrentPassword, body.NewPassword); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
