package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/videoteka/videoteka-backend/api/middleware"
	"github.com/videoteka/videoteka-backend/api/responses"
	"github.com/videoteka/videoteka-backend/api/validators"
	"github.com/videoteka/videoteka-backend/internal/collections"
	pkgerrors "github.com/videoteka/videoteka-backend/pkg/errors"
	"github.com/videoteka/videoteka-backend/pkg/logger"
)

// The bookmarks and cart surfaces are the same three handlers bound to
// different services.

// CollectionList returns the authenticated user's items.
func CollectionList(svc *collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		username := middleware.UsernameFromContext(ctx)
		if username == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		items, err := svc.List(ctx, username)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CollectionAdd stores a film snapshot and answers 201 with the stored row.
func CollectionAdd(svc *collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		username := middleware.UsernameFromContext(ctx)
		if username == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body collections.ItemInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.Add(ctx, username, body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// CollectionRemove deletes the entry for the movie id in the path.
func CollectionRemove(svc *collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		username := middleware.UsernameFromContext(ctx)
		if username == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		movieID := strings.TrimSpace(chi.URLParam(r, "movieID"))
		if movieID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "movie id is required"))
			return
		}

		if err := svc.Remove(ctx, username, movieID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
