package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/videoteka/videoteka-backend/api/responses"
	"github.com/videoteka/videoteka-backend/internal/catalog"
	pkgerrors "github.com/videoteka/videoteka-backend/pkg/errors"
	"github.com/videoteka/videoteka-backend/pkg/logger"
)

// FilmsByGenre lists the catalog entries for a genre. The route is public.
func FilmsByGenre(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		genre := strings.TrimSpace(chi.URLParam(r, "genre"))
		if genre == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "genre is required"))
			return
		}

		films, err := svc.ByGenre(ctx, genre)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, films)
	}
}
