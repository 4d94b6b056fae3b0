package controllers

import (
	"net/http"

	"github.com/videoteka/videoteka-backend/api/responses"
	"github.com/videoteka/videoteka-backend/pkg/db"
	pkgerrors "github.com/videoteka/videoteka-backend/pkg/errors"
	"github.com/videoteka/videoteka-backend/pkg/logger"
)

// HealthLive answers as soon as the process serves traffic.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "healthy"})
	}
}

// HealthReady verifies the backing stores. The redis pinger is nil when the
// rate limiter is disabled; only wired dependencies are checked.
func HealthReady(database db.Pinger, cache db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
