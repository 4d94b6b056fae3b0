package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/videoteka/videoteka-backend/api/controllers"
	"github.com/videoteka/videoteka-backend/api/middleware"
	"github.com/videoteka/videoteka-backend/internal/catalog"
	"github.com/videoteka/videoteka-backend/internal/collections"
	"github.com/videoteka/videoteka-backend/internal/users"
	"github.com/videoteka/videoteka-backend/pkg/config"
	"github.com/videoteka/videoteka-backend/pkg/db"
	"github.com/videoteka/videoteka-backend/pkg/logger"
	"github.com/videoteka/videoteka-backend/pkg/metrics"
	"github.com/videoteka/videoteka-backend/pkg/redis"
)

// Deps carries everything the router needs. The redis client may be nil, in
// which case auth throttling is skipped.
type Deps struct {
	Cfg         *config.Config
	Logg        *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Users     *users.Service
	Bookmarks *collections.Service
	Cart      *collections.Service
	Catalog   *catalog.Service
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logg),
		middleware.RequestID(d.Logg),
		middleware.Logging(d.Logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		d.Cfg.AuthRateLimit.LoginWindow,
		d.Cfg.AuthRateLimit.LoginIPLimit,
		d.Cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		d.Cfg.AuthRateLimit.RegisterWindow,
		d.Cfg.AuthRateLimit.RegisterIPLimit,
		d.Cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(d.DB, redisPinger(d.Redis), d.Logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore(d.Redis), d.Logg)).
			Post("/register", controllers.Register(d.Users, d.Logg))
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore(d.Redis), d.Logg)).
			Post("/login", controllers.Login(d.Users, d.Cfg.JWT, d.Logg))

		r.Get("/genres/{genre}/films", controllers.FilmsByGenre(d.Catalog, d.Logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(d.Cfg.JWT, d.Logg))

			r.Get("/me", controllers.Me(d.Users, d.Logg))
			r.Put("/me/avatar", controllers.UpdateAvatar(d.Users, d.Logg))
			r.Put("/me/password", controllers.ChangePassword(d.Users, d.Logg))

			r.Get("/bookmarks", controllers.CollectionList(d.Bookmarks, d.Logg))
			r.Post("/bookmarks", controllers.CollectionAdd(d.Bookmarks, d.Logg))
			r.Delete("/bookmarks/{movieID}", controllers.CollectionRemove(d.Bookmarks, d.Logg))

			r.Get("/cart", controllers.CollectionList(d.Cart, d.Logg))
			r.Post("/cart", controllers.CollectionAdd(d.Cart, d.Logg))
			r.Delete("/cart/{movieID}", controllers.CollectionRemove(d.Cart, d.Logg))
		})
	})

	return r
}

// Typed nils must not reach the interface-valued health check.
func redisPinger(client *redis.Client) db.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func rateStore(client *redis.Client) middleware.RateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}
