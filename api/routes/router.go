package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/vidly-backend/api/controllers"
	"github.com/angelmondragon/vidly-backend/api/middleware"
	"github.com/angelmondragon/vidly-backend/internal/auth"
	"github.com/angelmondragon/vidly-backend/internal/customers"
	"github.com/angelmondragon/vidly-backend/internal/genres"
	"github.com/angelmondragon/vidly-backend/internal/movies"
	"github.com/angelmondragon/vidly-backend/internal/rentals"
	"github.com/angelmondragon/vidly-backend/internal/users"
	"github.com/angelmondragon/vidly-backend/pkg/config"
	"github.com/angelmondragon/vidly-backend/pkg/logger"
	"github.com/angelmondragon/vidly-backend/pkg/redis"
)

// Dependencies bundles what the HTTP layer needs. Redis and Metrics may be
// nil; idempotency and auth throttling are skipped without redis.
type Dependencies struct {
	DB      redis.Pinger
	Redis   *redis.Client
	Metrics prometheus.Gatherer

	Auth      auth.Service
	Register  auth.RegisterService
	Users     users.Service
	Genres    genres.Service
	Customers customers.Service
	Movies    movies.Service
	Rentals   rentals.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	var (
		cache            redis.Pinger
		rateStore        middleware.RateLimitStore
		idempotencyStore redis.IdempotencyStore
	)
	if deps.Redis != nil {
		cache, rateStore, idempotencyStore = deps.Redis, deps.Redis, deps.Redis
	}

	authn := middleware.Auth(cfg.JWT, logg)
	admin := middleware.RequireAdmin(logg)
	idempotent := middleware.Idempotency(idempotencyStore, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cache, logg))
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(middleware.LoginRateLimitPolicy(cfg.AuthRateLimit), rateStore, logg)).
			Post("/auth/login", controllers.AuthLogin(deps.Auth, logg))

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit), rateStore, logg)).
				Post("/", controllers.UserRegister(deps.Register, logg))
			r.With(authn).Get("/me", controllers.UserMe(deps.Users, logg))
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", controllers.GenreList(deps.Genres, logg))
			r.With(authn).Post("/", controllers.GenreCreate(deps.Genres, logg))
			r.Get("/{id}", controllers.GenreGet(deps.Genres, logg))
			r.With(authn).Put("/{id}", controllers.GenreUpdate(deps.Genres, logg))
			r.With(authn, admin).Delete("/{id}", controllers.GenreDelete(deps.Genres, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(deps.Customers, logg))
			r.With(authn).Post("/", controllers.CustomerCreate(deps.Customers, logg))
			r.Get("/{id}", controllers.CustomerGet(deps.Customers, logg))
			r.With(authn).Put("/{id}", controllers.CustomerUpdate(deps.Customers, logg))
			r.With(authn, admin).Delete("/{id}", controllers.CustomerDelete(deps.Customers, logg))
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", controllers.MovieList(deps.Movies, logg))
			r.With(authn).Post("/", controllers.MovieCreate(deps.Movies, logg))
			r.With(authn).Get("/{id}", controllers.MovieGet(deps.Movies, logg))
			r.With(authn).Put("/{id}", controllers.MovieUpdate(deps.Movies, logg))
			r.Patch("/{id}", controllers.MovieToggleLiked(deps.Movies, logg))
			r.With(authn, admin).Delete("/{id}", controllers.MovieDelete(deps.Movies, logg))
		})

		r.Route("/rentals", func(r chi.Router) {
			r.Get("/", controllers.RentalList(deps.Rentals, logg))
			r.With(authn, idempotent).Post("/", controllers.RentalCheckout(deps.Rentals, logg))
			r.With(authn).Get("/{id}", controllers.RentalGet(deps.Rentals, logg))
			r.With(authn, idempotent).Patch("/{id}/return", controllers.RentalReturn(deps.Rentals, logg))
			r.With(authn, admin).Delete("/{id}", controllers.RentalDelete(deps.Rentals, logg))
		})
	})

	return r
}
