package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/vidly-backend/api/responses"
	"github.com/angelmondragon/vidly-backend/api/validators"
	"github.com/angelmondragon/vidly-backend/internal/movies"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/angelmondragon/vidly-backend/pkg/logger"
	"github.com/google/uuid"
)

func movieServiceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "movie service unavailable"))
}

func MovieList(svc movies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			movieServiceUnavailable(w, r, logg)
			return
		}
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func MovieGet(svc movies.Service, logg *logger.Logger) http.HandlerFunc {
	return movieByID(svc, logg, movies.Service.Get)
}

// MovieToggleLiked flips the liked flag and returns the updated movie.
func MovieToggleLiked(svc movies.Service, logg *logger.Logger) http.HandlerFunc {
	return movieByID(svc, logg, movies.Service.ToggleLiked)
}

func MovieDelete(svc movies.Service, logg *logger.Logger) http.HandlerFunc {
	return movieByID(svc, logg, movies.Service.Delete)
}

// MovieCreate requires the referenced genre to exist.
func MovieCreate(svc movies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			movieServiceUnavailable(w, r, logg)
			return
		}
		var body movies.MovieInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		movie, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, movie)
	}
}

func MovieUpdate(svc movies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			movieServiceUnavailable(w, r, logg)
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body movies.MovieInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		movie, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, movie)
	}
}

type movieLookup func(svc movies.Service, ctx context.Context, id uuid.UUID) (*movies.MovieDTO, error)

func movieByID(svc movies.Service, logg *logger.Logger, lookup movieLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			movieServiceUnavailable(w, r, logg)
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		movie, err := lookup(svc, r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, movie)
	}
}
