package controllers

import (
	"net/http"
	"time"

	"github.com/angelmondragon/vidly-backend/api/middleware"
	"github.com/angelmondragon/vidly-backend/api/responses"
	"github.com/angelmondragon/vidly-backend/api/validators"
	"github.com/angelmondragon/vidly-backend/internal/rentals"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/angelmondragon/vidly-backend/pkg/logger"
)

func rentalServiceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rental service unavailable"))
}

// RentalCheckout takes one copy of a movie out for a customer and answers 201
// with the new rental.
func RentalCheckout(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			rentalServiceUnavailable(w, r, logg)
			return
		}

		var body rentals.CheckoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"movie_id":    body.MovieID.String(),
				"customer_id": body.CustomerID.String(),
			})
		}

		rental, err := svc.Checkout(ctx, body.CustomerID, body.MovieID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, rentals.FromModel(rental))
	}
}

// RentalReturn closes an open rental. The body is optional; without a
// date_returned the rental closes at the current time.
func RentalReturn(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			rentalServiceUnavailable(w, r, logg)
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rentals.ReturnRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		var returnedAt time.Time
		if body.DateReturned != nil {
			returnedAt = *body.DateReturned
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithRentalID(ctx, id.String())
		}

		rental, err := svc.Return(ctx, id, returnedAt)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, rentals.FromModel(rental))
	}
}

func RentalList(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			rentalServiceUnavailable(w, r, logg)
			return
		}
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rentals.FromModels(items))
	}
}

func RentalGet(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			rentalServiceUnavailable(w, r, logg)
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rental, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rentals.FromModel(rental))
	}
}

// RentalDelete is restricted to admins and leaves movie stock untouched.
func RentalDelete(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			rentalServiceUnavailable(w, r, logg)
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"rental_id":  id.String(),
				"deleted_by": middleware.UserIDFromContext(ctx),
			})
		}

		rental, err := svc.Delete(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(ctx, "rental.deleted")
		}
		responses.WriteSuccess(w, rentals.FromModel(rental))
	}
}
