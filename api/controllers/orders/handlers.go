package orders

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pdadev/trackday-backend/api/middleware"
	"github.com/pdadev/trackday-backend/api/responses"
	"github.com/pdadev/trackday-backend/api/validators"
	ordersvc "github.com/pdadev/trackday-backend/internal/orders"
	"github.com/pdadev/trackday-backend/pkg/db/models"
	pkgerrors "github.com/pdadev/trackday-backend/pkg/errors"
	"github.com/pdadev/trackday-backend/pkg/logger"
	"github.com/pdadev/trackday-backend/pkg/pagination"
)

// Reader is the read surface the order endpoints need.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListBySession(ctx context.Context, sessionID string, params pagination.Params) ([]models.Order, string, error)
}

var _ Reader = (ordersvc.Repository)(nil)

// Get returns one order by id, scoped to the caller's session so one
// customer can never read another's order.
func Get(repo Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeSession, "checkout session not available"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := repo.GetByID(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if order.SessionID != sessionID {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		responses.WriteSuccess(w, orderToView(order))
	}
}

// List returns the caller's session order history, newest first.
func List(repo Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeSession, "checkout session not available"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params := pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}

		list, next, err := repo.ListBySession(ctx, sessionID, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		views := make([]orderView, 0, len(list))
		for i := range list {
			views = append(views, orderToView(&list[i]))
		}
		responses.WriteSuccess(w, listView{Orders: views, NextCursor: next})
	}
}
