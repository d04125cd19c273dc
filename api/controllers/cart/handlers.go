package cart

import (
	"net/http"

	"github.com/pdadev/trackday-backend/api/middleware"
	"github.com/pdadev/trackday-backend/api/responses"
	"github.com/pdadev/trackday-backend/api/validators"
	cartsvc "github.com/pdadev/trackday-backend/internal/cart"
	pkgerrors "github.com/pdadev/trackday-backend/pkg/errors"
	"github.com/pdadev/trackday-backend/pkg/logger"
)

// Upsert replaces the session's active cart with the posted items. Quoted
// unit prices are computed server side from the catalog plus any attached
// add-ons, never trusted from the client.
func Upsert(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeSession, "checkout session not available"))
			return
		}

		var payload upsertRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		record, err := svc.UpsertCart(ctx, sessionID, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartToView(record))
	}
}

// Fetch returns the session's active cart.
func Fetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeSession, "checkout session not available"))
			return
		}

		record, err := svc.GetActiveCart(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartToView(record))
	}
}
