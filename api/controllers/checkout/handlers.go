package checkout

import (
	"net/http"

	"github.com/pdadev/trackday-backend/api/middleware"
	"github.com/pdadev/trackday-backend/api/responses"
	checkoutsvc "github.com/pdadev/trackday-backend/internal/checkout"
	pkgerrors "github.com/pdadev/trackday-backend/pkg/errors"
	"github.com/pdadev/trackday-backend/pkg/logger"
)

// Enter begins checkout for the caller's session: the active cart is
// repriced, the selection snapshot is seeded from the offered add-ons, and
// both are returned so the storefront can render the participant forms.
func Enter(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeSession, "checkout session not available"))
			return
		}

		record, snap, err := svc.EnterCheckout(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutView{
			Cart:       cartToView(record),
			Selections: snapshotToView(snap),
		})
	}
}

// Totals reprices the cart against the stored selection snapshot and
// returns the authoritative totals.
func Totals(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeSession, "checkout session not available"))
			return
		}

		record, err := svc.Recalculate(ctx, sessionID, "totals")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartToView(record))
	}
}

// PlaceOrder finalizes checkout. Participant details arrive as form fields
// named participant_<i>_<field>; validation failures surface as 400s with
// the participant index in the message.
func PlaceOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeSession, "checkout session not available"))
			return
		}

		if err := r.ParseForm(); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "order form could not be parsed"))
			return
		}

		order, err := svc.PlaceOrder(ctx, sessionID, r.PostForm)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, orderToView(order))
	}
}
