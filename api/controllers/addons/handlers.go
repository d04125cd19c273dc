package addons

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pdadev/trackday-backend/api/middleware"
	"github.com/pdadev/trackday-backend/api/responses"
	checkoutsvc "github.com/pdadev/trackday-backend/internal/checkout"
	"github.com/pdadev/trackday-backend/pkg/logger"
)

// Sync receives the storefront's full selection snapshot and stores it,
// repricing the cart. The payload is handled fail-open: anything that does
// not parse stores an empty snapshot and still acknowledges success, so a
// buggy client can never wedge a sale. Only a missing session is a hard
// failure, since pricing cannot be trusted without one.
func Sync(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteRaw(w, http.StatusServiceUnavailable, syncFailure{Message: "checkout session not available"})
			return
		}

		var payload syncRequest
		if body, err := io.ReadAll(r.Body); err == nil {
			// Decode errors fall through with a zero payload.
			_ = json.Unmarshal(body, &payload)
		}
		snap := snapshotFromWire(payload.Addons)

		stored, _, err := svc.ApplySelections(ctx, sessionID, payload.Seq, snap)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "applying selection snapshot", err)
			}
			responses.WriteRaw(w, http.StatusServiceUnavailable, syncFailure{Message: "selections could not be stored"})
			return
		}

		responses.WriteRaw(w, http.StatusOK, syncSuccess{Success: true, Stored: snapshotToWire(stored)})
	}
}
