package middleware

import (
	"net/http"
	"time"

	"github.com/pdadev/trackday-backend/pkg/config"
	"github.com/pdadev/trackday-backend/pkg/logger"
	"github.com/pdadev/trackday-backend/pkg/session"
)

// SessionCookieName carries the signed checkout session token.
const SessionCookieName = "td_session"

// CheckoutSession attaches a checkout session id to every request. A valid
// cookie is honored; a missing or bad one gets a fresh session minted and
// set, so the storefront never has to bootstrap sessions itself.
func CheckoutSession(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if id, err := session.Parse(cfg, cookie.Value); err == nil {
					sessionID = id
				}
			}

			if sessionID == "" {
				sessionID = session.NewSessionID()
				token, err := session.Mint(cfg, time.Now(), sessionID)
				if err != nil {
					if logg != nil {
						logg.Error(ctx, "minting checkout session token", err)
					}
				} else {
					http.SetCookie(w, &http.Cookie{
						Name:     SessionCookieName,
						Value:    token,
						Path:     "/",
						MaxAge:   int(cfg.TTL().Seconds()),
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
