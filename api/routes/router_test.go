package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdadev/trackday-backend/api/middleware"
	cartsvc "github.com/pdadev/trackday-backend/internal/cart"
	"github.com/pdadev/trackday-backend/internal/selections"
	"github.com/pdadev/trackday-backend/pkg/config"
	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/enums"
	"github.com/pdadev/trackday-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCheckout struct{}

func (stubCheckout) EnterCheckout(context.Context, string) (*models.CartRecord, selections.Snapshot, error) {
	return &models.CartRecord{ID: uuid.New(), Status: enums.CartStatusActive}, selections.Snapshot{}, nil
}

func (stubCheckout) ApplySelections(_ context.Context, _ string, _ uint64, snap selections.Snapshot) (selections.Snapshot, bool, error) {
	return snap, true, nil
}

func (stubCheckout) Recalculate(context.Context, string, string) (*models.CartRecord, error) {
	return &models.CartRecord{ID: uuid.New(), Status: enums.CartStatusActive}, nil
}

func (stubCheckout) PlaceOrder(context.Context, string, url.Values) (*models.Order, error) {
	return &models.Order{ID: uuid.New(), Status: enums.OrderStatusPlaced}, nil
}

type stubCart struct{}

func (stubCart) UpsertCart(context.Context, string, cartsvc.UpsertCartInput) (*models.CartRecord, error) {
	return &models.CartRecord{ID: uuid.New(), Status: enums.CartStatusActive}, nil
}

func (stubCart) GetActiveCart(context.Context, string) (*models.CartRecord, error) {
	return &models.CartRecord{ID: uuid.New(), Status: enums.CartStatusActive}, nil
}

func routerTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "development", Port: "8080"},
		Session: config.SessionConfig{
			Secret:   "router-test-secret-router-test-secret",
			Issuer:   "trackday-test",
			TTLHours: 1,
		},
	}
}

func newTestRouter(t *testing.T, registry *prometheus.Registry) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(routerTestConfig(), logg, stubPinger{}, stubPinger{}, nil, registry, stubCheckout{}, stubCart{}, nil)
}

func TestRouterHealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Trackday-Env"); got != "development" {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestRouterHealthReady(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouterMintsSessionCookie(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected session cookie to be minted")
	}
}

func TestRouterAddonSyncWireShape(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/addons", strings.NewReader(`{"seq":1,"addons":[]}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("expected success flag in body, got %s", w.Body.String())
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	router := newTestRouter(t, registry)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
