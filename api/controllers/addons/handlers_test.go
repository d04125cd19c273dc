package addons

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pdadev/trackday-backend/api/middleware"
	"github.com/pdadev/trackday-backend/internal/selections"
	"github.com/pdadev/trackday-backend/pkg/db/models"
)

type stubCheckout struct {
	applied    selections.Snapshot
	appliedSeq uint64
	stored     selections.Snapshot
	err        error
}

func (s *stubCheckout) EnterCheckout(context.Context, string) (*models.CartRecord, selections.Snapshot, error) {
	return nil, selections.Snapshot{}, nil
}

func (s *stubCheckout) ApplySelections(_ context.Context, _ string, seq uint64, snap selections.Snapshot) (selections.Snapshot, bool, error) {
	if s.err != nil {
		return selections.Snapshot{}, false, s.err
	}
	s.applied = snap
	s.appliedSeq = seq
	if s.stored.Participants == nil {
		return snap, true, nil
	}
	return s.stored, false, nil
}

func (s *stubCheckout) Recalculate(context.Context, string, string) (*models.CartRecord, error) {
	return nil, nil
}

func (s *stubCheckout) PlaceOrder(context.Context, string, url.Values) (*models.Order, error) {
	return nil, nil
}

func syncRequestWithSession(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkout/addons", strings.NewReader(body))
	ctx := middleware.WithSessionID(req.Context(), "sess-1")
	return req.WithContext(ctx)
}

func TestSyncStoresSnapshot(t *testing.T) {
	t.Parallel()

	svc := &stubCheckout{}
	handler := Sync(svc, nil)

	body := `{"seq":3,"addons":[{"participant":1,"addons":[{"field_name":"photo-package","label":"Photo Package","price":50,"selected":true}]}]}`
	w := httptest.NewRecorder()
	handler(w, syncRequestWithSession(body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.appliedSeq != 3 {
		t.Fatalf("expected seq 3, got %d", svc.appliedSeq)
	}
	if len(svc.applied.Participants) != 1 || !svc.applied.Participants[0].Options[0].Selected {
		t.Fatalf("unexpected applied snapshot: %+v", svc.applied)
	}

	var resp struct {
		Success bool              `json:"success"`
		Stored  []json.RawMessage `json:"stored"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || len(resp.Stored) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSyncMalformedPayloadStoresEmpty(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"addons":"not-an-array"}`, `not json at all`, ``} {
		svc := &stubCheckout{}
		w := httptest.NewRecorder()
		Sync(svc, nil)(w, syncRequestWithSession(body))

		if w.Code != http.StatusOK {
			t.Errorf("body %q: expected 200, got %d", body, w.Code)
		}
		if len(svc.applied.Participants) != 0 {
			t.Errorf("body %q: expected empty snapshot stored, got %+v", body, svc.applied)
		}

		var resp struct {
			Success bool `json:"success"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || !resp.Success {
			t.Errorf("body %q: expected success acknowledgment, got err=%v resp=%+v", body, err, resp)
		}
	}
}

func TestSyncMissingSessionFails(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout/addons", strings.NewReader("{}"))
	Sync(&stubCheckout{}, nil)(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Message == "" {
		t.Fatalf("expected failure message, got %+v", resp)
	}
}

func TestSyncStoreErrorFails(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Sync(&stubCheckout{err: errors.New("redis down")}, nil)(w, syncRequestWithSession("{}"))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestSyncStaleSeqReturnsAuthoritative(t *testing.T) {
	t.Parallel()

	svc := &stubCheckout{stored: selections.Snapshot{Participants: []selections.Participant{
		{Index: 1, Options: []selections.Option{{FieldName: "photo-package", Label: "Photo Package", Selected: true}}},
	}}}
	w := httptest.NewRecorder()
	Sync(svc, nil)(w, syncRequestWithSession(`{"seq":1,"addons":[]}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp syncSuccess
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Stored) != 1 || !resp.Stored[0].Addons[0].Selected {
		t.Fatalf("expected authoritative snapshot echoed, got %+v", resp.Stored)
	}
}
