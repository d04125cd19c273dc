package selections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/pdadev/trackday-backend/pkg/errors"
	"github.com/pdadev/trackday-backend/pkg/metrics"
)

type sessionCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CheckoutAddonsKey(sessionID string) string
}

// Store holds the authoritative per-session selection snapshot. Writes
// replace the whole snapshot; reads fail open to an empty one.
type Store interface {
	Seed(ctx context.Context, sessionID string, snap Snapshot) error
	Replace(ctx context.Context, sessionID string, seq uint64, snap Snapshot) (Snapshot, bool, error)
	Get(ctx context.Context, sessionID string) (Snapshot, error)
	Clear(ctx context.Context, sessionID string) error
}

type store struct {
	cache   sessionCache
	ttl     time.Duration
	metrics *metrics.CheckoutMetrics
}

// NewStore builds a selection store backed by the provided cache. metrics
// may be nil.
func NewStore(cache sessionCache, ttl time.Duration, m *metrics.CheckoutMetrics) (Store, error) {
	if cache == nil {
		return nil, fmt.Errorf("session cache required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("snapshot ttl must be positive")
	}
	return &store{cache: cache, ttl: ttl, metrics: m}, nil
}

// Seed writes the initial snapshot for a session, resetting the sequence.
// Called when the buyer enters checkout, after any previous state is
// cleared. Seeding over an existing snapshot is a no-op so repeated page
// loads within one session do not wipe the buyer's toggles. The first
// write claims the key atomically; a present but unusable payload is
// overwritten.
func (s *store) Seed(ctx context.Context, sessionID string, snap Snapshot) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	payload, err := json.Marshal(record{Seq: 0, Snapshot: Normalize(snap)})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode selection snapshot")
	}

	key := s.cache.CheckoutAddonsKey(sessionID)
	applied, err := s.cache.SetNX(ctx, key, payload, s.ttl)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSession, err, "seed selection snapshot")
	}
	if applied {
		return nil
	}

	current, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !current.Snapshot.IsEmpty() {
		return nil
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSession, err, "seed selection snapshot")
	}
	return nil
}

// Replace swaps in a new snapshot unless a newer one is already stored.
// A zero seq always applies (last write wins for clients that do not
// sequence their updates). The returned snapshot is the authoritative one
// after the call, whether or not the replacement applied.
func (s *store) Replace(ctx context.Context, sessionID string, seq uint64, snap Snapshot) (Snapshot, bool, error) {
	if sessionID == "" {
		return Snapshot{}, false, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	current, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, false, err
	}

	if seq != 0 && current.Seq != 0 && seq <= current.Seq {
		s.metrics.IncStaleDiscard("stale")
		return current.Snapshot, false, nil
	}

	next := record{Seq: seq, Snapshot: Normalize(snap)}
	if err := s.write(ctx, sessionID, next); err != nil {
		return Snapshot{}, false, err
	}
	s.metrics.IncSelectionUpdate("applied")
	return next.Snapshot, true, nil
}

// Get returns the stored snapshot. A missing or unreadable key yields an
// empty snapshot, not an error.
func (s *store) Get(ctx context.Context, sessionID string) (Snapshot, error) {
	if sessionID == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return rec.Snapshot, nil
}

// Clear removes the session's snapshot entirely.
func (s *store) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.cache.Del(ctx, s.cache.CheckoutAddonsKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSession, err, "clear selection snapshot")
	}
	return nil
}

func (s *store) load(ctx context.Context, sessionID string) (record, error) {
	raw, err := s.cache.Get(ctx, s.cache.CheckoutAddonsKey(sessionID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return record{Snapshot: Snapshot{Participants: []Participant{}}}, nil
		}
		return record{}, pkgerrors.Wrap(pkgerrors.CodeSession, err, "load selection snapshot")
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// Corrupt payloads degrade to empty rather than wedging checkout.
		return record{Snapshot: Snapshot{Participants: []Participant{}}}, nil
	}
	rec.Snapshot = Normalize(rec.Snapshot)
	return rec, nil
}

func (s *store) write(ctx context.Context, sessionID string, rec record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode selection snapshot")
	}
	if err := s.cache.Set(ctx, s.cache.CheckoutAddonsKey(sessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSession, err, "store selection snapshot")
	}
	return nil
}
