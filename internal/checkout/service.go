package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"gorm.io/gorm"

	"github.com/pdadev/trackday-backend/internal/cart"
	"github.com/pdadev/trackday-backend/internal/catalog"
	"github.com/pdadev/trackday-backend/internal/orders"
	"github.com/pdadev/trackday-backend/internal/participants"
	"github.com/pdadev/trackday-backend/internal/pricing"
	"github.com/pdadev/trackday-backend/internal/selections"
	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/enums"
	pkgerrors "github.com/pdadev/trackday-backend/pkg/errors"
	"github.com/pdadev/trackday-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service orchestrates the checkout flow: seeding selections on entry,
// reconciling prices as selections change, and placing the final order.
type Service interface {
	EnterCheckout(ctx context.Context, sessionID string) (*models.CartRecord, selections.Snapshot, error)
	ApplySelections(ctx context.Context, sessionID string, seq uint64, snap selections.Snapshot) (selections.Snapshot, bool, error)
	Recalculate(ctx context.Context, sessionID, trigger string) (*models.CartRecord, error)
	PlaceOrder(ctx context.Context, sessionID string, form url.Values) (*models.Order, error)
}

type service struct {
	tx         txRunner
	cartRepo   cart.CartRepository
	ordersRepo orders.Repository
	catalog    catalog.Service
	store      selections.Store
	reconciler *pricing.Reconciler
	logg       *logger.Logger
}

// NewService wires the checkout orchestrator.
func NewService(
	tx txRunner,
	cartRepo cart.CartRepository,
	ordersRepo orders.Repository,
	catalogSvc catalog.Service,
	store selections.Store,
	reconciler *pricing.Reconciler,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if store == nil {
		return nil, fmt.Errorf("selection store required")
	}
	if reconciler == nil {
		return nil, fmt.Errorf("reconciler required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:         tx,
		cartRepo:   cartRepo,
		ordersRepo: ordersRepo,
		catalog:    catalogSvc,
		store:      store,
		reconciler: reconciler,
		logg:       logg,
	}, nil
}

// EnterCheckout resets the session's selection state and seeds one
// participant slot per purchased unit, each offered the add-on options
// resolved for the cart's categories. Options matching an item's attached
// add-ons start selected. The cart is reconciled against the fresh
// snapshot before returning.
func (s *service) EnterCheckout(ctx context.Context, sessionID string) (*models.CartRecord, selections.Snapshot, error) {
	record, err := s.loadActiveCart(ctx, sessionID)
	if err != nil {
		return nil, selections.Snapshot{}, err
	}

	if err := s.store.Clear(ctx, sessionID); err != nil {
		return nil, selections.Snapshot{}, err
	}

	offered, err := s.catalog.Resolve(ctx, cart.CategoryIDs(record))
	if err != nil {
		return nil, selections.Snapshot{}, err
	}

	snap := seedSnapshot(record.Items, offered)
	if err := s.store.Seed(ctx, sessionID, snap); err != nil {
		return nil, selections.Snapshot{}, err
	}
	snap = selections.Normalize(snap)

	record, err = s.reconcileAndPersist(ctx, record, snap, "enter-checkout")
	if err != nil {
		return nil, selections.Snapshot{}, err
	}
	return record, snap, nil
}

// ApplySelections replaces the stored snapshot and reconciles the cart
// when the replacement applied. The returned snapshot is authoritative
// either way.
func (s *service) ApplySelections(ctx context.Context, sessionID string, seq uint64, snap selections.Snapshot) (selections.Snapshot, bool, error) {
	stored, applied, err := s.store.Replace(ctx, sessionID, seq, snap)
	if err != nil {
		return selections.Snapshot{}, false, err
	}
	if !applied {
		return stored, false, nil
	}

	record, err := s.loadActiveCart(ctx, sessionID)
	if err != nil {
		// The selection stands even when no cart exists yet to price.
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return stored, true, nil
		}
		return selections.Snapshot{}, false, err
	}
	if _, err := s.reconcileAndPersist(ctx, record, stored, "client-sync"); err != nil {
		return selections.Snapshot{}, false, err
	}
	return stored, true, nil
}

// Recalculate re-runs reconciliation against the stored snapshot. Totals
// pages call this so a refresh never shows stale fees.
func (s *service) Recalculate(ctx context.Context, sessionID, trigger string) (*models.CartRecord, error) {
	record, err := s.loadActiveCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.reconcileAndPersist(ctx, record, snap, trigger)
}

// PlaceOrder finalizes the checkout: participant forms are parsed and
// validated, the cart is reconciled one last time, and the order is written
// with per-participant metadata on each line item. The cart completes and
// the selection snapshot clears inside the same transaction scope.
func (s *service) PlaceOrder(ctx context.Context, sessionID string, form url.Values) (*models.Order, error) {
	record, err := s.loadActiveCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	parts := participants.ParseForms(form)
	if err := participants.Validate(parts); err != nil {
		return nil, err
	}

	snap, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.reconciler.Reconcile("place-order", record, snap)

	quantities := make([]int, len(record.Items))
	for i, item := range record.Items {
		quantities[i] = item.Quantity
	}
	assigned := participants.Assign(quantities, parts)

	order := buildOrder(record, assigned)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.ordersRepo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := s.cartRepo.WithTx(tx).UpdateStatus(ctx, record, enums.CartStatusCompleted); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Clear(ctx, sessionID); err != nil {
		// The order is placed; a lingering snapshot only wastes a key.
		s.logg.Warn(ctx, "clearing selection snapshot after order placement")
	}
	return order, nil
}

func (s *service) loadActiveCart(ctx context.Context, sessionID string) (*models.CartRecord, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	record, err := s.cartRepo.FindActiveBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active cart for session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active cart")
	}
	return record, nil
}

func (s *service) reconcileAndPersist(ctx context.Context, record *models.CartRecord, snap selections.Snapshot, trigger string) (*models.CartRecord, error) {
	s.reconciler.Reconcile(trigger, record, snap)
	updated, err := s.cartRepo.Update(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist reconciled cart")
	}
	return updated, nil
}

// seedSnapshot builds the initial participant slots: one per unit, a zero
// quantity still claiming one. Each slot carries the full offer list, then
// the owning item's attached add-ons are toggled on slot by slot.
func seedSnapshot(items []models.CartItem, offered []catalog.ResolvedOption) selections.Snapshot {
	snap := selections.Snapshot{Participants: []selections.Participant{}}
	index := 1
	var preselect []selections.Toggle
	for _, item := range items {
		slots := item.Quantity
		if slots < 1 {
			slots = 1
		}
		for u := 0; u < slots; u++ {
			opts := make([]selections.Option, 0, len(offered))
			for _, offer := range offered {
				opts = append(opts, selections.Option{
					FieldName: offer.FieldName,
					Label:     offer.Label,
					Price:     offer.Price,
				})
			}
			snap.Participants = append(snap.Participants, selections.Participant{Index: index, Options: opts})
			for _, addon := range item.Addons {
				preselect = append(preselect, selections.Toggle{Participant: index, FieldName: addon.FieldName, Selected: true})
			}
			index++
		}
	}
	for _, toggle := range preselect {
		snap = selections.Apply(snap, toggle)
	}
	return snap
}

func buildOrder(record *models.CartRecord, assigned [][]participants.Details) *models.Order {
	order := &models.Order{
		SessionID: record.SessionID,
		Status:    enums.OrderStatusPlaced,
		FeeLines:  record.FeeLines,
		Subtotal:  record.Subtotal,
		FeeTotal:  record.FeeLines.Total(),
		Total:     record.Total,
	}
	for i, item := range record.Items {
		productID := item.ProductID
		lineItem := models.OrderLineItem{
			ProductID: &productID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineSubtotal,
		}
		if i < len(assigned) {
			lineItem.Meta = participants.BuildMeta(assigned[i])
		}
		order.LineItems = append(order.LineItems, lineItem)
	}
	return order
}
