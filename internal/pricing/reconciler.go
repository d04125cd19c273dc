package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/internal/selections"
	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/metrics"
	"github.com/pdadev/trackday-backend/pkg/types"
)

// AddonFeeName identifies the single reconciled fee line on a cart.
const AddonFeeName = "additional_addons"

// Reconciler normalizes item prices and maintains the add-on fee line so a
// cart's total reflects exactly the participants' current selections.
type Reconciler struct {
	symbol  string
	metrics *metrics.CheckoutMetrics
}

// NewReconciler builds a reconciler. currencySymbol prefixes the fee label;
// metrics may be nil.
func NewReconciler(currencySymbol string, m *metrics.CheckoutMetrics) (*Reconciler, error) {
	if currencySymbol == "" {
		return nil, fmt.Errorf("currency symbol required")
	}
	return &Reconciler{symbol: currencySymbol, metrics: m}, nil
}

// NormalizeItems derives every item's bare unit price from its immutable
// quoted price. The quoted price carries the item's attached add-on value
// baked in; stripping the per-unit share leaves the base price, so the fee
// line can carry the add-on value instead without double charging. Deriving
// from the quoted price each pass keeps the operation idempotent.
func (r *Reconciler) NormalizeItems(items []models.CartItem) {
	for i := range items {
		item := &items[i]
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		share := item.Addons.Total().DivRound(decimal.NewFromInt(int64(qty)), 2)
		unit := item.ListUnitPrice.Sub(share)
		if unit.IsNegative() {
			unit = decimal.Zero
		}
		item.UnitPrice = unit
		item.LineSubtotal = unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
}

// ApplyFee sets the cart's single add-on fee line to the snapshot's
// selected total. The line is always written, a zero amount included, so a
// deselection visibly zeroes the fee rather than leaving a stale one.
func (r *Reconciler) ApplyFee(cart *models.CartRecord, snap selections.Snapshot) decimal.Decimal {
	amount := snap.SelectedTotal()
	cart.FeeLines = cart.FeeLines.Set(types.FeeLine{
		Name:   AddonFeeName,
		Label:  r.FeeLabel(amount),
		Amount: amount,
	})
	return amount
}

// FeeLabel renders the customer-facing fee label for an amount.
func (r *Reconciler) FeeLabel(amount decimal.Decimal) string {
	return fmt.Sprintf("Additional: %s%s", r.symbol, amount.StringFixed(2))
}

// Reconcile runs both passes and recomputes the cart totals.
func (r *Reconciler) Reconcile(trigger string, cart *models.CartRecord, snap selections.Snapshot) {
	start := time.Now()

	r.NormalizeItems(cart.Items)
	fee := r.ApplyFee(cart, snap)

	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.LineSubtotal)
	}
	cart.Subtotal = subtotal
	cart.Total = subtotal.Add(cart.FeeLines.Total())

	feeFloat, _ := fee.Float64()
	r.metrics.ObserveReconcile(trigger, time.Since(start), feeFloat)
}
