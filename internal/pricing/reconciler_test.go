package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/internal/selections"
	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/types"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestReconciler(t *testing.T) *Reconciler {
	t.Helper()
	r, err := NewReconciler("$", nil)
	if err != nil {
		t.Fatalf("new reconciler: %v", err)
	}
	return r
}

func TestNormalizeItemsStripsAddonShare(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{{
		Title:         "Open Track Day",
		Quantity:      2,
		ListUnitPrice: dec("175.00"),
		Addons: types.AttachedAddons{
			{Label: "Photo Package", FieldName: "photo-package", Price: dec("50.00")},
		},
	}}

	newTestReconciler(t).NormalizeItems(items)

	if !items[0].UnitPrice.Equal(dec("150.00")) {
		t.Fatalf("expected unit price 150.00, got %s", items[0].UnitPrice)
	}
	if !items[0].LineSubtotal.Equal(dec("300.00")) {
		t.Fatalf("expected line subtotal 300.00, got %s", items[0].LineSubtotal)
	}
}

func TestNormalizeItemsIdempotent(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{{
		Quantity:      1,
		ListUnitPrice: dec("200.00"),
		Addons: types.AttachedAddons{
			{Label: "Garage Bay", FieldName: "garage-bay", Price: dec("30.00")},
		},
	}}

	r := newTestReconciler(t)
	r.NormalizeItems(items)
	first := items[0].UnitPrice
	r.NormalizeItems(items)
	r.NormalizeItems(items)

	if !items[0].UnitPrice.Equal(first) || !first.Equal(dec("170.00")) {
		t.Fatalf("expected repeated passes to keep 170.00, got %s", items[0].UnitPrice)
	}
}

func TestNormalizeItemsZeroQuantityDividesByOne(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{{
		Quantity:      0,
		ListUnitPrice: dec("100.00"),
		Addons: types.AttachedAddons{
			{Label: "Photo Package", FieldName: "photo-package", Price: dec("50.00")},
		},
	}}

	newTestReconciler(t).NormalizeItems(items)

	if !items[0].UnitPrice.Equal(dec("50.00")) {
		t.Fatalf("expected unit price 50.00, got %s", items[0].UnitPrice)
	}
	if !items[0].LineSubtotal.IsZero() {
		t.Fatalf("expected zero line subtotal for zero quantity, got %s", items[0].LineSubtotal)
	}
}

func TestNormalizeItemsClampsNegativeUnitPrice(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{{
		Quantity:      1,
		ListUnitPrice: dec("20.00"),
		Addons: types.AttachedAddons{
			{Label: "Photo Package", FieldName: "photo-package", Price: dec("50.00")},
		},
	}}

	newTestReconciler(t).NormalizeItems(items)

	if !items[0].UnitPrice.IsZero() {
		t.Fatalf("expected clamped unit price, got %s", items[0].UnitPrice)
	}
}

func TestApplyFeeAlwaysWritesLine(t *testing.T) {
	t.Parallel()

	r := newTestReconciler(t)
	cart := &models.CartRecord{}

	snap := selections.Snapshot{Participants: []selections.Participant{
		{Index: 1, Options: []selections.Option{
			{FieldName: "photo-package", Label: "Photo Package", Price: dec("50.00"), Selected: true},
		}},
	}}
	r.ApplyFee(cart, snap)

	line, ok := cart.FeeLines.Find(AddonFeeName)
	if !ok {
		t.Fatal("expected fee line present")
	}
	if line.Label != "Additional: $50.00" {
		t.Fatalf("unexpected label %q", line.Label)
	}
	if !line.Amount.Equal(dec("50.00")) {
		t.Fatalf("unexpected amount %s", line.Amount)
	}

	// Deselect everything: the line stays, zeroed.
	r.ApplyFee(cart, selections.Snapshot{})
	line, ok = cart.FeeLines.Find(AddonFeeName)
	if !ok {
		t.Fatal("expected zeroed fee line present")
	}
	if !line.Amount.IsZero() || line.Label != "Additional: $0.00" {
		t.Fatalf("expected zeroed fee line, got %+v", line)
	}
	if len(cart.FeeLines) != 1 {
		t.Fatalf("expected a single fee line, got %d", len(cart.FeeLines))
	}
}

func TestReconcileRecomputesTotals(t *testing.T) {
	t.Parallel()

	cart := &models.CartRecord{Items: []models.CartItem{
		{
			Quantity:      1,
			ListUnitPrice: dec("200.00"),
			Addons: types.AttachedAddons{
				{Label: "Photo Package", FieldName: "photo-package", Price: dec("50.00")},
			},
		},
		{
			Quantity:      2,
			ListUnitPrice: dec("80.00"),
		},
	}}
	snap := selections.Snapshot{Participants: []selections.Participant{
		{Index: 1, Options: []selections.Option{
			{FieldName: "photo-package", Label: "Photo Package", Price: dec("50.00"), Selected: true},
		}},
	}}

	newTestReconciler(t).Reconcile("test", cart, snap)

	// 150 + 160 item value, plus the 50 fee, equals the original quote.
	if !cart.Subtotal.Equal(dec("310.00")) {
		t.Fatalf("expected subtotal 310.00, got %s", cart.Subtotal)
	}
	if !cart.Total.Equal(dec("360.00")) {
		t.Fatalf("expected total 360.00, got %s", cart.Total)
	}

	// A second pass with the same snapshot changes nothing.
	newTestReconciler(t).Reconcile("test", cart, snap)
	if !cart.Total.Equal(dec("360.00")) {
		t.Fatalf("expected stable total, got %s", cart.Total)
	}
}
