package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/internal/orders"
	"github.com/pdadev/trackday-backend/internal/selections"
	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/types"
)

// cartItemView deliberately omits attached add-ons: the aggregate fee line
// is the only place add-on pricing surfaces during checkout.
type cartItemView struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Title        string          `json:"title"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineSubtotal decimal.Decimal `json:"line_subtotal"`
}

type feeLineView struct {
	Name   string          `json:"name"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type cartView struct {
	ID       uuid.UUID       `json:"id"`
	Status   string          `json:"status"`
	Items    []cartItemView  `json:"items"`
	FeeLines []feeLineView   `json:"fee_lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

type selectionOptionView struct {
	FieldName string          `json:"field_name"`
	Label     string          `json:"label"`
	Price     decimal.Decimal `json:"price"`
	Selected  bool            `json:"selected"`
}

type selectionSlotView struct {
	Participant int                   `json:"participant"`
	Addons      []selectionOptionView `json:"addons"`
}

type checkoutView struct {
	Cart       cartView            `json:"cart"`
	Selections []selectionSlotView `json:"selections"`
}

type orderMetaView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	HTML  string `json:"html"`
}

type orderLineView struct {
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Meta      []orderMetaView `json:"meta,omitempty"`
}

type orderView struct {
	ID        uuid.UUID       `json:"id"`
	Status    string          `json:"status"`
	LineItems []orderLineView `json:"line_items"`
	FeeLines  []feeLineView   `json:"fee_lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	FeeTotal  decimal.Decimal `json:"fee_total"`
	Total     decimal.Decimal `json:"total"`
}

func cartToView(record *models.CartRecord) cartView {
	view := cartView{
		ID:       record.ID,
		Status:   string(record.Status),
		Items:    make([]cartItemView, 0, len(record.Items)),
		FeeLines: feeLinesToView(record.FeeLines),
		Subtotal: record.Subtotal,
		Total:    record.Total,
	}
	for _, item := range record.Items {
		view.Items = append(view.Items, cartItemView{
			ProductID:    item.ProductID,
			Title:        item.Title,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineSubtotal: item.LineSubtotal,
		})
	}
	return view
}

func feeLinesToView(lines types.FeeLines) []feeLineView {
	out := make([]feeLineView, 0, len(lines))
	for _, line := range lines {
		out = append(out, feeLineView{Name: line.Name, Label: line.Label, Amount: line.Amount})
	}
	return out
}

func snapshotToView(snap selections.Snapshot) []selectionSlotView {
	out := make([]selectionSlotView, 0, len(snap.Participants))
	for _, p := range snap.Participants {
		slot := selectionSlotView{Participant: p.Index, Addons: make([]selectionOptionView, 0, len(p.Options))}
		for _, opt := range p.Options {
			slot.Addons = append(slot.Addons, selectionOptionView{
				FieldName: opt.FieldName,
				Label:     opt.Label,
				Price:     opt.Price,
				Selected:  opt.Selected,
			})
		}
		out = append(out, slot)
	}
	return out
}

func orderToView(order *models.Order) orderView {
	view := orderView{
		ID:        order.ID,
		Status:    string(order.Status),
		LineItems: make([]orderLineView, 0, len(order.LineItems)),
		FeeLines:  feeLinesToView(order.FeeLines),
		Subtotal:  order.Subtotal,
		FeeTotal:  order.FeeTotal,
		Total:     order.Total,
	}
	for _, line := range order.LineItems {
		lv := orderLineView{
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		}
		for _, meta := range line.Meta {
			lv.Meta = append(lv.Meta, orderMetaView{
				Key:   meta.Key,
				Value: meta.Value,
				HTML:  orders.FormatMetadataHTML(meta.Value),
			})
		}
		view.LineItems = append(view.LineItems, lv)
	}
	return view
}
