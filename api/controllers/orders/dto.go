package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordersvc "github.com/pdadev/trackday-backend/internal/orders"
	"github.com/pdadev/trackday-backend/pkg/db/models"
)

type metaView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	HTML  string `json:"html"`
}

type lineItemView struct {
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Meta      []metaView      `json:"meta,omitempty"`
}

type feeLineView struct {
	Name   string          `json:"name"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type orderView struct {
	ID        uuid.UUID       `json:"id"`
	Status    string          `json:"status"`
	LineItems []lineItemView  `json:"line_items"`
	FeeLines  []feeLineView   `json:"fee_lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	FeeTotal  decimal.Decimal `json:"fee_total"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

type listView struct {
	Orders     []orderView `json:"orders"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

func orderToView(order *models.Order) orderView {
	view := orderView{
		ID:        order.ID,
		Status:    string(order.Status),
		LineItems: make([]lineItemView, 0, len(order.LineItems)),
		FeeLines:  make([]feeLineView, 0, len(order.FeeLines)),
		Subtotal:  order.Subtotal,
		FeeTotal:  order.FeeTotal,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
	for _, line := range order.LineItems {
		lv := lineItemView{
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		}
		for _, meta := range line.Meta {
			lv.Meta = append(lv.Meta, metaView{
				Key:   meta.Key,
				Value: meta.Value,
				HTML:  ordersvc.FormatMetadataHTML(meta.Value),
			})
		}
		view.LineItems = append(view.LineItems, lv)
	}
	for _, fee := range order.FeeLines {
		view.FeeLines = append(view.FeeLines, feeLineView{Name: fee.Name, Label: fee.Label, Amount: fee.Amount})
	}
	return view
}
