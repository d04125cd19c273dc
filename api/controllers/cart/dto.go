package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartsvc "github.com/pdadev/trackday-backend/internal/cart"
	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/types"
)

type upsertAddon struct {
	Label     string          `json:"label" validate:"required"`
	FieldName string          `json:"field_name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
}

type upsertItem struct {
	ProductID uuid.UUID     `json:"product_id" validate:"required"`
	Quantity  int           `json:"quantity" validate:"gte=0"`
	Addons    []upsertAddon `json:"addons" validate:"dive"`
}

type upsertRequest struct {
	Items []upsertItem `json:"items" validate:"required,min=1,dive"`
}

func (r upsertRequest) toInput() cartsvc.UpsertCartInput {
	input := cartsvc.UpsertCartInput{Items: make([]cartsvc.CartItemInput, 0, len(r.Items))}
	for _, item := range r.Items {
		addons := make(types.AttachedAddons, 0, len(item.Addons))
		for _, addon := range item.Addons {
			addons = append(addons, types.AttachedAddon{
				Label:     addon.Label,
				FieldName: addon.FieldName,
				Price:     addon.Price,
			})
		}
		input.Items = append(input.Items, cartsvc.CartItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Addons:    addons,
		})
	}
	return input
}

type itemView struct {
	ProductID     uuid.UUID            `json:"product_id"`
	Title         string               `json:"title"`
	Quantity      int                  `json:"quantity"`
	ListUnitPrice decimal.Decimal      `json:"list_unit_price"`
	UnitPrice     decimal.Decimal      `json:"unit_price"`
	LineSubtotal  decimal.Decimal      `json:"line_subtotal"`
	Addons        types.AttachedAddons `json:"addons,omitempty"`
}

type feeLineView struct {
	Name   string          `json:"name"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type cartView struct {
	ID       uuid.UUID       `json:"id"`
	Status   string          `json:"status"`
	Items    []itemView      `json:"items"`
	FeeLines []feeLineView   `json:"fee_lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

func cartToView(record *models.CartRecord) cartView {
	view := cartView{
		ID:       record.ID,
		Status:   string(record.Status),
		Items:    make([]itemView, 0, len(record.Items)),
		FeeLines: make([]feeLineView, 0, len(record.FeeLines)),
		Subtotal: record.Subtotal,
		Total:    record.Total,
	}
	for _, item := range record.Items {
		view.Items = append(view.Items, itemView{
			ProductID:     item.ProductID,
			Title:         item.Title,
			Quantity:      item.Quantity,
			ListUnitPrice: item.ListUnitPrice,
			UnitPrice:     item.UnitPrice,
			LineSubtotal:  item.LineSubtotal,
			Addons:        item.Addons,
		})
	}
	for _, line := range record.FeeLines {
		view.FeeLines = append(view.FeeLines, feeLineView{Name: line.Name, Label: line.Label, Amount: line.Amount})
	}
	return view
}
