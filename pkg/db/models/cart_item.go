package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/pkg/types"
)

// CartItem snapshots one line of the cart. ListUnitPrice is the quoted
// per-unit price with attached add-ons baked in; UnitPrice is the derived
// bare base price after reconciliation strips the add-on share.
type CartItem struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID        uuid.UUID            `gorm:"column:cart_id;type:uuid;not null"`
	ProductID     uuid.UUID            `gorm:"column:product_id;type:uuid;not null"`
	Title         string               `gorm:"column:title;not null"`
	Quantity      int                  `gorm:"column:quantity;not null"`
	ListUnitPrice decimal.Decimal      `gorm:"column:list_unit_price;type:numeric(10,2);not null"`
	UnitPrice     decimal.Decimal      `gorm:"column:unit_price;type:numeric(10,2);not null"`
	LineSubtotal  decimal.Decimal      `gorm:"column:line_subtotal;type:numeric(10,2);not null;default:0"`
	CategoryIDs   pq.Int64Array        `gorm:"column:category_ids;type:bigint[]"`
	Addons        types.AttachedAddons `gorm:"column:addons;type:jsonb;serializer:json"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
