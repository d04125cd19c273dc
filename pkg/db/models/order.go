package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/pkg/enums"
	"github.com/pdadev/trackday-backend/pkg/types"
)

// Order is the durable record created at checkout completion.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID string            `gorm:"column:session_id;not null;index"`
	Status    enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'placed'"`
	FeeLines  types.FeeLines    `gorm:"column:fee_lines;type:jsonb;serializer:json"`
	Subtotal  decimal.Decimal   `gorm:"column:subtotal;type:numeric(10,2);not null;default:0"`
	FeeTotal  decimal.Decimal   `gorm:"column:fee_total;type:numeric(10,2);not null;default:0"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null;default:0"`
	LineItems []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
