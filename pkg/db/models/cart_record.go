package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/pkg/enums"
	"github.com/pdadev/trackday-backend/pkg/types"
)

// CartRecord is the active cart for one checkout session.
type CartRecord struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID string           `gorm:"column:session_id;not null;index"`
	Status    enums.CartStatus `gorm:"column:status;type:cart_status;not null;default:'active'"`
	FeeLines  types.FeeLines   `gorm:"column:fee_lines;type:jsonb;serializer:json"`
	Subtotal  decimal.Decimal  `gorm:"column:subtotal;type:numeric(10,2);not null;default:0"`
	Total     decimal.Decimal  `gorm:"column:total;type:numeric(10,2);not null;default:0"`
	Items     []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
