package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddonFieldOption is a single priced choice within an add-on field.
type AddonFieldOption struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FieldID   uuid.UUID       `gorm:"column:field_id;type:uuid;not null"`
	Label     string          `gorm:"column:label;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	Position  int             `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
