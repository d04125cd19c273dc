package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItemMeta is a named multi-line metadata entry attached to an order
// line item, e.g. key "Participant 1" with the participant's details. Never
// mutated after creation.
type OrderItemMeta struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderLineItemID uuid.UUID `gorm:"column:order_line_item_id;type:uuid;not null"`
	Key             string    `gorm:"column:meta_key;not null"`
	Value           string    `gorm:"column:meta_value;not null"`
	Position        int       `gorm:"column:position;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the singular table name.
func (OrderItemMeta) TableName() string {
	return "order_item_meta"
}
