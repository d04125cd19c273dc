package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pdadev/trackday-backend/pkg/enums"
)

// AddonField is one input inside an add-on group. Only checkbox fields carry
// priced options the checkout offers per participant.
type AddonField struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID   uuid.UUID            `gorm:"column:group_id;type:uuid;not null"`
	Name      string               `gorm:"column:name;not null"`
	Type      enums.AddonFieldType `gorm:"column:type;type:addon_field_type;not null"`
	Position  int                  `gorm:"column:position;not null;default:0"`
	Options   []AddonFieldOption   `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
