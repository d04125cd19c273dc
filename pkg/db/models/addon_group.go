package models

import (
	"time"

	"github.com/google/uuid"
)

// AddonGroup is a globally-defined set of add-on fields, optionally
// restricted to product categories. A group with no categories applies to
// every cart.
type AddonGroup struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string            `gorm:"column:name;not null"`
	Position   int               `gorm:"column:position;not null;default:0"`
	Categories []ProductCategory `gorm:"many2many:addon_group_categories"`
	Fields     []AddonField      `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
