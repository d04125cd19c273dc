package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a bookable listing (track day, course, session).
type Product struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU        string            `gorm:"column:sku;not null"`
	Title      string            `gorm:"column:title;not null"`
	Price      decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null"`
	IsActive   bool              `gorm:"column:is_active;not null;default:true"`
	Categories []ProductCategory `gorm:"many2many:product_category_memberships"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
