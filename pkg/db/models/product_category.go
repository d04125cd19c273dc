package models

import "time"

// ProductCategory is the store taxonomy add-on groups can be restricted to.
type ProductCategory struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
