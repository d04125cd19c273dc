package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/pdadev/trackday-backend/internal/repo"
	"github.com/pdadev/trackday-backend/pkg/db/models"
)

// Repository loads add-on group definitions.
type Repository struct {
	base repo.Base
}

// NewRepository binds the repository to the provided GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{base: repo.NewBase(tx)}
}

// ListGroups returns every add-on group with its categories, fields, and
// options preloaded, ordered by position.
func (r *Repository) ListGroups(ctx context.Context) ([]models.AddonGroup, error) {
	var groups []models.AddonGroup
	err := r.base.DB(ctx).
		Preload("Categories").
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("addon_fields.position ASC")
		}).
		Preload("Fields.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("addon_field_options.position ASC")
		}).
		Order("position ASC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
