package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pdadev/trackday-backend/internal/repo"
	"github.com/pdadev/trackday-backend/pkg/db/models"
)

// Repository exposes read operations for bookable listings.
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

// GetByID loads a product with its categories.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.base.DB(ctx).
		Preload("Categories").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActive returns every active listing ordered by title.
func (r *Repository) ListActive(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := r.base.DB(ctx).
		Preload("Categories").
		Where("is_active = ?", true).
		Order("title ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryIDs flattens a product's category ids for snapshotting onto cart
// items.
func CategoryIDs(p *models.Product) []int64 {
	out := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		out = append(out, c.ID)
	}
	return out
}
