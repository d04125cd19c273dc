package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pdadev/trackday-backend/internal/repo"
	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/enums"
)

// CartRepository encapsulates cart persistence.
type CartRepository interface {
	Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	Update(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	FindActiveBySession(ctx context.Context, sessionID string) (*models.CartRecord, error)
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error
	UpdateStatus(ctx context.Context, record *models.CartRecord, status enums.CartStatus) error
	WithTx(tx *gorm.DB) CartRepository
}

// Repository exposes persistence operations for checkout carts.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{base: repo.NewBase(tx)}
}

// Create inserts a new CartRecord.
func (r *Repository) Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	if record.Status == "" {
		record.Status = enums.CartStatusActive
	}
	if err := r.base.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Update saves the provided cart record together with its items.
func (r *Repository) Update(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	if err := r.base.DB(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindActiveBySession loads the latest active cart for a checkout session.
func (r *Repository) FindActiveBySession(ctx context.Context, sessionID string) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.base.DB(ctx).
		Preload("Items").
		Where("session_id = ? AND status = ?", sessionID, enums.CartStatusActive).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ReplaceItems swaps a cart's items wholesale.
func (r *Repository) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error {
	if err := r.base.DB(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.base.DB(ctx).Create(&items).Error
}

// UpdateStatus transitions a cart record.
func (r *Repository) UpdateStatus(ctx context.Context, record *models.CartRecord, status enums.CartStatus) error {
	return r.base.DB(ctx).
		Model(record).
		Update("status", status).Error
}
