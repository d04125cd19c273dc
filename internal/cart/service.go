package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pdadev/trackday-backend/internal/products"
	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/enums"
	pkgerrors "github.com/pdadev/trackday-backend/pkg/errors"
	"github.com/pdadev/trackday-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes cart persistence operations.
type Service interface {
	UpsertCart(ctx context.Context, sessionID string, input UpsertCartInput) (*models.CartRecord, error)
	GetActiveCart(ctx context.Context, sessionID string) (*models.CartRecord, error)
}

type service struct {
	repo        CartRepository
	tx          txRunner
	productRepo productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, productRepo productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, productRepo: productRepo}, nil
}

// UpsertCartInput captures the payload required to create or refresh a cart.
type UpsertCartInput struct {
	Items []CartItemInput
}

// CartItemInput mirrors the data stored for each cart item. Addons are the
// priced extras attached when the item was added, baked into the quoted
// unit price.
type CartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Addons    types.AttachedAddons
}

// UpsertCart validates the provided items and persists the cart atomically,
// replacing any previous active cart for the session. Quoted unit prices
// fold each item's attached add-on value in per unit; reconciliation later
// derives the bare price back out.
func (s *service) UpsertCart(ctx context.Context, sessionID string, input UpsertCartInput) (*models.CartRecord, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one item")
	}

	items := make([]models.CartItem, 0, len(input.Items))
	subtotal := decimal.Zero

	for _, payload := range input.Items {
		if payload.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be non-negative")
		}

		product, err := s.productRepo.GetByID(ctx, payload.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
		}

		divisor := payload.Quantity
		if divisor < 1 {
			divisor = 1
		}
		share := payload.Addons.Total().DivRound(decimal.NewFromInt(int64(divisor)), 2)
		listUnit := product.Price.Add(share)
		lineSubtotal := listUnit.Mul(decimal.NewFromInt(int64(payload.Quantity)))

		items = append(items, models.CartItem{
			ProductID:     product.ID,
			Title:         product.Title,
			Quantity:      payload.Quantity,
			ListUnitPrice: listUnit,
			UnitPrice:     listUnit,
			LineSubtotal:  lineSubtotal,
			CategoryIDs:   products.CategoryIDs(product),
			Addons:        payload.Addons,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}

	var result *models.CartRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindActiveBySession(ctx, sessionID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active cart")
		}

		if existing == nil {
			record := &models.CartRecord{
				SessionID: sessionID,
				Status:    enums.CartStatusActive,
				Subtotal:  subtotal,
				Total:     subtotal,
				Items:     items,
			}
			created, err := repo.Create(ctx, record)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
			}
			result = created
			return nil
		}

		if err := repo.ReplaceItems(ctx, existing.ID, itemsForCart(existing.ID, items)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace cart items")
		}
		existing.Subtotal = subtotal
		existing.Total = subtotal.Add(existing.FeeLines.Total())
		existing.Items = itemsForCart(existing.ID, items)
		if _, err := repo.Update(ctx, existing); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart")
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetActiveCart returns the active cart for the session.
func (s *service) GetActiveCart(ctx context.Context, sessionID string) (*models.CartRecord, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	record, err := s.repo.FindActiveBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active cart for session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active cart")
	}
	return record, nil
}

func itemsForCart(cartID uuid.UUID, items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].CartID = cartID
	}
	return out
}

// CategoryIDs gathers the distinct category ids across a cart's items, in
// first-seen order, for add-on catalog resolution.
func CategoryIDs(record *models.CartRecord) []int64 {
	seen := map[int64]struct{}{}
	var out []int64
	for _, item := range record.Items {
		for _, id := range item.CategoryIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
