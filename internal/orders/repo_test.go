package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/enums"
	"github.com/pdadev/trackday-backend/pkg/pagination"
	"github.com/pdadev/trackday-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'placed',
  fee_lines TEXT,
  subtotal NUMERIC NOT NULL DEFAULT 0,
  fee_total NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  title TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_item_meta (
  id TEXT PRIMARY KEY,
  order_line_item_id TEXT NOT NULL,
  meta_key TEXT NOT NULL,
  meta_value TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestRepositoryCreateAndGetOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	order := &models.Order{
		ID:        uuid.New(),
		SessionID: "sess-1",
		Status:    enums.OrderStatusPlaced,
		Subtotal:  decimal.NewFromInt(300),
		FeeTotal:  decimal.NewFromInt(50),
		Total:     decimal.NewFromInt(350),
		FeeLines: types.FeeLines{
			{Name: "additional_addons", Label: "Additional: $50.00", Amount: decimal.NewFromInt(50)},
		},
		LineItems: []models.OrderLineItem{{
			ID:        uuid.New(),
			ProductID: &productID,
			Title:     "Open Track Day",
			Quantity:  2,
			UnitPrice: decimal.NewFromInt(150),
			LineTotal: decimal.NewFromInt(300),
			Meta: []models.OrderItemMeta{
				{ID: uuid.New(), Key: "Participant 1", Value: "Name: Jo\nEmail: jo@example.com", Position: 0},
				{ID: uuid.New(), Key: "Participant 2", Value: "Name: Sam\nEmail: sam@example.com", Position: 1},
			},
		}},
	}

	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.LineItems, 1)
	require.Len(t, got.LineItems[0].Meta, 2)
	require.Equal(t, "Participant 1", got.LineItems[0].Meta[0].Key)
	require.Equal(t, "Additional: $50.00", got.FeeLines[0].Label)
}

func TestRepositoryListBySession(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, sess := range []string{"sess-1", "sess-1", "sess-2"} {
		_, err := repo.Create(ctx, &models.Order{ID: uuid.New(), SessionID: sess, Status: enums.OrderStatusPlaced})
		require.NoError(t, err)
	}

	got, next, err := repo.ListBySession(ctx, "sess-1", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Empty(t, next)
}

func TestRepositoryListBySessionPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		order := &models.Order{ID: uuid.New(), SessionID: "sess-1", Status: enums.OrderStatusPlaced}
		order.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := repo.Create(ctx, order)
		require.NoError(t, err)
	}

	first, next, err := repo.ListBySession(ctx, "sess-1", pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, next)

	rest, last, err := repo.ListBySession(ctx, "sess-1", pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Empty(t, last)
	require.True(t, rest[0].CreatedAt.Before(first[1].CreatedAt))
}
