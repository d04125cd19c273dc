package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/enums"
	"github.com/pdadev/trackday-backend/pkg/types"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
CREATE TABLE IF NOT EXISTS cart_records (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  fee_lines TEXT,
  subtotal NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  title TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  list_unit_price NUMERIC NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_subtotal NUMERIC NOT NULL DEFAULT 0,
  category_ids TEXT,
  addons TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestRepositoryCreateAndFindActive(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := &models.CartRecord{
		ID:        uuid.New(),
		SessionID: "sess-1",
		Subtotal:  dec("150.00"),
		Total:     dec("150.00"),
		Items: []models.CartItem{{
			ID:            uuid.New(),
			ProductID:     uuid.New(),
			Title:         "Open Track Day",
			Quantity:      1,
			ListUnitPrice: dec("150.00"),
			UnitPrice:     dec("150.00"),
			LineSubtotal:  dec("150.00"),
			Addons: types.AttachedAddons{
				{Label: "Photo Package", FieldName: "photo-package", Price: dec("50.00")},
			},
		}},
	}
	_, err := repo.Create(ctx, record)
	require.NoError(t, err)
	require.Equal(t, enums.CartStatusActive, record.Status)

	got, err := repo.FindActiveBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Photo Package", got.Items[0].Addons[0].Label)
}

func TestRepositoryReplaceItems(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := &models.CartRecord{
		ID:        uuid.New(),
		SessionID: "sess-1",
		Items: []models.CartItem{{
			ID: uuid.New(), ProductID: uuid.New(), Title: "Old", Quantity: 1,
			ListUnitPrice: dec("10.00"), UnitPrice: dec("10.00"),
		}},
	}
	_, err := repo.Create(ctx, record)
	require.NoError(t, err)

	err = repo.ReplaceItems(ctx, record.ID, []models.CartItem{{
		ID: uuid.New(), CartID: record.ID, ProductID: uuid.New(), Title: "New", Quantity: 2,
		ListUnitPrice: dec("20.00"), UnitPrice: dec("20.00"),
	}})
	require.NoError(t, err)

	got, err := repo.FindActiveBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, "New", got.Items[0].Title)
}

func TestRepositoryUpdateStatusHidesCart(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := &models.CartRecord{ID: uuid.New(), SessionID: "sess-1"}
	_, err := repo.Create(ctx, record)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, record, enums.CartStatusCompleted))

	_, err = repo.FindActiveBySession(ctx, "sess-1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
