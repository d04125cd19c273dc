package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/enums"
	"github.com/pdadev/trackday-backend/pkg/logger"
)

type stubGroupLister struct {
	groups []models.AddonGroup
	err    error
}

func (s *stubGroupLister) ListGroups(context.Context) ([]models.AddonGroup, error) {
	return s.groups, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func checkboxGroup(name string, categoryIDs []int64, options ...models.AddonFieldOption) models.AddonGroup {
	cats := make([]models.ProductCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		cats = append(cats, models.ProductCategory{ID: id})
	}
	return models.AddonGroup{
		Name:       name,
		Categories: cats,
		Fields: []models.AddonField{
			{Name: name, Type: enums.AddonFieldTypeCheckbox, Options: options},
		},
	}
}

func TestResolveCategoryIntersection(t *testing.T) {
	t.Parallel()

	repo := &stubGroupLister{groups: []models.AddonGroup{
		checkboxGroup("global", nil, models.AddonFieldOption{Label: "Photo Package", Price: decimal.NewFromInt(50)}),
		checkboxGroup("trackdays", []int64{7}, models.AddonFieldOption{Label: "Garage Bay", Price: decimal.NewFromInt(30)}),
		checkboxGroup("courses", []int64{9}, models.AddonFieldOption{Label: "Helmet Hire", Price: decimal.NewFromInt(15)}),
	}}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.Resolve(context.Background(), []int64{7})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 options, got %d: %+v", len(got), got)
	}
	if got[0].FieldName != "photo-package" || got[1].FieldName != "garage-bay" {
		t.Fatalf("unexpected options: %+v", got)
	}
}

func TestResolveSkipsNonCheckboxFields(t *testing.T) {
	t.Parallel()

	repo := &stubGroupLister{groups: []models.AddonGroup{
		{
			Name: "mixed",
			Fields: []models.AddonField{
				{Name: "notes", Type: enums.AddonFieldTypeText},
				{Name: "extras", Type: enums.AddonFieldTypeCheckbox, Options: []models.AddonFieldOption{
					{Label: "Photo Package", Price: decimal.NewFromInt(50)},
				}},
			},
		},
	}}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Photo Package" {
		t.Fatalf("expected only checkbox options, got %+v", got)
	}
}

func TestResolveDuplicateFieldNamesLastWins(t *testing.T) {
	t.Parallel()

	repo := &stubGroupLister{groups: []models.AddonGroup{
		checkboxGroup("a", nil, models.AddonFieldOption{Label: "Photo Package", Price: decimal.NewFromInt(40)}),
		checkboxGroup("b", nil, models.AddonFieldOption{Label: "Photo Package", Price: decimal.NewFromInt(55)}),
	}}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected deduped option, got %+v", got)
	}
	if !got[0].Price.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("expected later definition to win, got %s", got[0].Price)
	}
}

func TestResolveRepoErrorFailsOpen(t *testing.T) {
	t.Parallel()

	repo := &stubGroupLister{err: errors.New("db down")}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.Resolve(context.Background(), []int64{1})
	if err != nil {
		t.Fatalf("expected fail-open resolve, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty offer list, got %+v", got)
	}
}
