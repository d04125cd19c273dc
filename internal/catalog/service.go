package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pdadev/trackday-backend/pkg/db/models"
	"github.com/pdadev/trackday-backend/pkg/enums"
	"github.com/pdadev/trackday-backend/pkg/logger"
)

type groupLister interface {
	ListGroups(ctx context.Context) ([]models.AddonGroup, error)
}

// ResolvedOption is one priced add-on choice offered to each participant.
type ResolvedOption struct {
	FieldName string
	Label     string
	Price     decimal.Decimal
}

// Service resolves which add-on options apply to a cart's categories.
type Service interface {
	Resolve(ctx context.Context, categoryIDs []int64) ([]ResolvedOption, error)
}

type service struct {
	repo groupLister
	logg *logger.Logger
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo groupLister, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Resolve returns the checkbox options applicable to the given product
// categories, in group then field then option order. A group with no
// category restriction applies to every cart. Duplicate field names keep
// the later definition. Resolution errors degrade to an empty offer list
// rather than failing checkout.
func (s *service) Resolve(ctx context.Context, categoryIDs []int64) ([]ResolvedOption, error) {
	groups, err := s.repo.ListGroups(ctx)
	if err != nil {
		s.logg.Error(ctx, "resolving addon catalog, continuing with empty offer", err)
		return []ResolvedOption{}, nil
	}

	cartCategories := map[int64]struct{}{}
	for _, id := range categoryIDs {
		cartCategories[id] = struct{}{}
	}

	ordered := make([]ResolvedOption, 0)
	position := map[string]int{}

	for _, group := range groups {
		if !groupApplies(group, cartCategories) {
			continue
		}
		for _, field := range group.Fields {
			if field.Type != enums.AddonFieldTypeCheckbox {
				continue
			}
			for _, opt := range field.Options {
				resolved := ResolvedOption{
					FieldName: Slugify(opt.Label),
					Label:     opt.Label,
					Price:     opt.Price,
				}
				if resolved.FieldName == "" {
					continue
				}
				// Later definitions win but keep the original slot.
				if at, seen := position[resolved.FieldName]; seen {
					ordered[at] = resolved
					continue
				}
				position[resolved.FieldName] = len(ordered)
				ordered = append(ordered, resolved)
			}
		}
	}
	return ordered, nil
}

func groupApplies(group models.AddonGroup, cartCategories map[int64]struct{}) bool {
	if len(group.Categories) == 0 {
		return true
	}
	for _, cat := range group.Categories {
		if _, ok := cartCategories[cat.ID]; ok {
			return true
		}
	}
	return false
}
