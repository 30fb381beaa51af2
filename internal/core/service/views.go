package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wnstore/storefront/internal/core/domain"
)

// GetRelatedProducts derives products of the same type as ref,
// excluding ref itself, ranked by ascending distance from its
// effective price. Pure derivation over the snapshot, it never fails.
func (s *Service) GetRelatedProducts(
	ctx context.Context, ref domain.Product, limit int,
) []domain.Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	all, _ := s.GetAllProducts(ctx, false)

	var related []domain.Product
	for _, p := range all {
		if p.Type == ref.Type && p.ID != ref.ID {
			related = append(related, p)
		}
	}

	refPrice := ref.EffectivePrice()
	sort.SliceStable(related, func(i, j int) bool {
		di := math.Abs(related[i].EffectivePrice() - refPrice)
		dj := math.Abs(related[j].EffectivePrice() - refPrice)
		return di < dj
	})

	if len(related) > limit {
		related = related[:limit]
	}
	return related
}

// GetSaleProducts filters the snapshot down to valid discounts
// (0 < newprice < price), highest discount percentage first.
func (s *Service) GetSaleProducts(
	ctx context.Context, limit int,
) []domain.Product {
	if limit <= 0 {
		limit = DefaultSaleLimit
	}

	all, _ := s.GetAllProducts(ctx, false)

	var sale []domain.Product
	for _, p := range all {
		if p.OnSale() {
			sale = append(sale, p)
		}
	}

	sort.SliceStable(sale, func(i, j int) bool {
		return sale[i].DiscountPercent() > sale[j].DiscountPercent()
	})

	if len(sale) > limit {
		sale = sale[:limit]
	}
	return sale
}

// GetProductCategories rolls up distinct product types in order of
// first appearance, attaching the configured presentation metadata
// and a per-type product count.
func (s *Service) GetProductCategories(ctx context.Context) []domain.Category {
	all, _ := s.GetAllProducts(ctx, false)

	counts := make(map[string]int)
	var order []string
	for _, p := range all {
		if p.Type == "" {
			continue
		}
		if _, seen := counts[p.Type]; !seen {
			order = append(order, p.Type)
		}
		counts[p.Type]++
	}

	categories := make([]domain.Category, 0, len(order))
	for _, key := range order {
		meta, ok := s.categories[strings.ToLower(key)]
		if !ok {
			meta = s.fallbackCategoryMeta(key)
		}
		categories = append(categories, domain.Category{
			Key:         key,
			Name:        meta.Name,
			Description: meta.Description,
			Image:       meta.Image,
			Count:       counts[key],
		})
	}
	return categories
}

func (s *Service) fallbackCategoryMeta(key string) domain.CategoryMeta {
	return domain.CategoryMeta{
		Name:        titleCase(key),
		Description: fmt.Sprintf("Discover our %s collection", key),
		Image:       s.defaultImage,
	}
}

func titleCase(v string) string {
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}
