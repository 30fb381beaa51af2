package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wnstore/storefront/internal/core/domain"
	"github.com/wnstore/storefront/internal/core/service"
)

func productIDs(ps []domain.Product) []int64 {
	ids := make([]int64, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestGetRelatedProducts(t *testing.T) {

	t.Run("ExclusionAndPriceProximityRanking", func(t *testing.T) {
		repo := new(MockProductsRepository)
		clock := newFakeClock()
		s := newTestService(repo, clock)

		repo.On("ListProducts", mock.Anything, 100).Return([]domain.Product{
			{ID: 1, Type: "dress", Price: 100},
			{ID: 2, Type: "dress", Price: 90},
			{ID: 3, Type: "dress", Price: 150},
			{ID: 4, Type: "bag", Price: 100},
		}, nil).Once()

		ref := domain.Product{ID: 1, Type: "dress", Price: 100}
		related := s.GetRelatedProducts(t.Context(), ref, 2)

		assert.Equal(t, []int64{2, 3}, productIDs(related))
	})

	t.Run("RanksByEffectivePrice", func(t *testing.T) {
		repo := new(MockProductsRepository)
		clock := newFakeClock()
		s := newTestService(repo, clock)

		// id 3 is nominally far but discounts down to the reference price
		repo.On("ListProducts", mock.Anything, 100).Return([]domain.Product{
			{ID: 1, Type: "dress", Price: 100},
			{ID: 2, Type: "dress", Price: 130},
			{ID: 3, Type: "dress", Price: 200, NewPrice: 105},
		}, nil).Once()

		ref := domain.Product{ID: 1, Type: "dress", Price: 100}
		related := s.GetRelatedProducts(t.Context(), ref, 8)

		assert.Equal(t, []int64{3, 2}, productIDs(related))
	})

	t.Run("Truncates", func(t *testing.T) {
		repo := new(MockProductsRepository)
		clock := newFakeClock()
		s := newTestService(repo, clock)

		var ps []domain.Product
		for id := int64(1); id <= 12; id++ {
			ps = append(ps, domain.Product{ID: id, Type: "casual", Price: float64(id * 10)})
		}
		repo.On("ListProducts", mock.Anything, 100).Return(ps, nil).Once()

		ref := domain.Product{ID: 99, Type: "casual", Price: 50}
		related := s.GetRelatedProducts(t.Context(), ref, 0)

		assert.Len(t, related, service.DefaultRelatedLimit)
	})
}

func TestGetSaleProducts(t *testing.T) {

	t.Run("StrictDiscountFilter", func(t *testing.T) {
		repo := new(MockProductsRepository)
		clock := newFakeClock()
		s := newTestService(repo, clock)

		repo.On("ListProducts", mock.Anything, 100).Return([]domain.Product{
			{ID: 1, Price: 100},                 // no discount
			{ID: 2, Price: 100, NewPrice: 50},   // 50% off
			{ID: 3, Price: 100, NewPrice: 0},    // zero is not a discount
			{ID: 4, Price: 100, NewPrice: 80},   // 20% off
			{ID: 5, Price: 100, NewPrice: 120},  // above base price, invalid
		}, nil).Once()

		sale := s.GetSaleProducts(t.Context(), 0)

		assert.Equal(t, []int64{2, 4}, productIDs(sale))
	})

	t.Run("SortsByDiscountDescending", func(t *testing.T) {
		repo := new(MockProductsRepository)
		clock := newFakeClock()
		s := newTestService(repo, clock)

		repo.On("ListProducts", mock.Anything, 100).Return([]domain.Product{
			{ID: 1, Price: 100, NewPrice: 90},
			{ID: 2, Price: 200, NewPrice: 100},
			{ID: 3, Price: 100, NewPrice: 75},
		}, nil).Once()

		sale := s.GetSaleProducts(t.Context(), 2)

		assert.Equal(t, []int64{2, 3}, productIDs(sale))
	})
}

func TestGetProductCategories(t *testing.T) {

	categoryMapping := map[string]domain.CategoryMeta{
		"dress": {
			Name:        "Dresses",
			Description: "Elegant dresses for special occasions",
			Image:       "https://img.example/dress.png",
		},
		"bag": {
			Name:        "Bags",
			Description: "Stylish bags and accessories",
			Image:       "https://img.example/bag.png",
		},
	}
	const defaultImage = "https://img.example/default.png"

	t.Run("RollupWithCounts", func(t *testing.T) {
		repo := new(MockProductsRepository)
		clock := newFakeClock()
		s := newTestService(repo, clock,
			service.WithCategoryMapping(categoryMapping, defaultImage))

		repo.On("ListProducts", mock.Anything, 100).Return([]domain.Product{
			{ID: 3, Type: "dress", Price: 10},
			{ID: 2, Type: "dress", Price: 10},
			{ID: 1, Type: "bag", Price: 10},
		}, nil).Once()

		cs := s.GetProductCategories(t.Context())

		require.Len(t, cs, 2)
		assert.Equal(t, "dress", cs[0].Key)
		assert.Equal(t, "Dresses", cs[0].Name)
		assert.Equal(t, 2, cs[0].Count)
		assert.Equal(t, "bag", cs[1].Key)
		assert.Equal(t, "Bags", cs[1].Name)
		assert.Equal(t, 1, cs[1].Count)
	})

	t.Run("UnmappedTypeGetsGeneratedMeta", func(t *testing.T) {
		repo := new(MockProductsRepository)
		clock := newFakeClock()
		s := newTestService(repo, clock,
			service.WithCategoryMapping(categoryMapping, defaultImage))

		repo.On("ListProducts", mock.Anything, 100).Return([]domain.Product{
			{ID: 1, Type: "shoes", Price: 10},
		}, nil).Once()

		cs := s.GetProductCategories(t.Context())

		require.Len(t, cs, 1)
		assert.Equal(t, "shoes", cs[0].Key)
		assert.Equal(t, "Shoes", cs[0].Name)
		assert.Equal(t, "Discover our shoes collection", cs[0].Description)
		assert.Equal(t, defaultImage, cs[0].Image)
		assert.Equal(t, 1, cs[0].Count)
	})

	t.Run("CaseInsensitiveMappingLookup", func(t *testing.T) {
		repo := new(MockProductsRepository)
		clock := newFakeClock()
		s := newTestService(repo, clock,
			service.WithCategoryMapping(categoryMapping, defaultImage))

		repo.On("ListProducts", mock.Anything, 100).Return([]domain.Product{
			{ID: 1, Type: "Dress", Price: 10},
		}, nil).Once()

		cs := s.GetProductCategories(t.Context())

		require.Len(t, cs, 1)
		assert.Equal(t, "Dress", cs[0].Key)
		assert.Equal(t, "Dresses", cs[0].Name)
	})

	t.Run("SkipsEmptyType", func(t *testing.T) {
		repo := new(MockProductsRepository)
		clock := newFakeClock()
		s := newTestService(repo, clock,
			service.WithCategoryMapping(categoryMapping, defaultImage))

		repo.On("ListProducts", mock.Anything, 100).Return([]domain.Product{
			{ID: 2, Type: "", Price: 10},
			{ID: 1, Type: "bag", Price: 10},
		}, nil).Once()

		cs := s.GetProductCategories(t.Context())

		require.Len(t, cs, 1)
		assert.Equal(t, "bag", cs[0].Key)
	})
}
