package service

import "github.com/wnstore/storefront/internal/core/domain"

// fallbackCatalog keeps the storefront navigable when the backend is
// unreachable and no snapshot exists. It is served as-is and never
// written back into the cache.
func fallbackCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:          3,
			Name:        "Classic Midi Dress",
			Price:       1200,
			NewPrice:    950,
			Type:        "dress",
			Pictures:    []string{"/fallback/dress.png"},
			Colors:      []string{"black", "navy"},
			Sizes:       []string{"S", "M", "L"},
			Description: "Elegant midi dress for special occasions",
		},
		{
			ID:          2,
			Name:        "Everyday Casual Set",
			Price:       850,
			Type:        "casual",
			Pictures:    []string{"/fallback/casual.png"},
			Colors:      []string{"beige"},
			Sizes:       []string{"S", "M", "L", "XL"},
			Description: "Comfortable everyday wear",
		},
		{
			ID:          1,
			Name:        "City Tote Bag",
			Price:       600,
			Type:        "bag",
			Pictures:    []string{"/fallback/bag.png"},
			Colors:      []string{"brown", "black"},
			Description: "Stylish bag that fits everything",
		},
	}
}
