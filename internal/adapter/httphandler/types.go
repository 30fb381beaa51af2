package httphandler

import "github.com/wnstore/storefront/internal/core/domain"

// Wire field names match the products table exactly, the web
// frontend's filter and sale derivations depend on them.
type (
	Product struct {
		ID          int64    `json:"id"`
		Name        string   `json:"name"`
		Price       float64  `json:"price"`
		NewPrice    *float64 `json:"newprice"`
		Type        string   `json:"type"`
		Pictures    []string `json:"pictures"`
		Colors      []string `json:"colors"`
		Sizes       []string `json:"sizes"`
		Description string   `json:"description,omitempty"`
	}

	Category struct {
		Key         string `json:"key"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
		Count       int    `json:"count"`
	}

	CacheInfo struct {
		HasCache   bool  `json:"hasCache"`
		CacheSize  int   `json:"cacheSize"`
		CacheAgeMs int64 `json:"cacheAge"`
		CacheValid bool  `json:"cacheValid"`
	}
)

func toWireProduct(p domain.Product) Product {
	wp := Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Type:        p.Type,
		Pictures:    p.Pictures,
		Colors:      p.Colors,
		Sizes:       p.Sizes,
		Description: p.Description,
	}
	if p.NewPrice > 0 {
		np := p.NewPrice
		wp.NewPrice = &np
	}
	return wp
}

func toWireProducts(ps []domain.Product) []Product {
	wps := make([]Product, 0, len(ps))
	for _, p := range ps {
		wps = append(wps, toWireProduct(p))
	}
	return wps
}

func toDomainProduct(wp Product) domain.Product {
	p := domain.Product{
		ID:          wp.ID,
		Name:        wp.Name,
		Price:       wp.Price,
		Type:        wp.Type,
		Pictures:    wp.Pictures,
		Colors:      wp.Colors,
		Sizes:       wp.Sizes,
		Description: wp.Description,
	}
	if wp.NewPrice != nil {
		p.NewPrice = *wp.NewPrice
	}
	return p
}

func toWireCategories(cs []domain.Category) []Category {
	wcs := make([]Category, 0, len(cs))
	for _, c := range cs {
		wcs = append(wcs, Category{
			Key:         c.Key,
			Name:        c.Name,
			Description: c.Description,
			Image:       c.Image,
			Count:       c.Count,
		})
	}
	return wcs
}

func toWireCacheInfo(info domain.CacheInfo) CacheInfo {
	return CacheInfo{
		HasCache:   info.HasCache,
		CacheSize:  info.CacheSize,
		CacheAgeMs: info.CacheAge.Milliseconds(),
		CacheValid: info.CacheValid,
	}
}
