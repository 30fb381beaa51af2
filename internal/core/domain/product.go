package domain

import "time"

type (
	Product struct {
		ID          int64
		Name        string
		Price       float64
		NewPrice    float64
		Type        string
		Pictures    []string
		Colors      []string
		Sizes       []string
		Description string
	}

	// Category is derived from the current product set, never persisted.
	Category struct {
		Key         string
		Name        string
		Description string
		Image       string
		Count       int
	}

	CategoryMeta struct {
		Name        string
		Description string
		Image       string
	}
)

// OnSale reports whether the product carries a valid discount:
// 0 < NewPrice < Price.
func (p Product) OnSale() bool {
	return p.NewPrice > 0 && p.NewPrice < p.Price
}

// EffectivePrice is the discounted price when a valid discount
// is present, the base price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.OnSale() {
		return p.NewPrice
	}
	return p.Price
}

// DiscountPercent is zero for products without a valid discount.
func (p Product) DiscountPercent() float64 {
	if !p.OnSale() || p.Price == 0 {
		return 0
	}
	return (p.Price - p.NewPrice) / p.Price * 100
}

// CatalogSource tags where a catalog read got its data from.
type CatalogSource string

const (
	SourceFresh    CatalogSource = "fresh"
	SourceStale    CatalogSource = "stale-fallback"
	SourceFallback CatalogSource = "hardcoded-fallback"
)

type CacheInfo struct {
	HasCache   bool
	CacheSize  int
	CacheAge   time.Duration
	CacheValid bool
}

type CatalogAction string

const (
	ActionAdd    CatalogAction = "add"
	ActionUpdate CatalogAction = "update"
	ActionDelete CatalogAction = "delete"
)

// CatalogEvent notifies external consumers, e.g. the web frontend
// revalidating static pages, about a confirmed catalog mutation.
type CatalogEvent struct {
	Action     CatalogAction
	ProductID  int64
	OccurredAt time.Time
}
