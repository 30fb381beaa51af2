package port

import (
	"context"

	"github.com/wnstore/storefront/internal/core/domain"
)

// CatalogReader serves catalog reads from the in-memory snapshot.
// Read operations never fail: degraded responses are tagged with
// the source they fell back to.
type CatalogReader interface {
	GetAllProducts(ctx context.Context, forceRefresh bool) ([]domain.Product, domain.CatalogSource)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetRelatedProducts(ctx context.Context, p domain.Product, limit int) []domain.Product
	GetSaleProducts(ctx context.Context, limit int) []domain.Product
	GetProductCategories(ctx context.Context) []domain.Category
}

// CatalogEditor mutates products directly against the backend.
// Implementations must invalidate the snapshot after every
// confirmed write.
type CatalogEditor interface {
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type CacheController interface {
	ClearProductsCache()
	CacheInfo() domain.CacheInfo
}

// ProductsRepository is the backend data client.
type ProductsRepository interface {
	ListProducts(ctx context.Context, limit int) ([]domain.Product, error)
	ProductByID(ctx context.Context, id int64) (domain.Product, error)
	InsertProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type CatalogEventsProducer interface {
	ProduceEvent(ctx context.Context, e domain.CatalogEvent) error
}

// ImageStore removes uploaded product images from object storage.
// The core only ever passes around the URL strings it was handed.
type ImageStore interface {
	RemoveImages(ctx context.Context, urls []string) error
}
