package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wnstore/storefront/internal/core/domain"
	"github.com/wnstore/storefront/internal/core/port"
)

var _ port.CatalogReader = (*Service)(nil)
var _ port.CatalogEditor = (*Service)(nil)
var _ port.CacheController = (*Service)(nil)

const (
	DefaultTTL          = 30 * time.Minute
	DefaultMaxRows      = 100
	DefaultFetchTimeout = 10 * time.Second
	DefaultRelatedLimit = 8
	DefaultSaleLimit    = 4
)

var errEmptyFetch = errors.New("backend returned no rows")

// Service owns the in-memory product snapshot and serves all catalog
// reads from it. The snapshot is replaced wholesale on every
// successful fetch, callers never observe a partial update.
type Service struct {
	repo   port.ProductsRepository
	events port.CatalogEventsProducer
	images port.ImageStore

	ttl          time.Duration
	maxRows      int
	fetchTimeout time.Duration
	now          func() time.Time
	categories   map[string]domain.CategoryMeta
	defaultImage string

	mu        sync.Mutex
	snapshot  []domain.Product
	fetchedAt time.Time

	flight singleflight.Group
}

type Option func(*Service)

// Non-positive values keep the defaults, a config file with an
// omitted cache section must not disable the cache.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithMaxRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRows = n
		}
	}
}

func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithClock injects the time source, tests control freshness with it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCategoryMapping injects presentation metadata per product type,
// keyed by lower-cased type. Unknown types get a generated fallback
// carrying defaultImage.
func WithCategoryMapping(m map[string]domain.CategoryMeta, defaultImage string) Option {
	return func(s *Service) {
		s.categories = m
		s.defaultImage = defaultImage
	}
}

func New(
	repo port.ProductsRepository,
	events port.CatalogEventsProducer,
	images port.ImageStore,
	opts ...Option,
) *Service {
	s := &Service{
		repo:         repo,
		events:       events,
		images:       images,
		ttl:          DefaultTTL,
		maxRows:      DefaultMaxRows,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllProducts returns the cached snapshot while it is within TTL.
// On a miss or forced refresh it fetches from the backend, newest
// first. Failures never surface: the previous snapshot or the
// hardcoded fallback catalog is returned instead, tagged accordingly.
func (s *Service) GetAllProducts(
	ctx context.Context, forceRefresh bool,
) ([]domain.Product, domain.CatalogSource) {
	const op = "Service.GetAllProducts"
	log := slog.With("op", op)

	if !forceRefresh {
		if ps, ok := s.freshSnapshot(); ok {
			return ps, domain.SourceFresh
		}
	}

	// Concurrent refreshes coalesce behind a single backend fetch.
	v, err, _ := s.flight.Do("products", func() (any, error) {
		if !forceRefresh {
			if ps, ok := s.freshSnapshot(); ok {
				return ps, nil
			}
		}
		return s.refresh(ctx)
	})
	if err == nil {
		return v.([]domain.Product), domain.SourceFresh
	}

	log.Warn("backend fetch failed, serving degraded data", "err", err)

	s.mu.Lock()
	prev := s.snapshot
	s.mu.Unlock()
	if len(prev) > 0 {
		return prev, domain.SourceStale
	}
	return fallbackCatalog(), domain.SourceFallback
}

func (s *Service) freshSnapshot() ([]domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil || s.fetchedAt.IsZero() {
		return nil, false
	}
	if s.now().Sub(s.fetchedAt) >= s.ttl {
		return nil, false
	}
	return s.snapshot, true
}

func (s *Service) refresh(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.refresh"

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	ps, err := s.repo.ListProducts(ctx, s.maxRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("%s: %w", op, errEmptyFetch)
	}

	s.mu.Lock()
	s.snapshot = ps
	s.fetchedAt = s.now()
	s.mu.Unlock()

	slog.Info("products snapshot refreshed", "op", op, "nProducts", len(ps))
	return ps, nil
}

// GetProductByID scans the snapshot first regardless of TTL, then
// falls through to exactly one single-row backend fetch. The id is
// compared string-normalized, so numeric and string callers agree.
func (s *Service) GetProductByID(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "Service.GetProductByID"

	norm := strings.TrimSpace(id)

	s.mu.Lock()
	for _, p := range s.snapshot {
		if strconv.FormatInt(p.ID, 10) == norm {
			s.mu.Unlock()
			return p, nil
		}
	}
	s.mu.Unlock()

	pid, err := strconv.ParseInt(norm, 10, 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	p, err := s.repo.ProductByID(ctx, pid)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ClearProductsCache resets the snapshot. Every mutation pathway must
// call it after a confirmed backend write, the cache has no push
// invalidation of its own.
func (s *Service) ClearProductsCache() {
	const op = "Service.ClearProductsCache"

	s.mu.Lock()
	s.snapshot = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()

	slog.Info("products cache cleared", "op", op)
}

func (s *Service) CacheInfo() domain.CacheInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := domain.CacheInfo{
		HasCache:  s.snapshot != nil,
		CacheSize: len(s.snapshot),
	}
	if !s.fetchedAt.IsZero() {
		info.CacheAge = s.now().Sub(s.fetchedAt)
		info.CacheValid = info.CacheAge < s.ttl
	}
	return info
}
