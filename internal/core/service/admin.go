package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/wnstore/storefront/internal/core/domain"
)

// Mutations run directly against the backend, their errors are
// surfaced to the caller. A confirmed write invalidates the snapshot
// and publishes a catalog event for external consumers.

func (s *Service) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateProduct(p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	created, err := s.repo.InsertProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.ClearProductsCache()
	s.publishEvent(domain.ActionAdd, created.ID)
	return created, nil
}

func (s *Service) UpdateProduct(
	ctx context.Context, id string, p domain.Product,
) (domain.Product, error) {
	const op = "Service.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	pid, err := parseID(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateProduct(p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	p.ID = pid
	updated, err := s.repo.UpdateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.ClearProductsCache()
	s.publishEvent(domain.ActionUpdate, updated.ID)
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	const op = "Service.DeleteProduct"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	pid, err := parseID(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	// Uploaded images go away with the product. A storage failure
	// must not block the delete itself.
	existing, err := s.repo.ProductByID(ctx, pid)
	if err == nil && len(existing.Pictures) > 0 && s.images != nil {
		if err := s.images.RemoveImages(ctx, existing.Pictures); err != nil {
			log.Warn("failed to remove product images", "err", err)
		}
	}

	if err := s.repo.DeleteProduct(ctx, pid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.ClearProductsCache()
	s.publishEvent(domain.ActionDelete, pid)
	return nil
}

// publishEvent is best-effort: the mutation already succeeded, a
// broker failure only delays page revalidation downstream.
func (s *Service) publishEvent(action domain.CatalogAction, productID int64) {
	const op = "Service.publishEvent"

	if s.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()

	e := domain.CatalogEvent{
		Action:     action,
		ProductID:  productID,
		OccurredAt: s.now(),
	}
	if err := s.events.ProduceEvent(ctx, e); err != nil {
		slog.Warn("failed to produce catalog event",
			"op", op, "action", action, "productID", productID, "err", err)
	}
}

func validateProduct(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" || p.Price <= 0 {
		return domain.ErrInvalidProduct
	}
	return nil
}

func parseID(id string) (int64, error) {
	pid, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, domain.ErrProductNotFound
	}
	return pid, nil
}
