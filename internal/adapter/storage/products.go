package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wnstore/storefront/internal/core/domain"
	"github.com/wnstore/storefront/internal/core/port"
)

var _ port.ProductsRepository = (*ProductsRepository)(nil)

const productColumns = `
	id, name, price, newprice, type,
	pictures, colors, sizes, description`

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

// ListProducts reads the catalog newest first, capped at limit rows.
func (r ProductsRepository) ListProducts(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT` + productColumns + `
		FROM products
		ORDER BY id DESC
		LIMIT $1;`

	rows, err := r.sqldb.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) ProductByID(
	ctx context.Context, id int64,
) (domain.Product, error) {
	const op = "ProductsRepository.ProductByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT` + productColumns + `
		FROM products
		WHERE id = $1;`

	row := r.sqldb.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) InsertProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.InsertProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO products (
			name, price, newprice, type,
			pictures, colors, sizes, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING` + productColumns + `;`

	args, err := productArgs(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	row := r.sqldb.QueryRowContext(ctx, query, args...)
	created, err := scanProduct(row.Scan)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: failed to insert: %w", op, err)
	}
	return created, nil
}

func (r ProductsRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE products SET
			name = $1,
			price = $2,
			newprice = $3,
			type = $4,
			pictures = $5,
			colors = $6,
			sizes = $7,
			description = $8
		WHERE id = $9
		RETURNING` + productColumns + `;`

	args, err := productArgs(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	args = append(args, p.ID)

	row := r.sqldb.QueryRowContext(ctx, query, args...)
	updated, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: failed to update: %w", op, err)
	}
	return updated, nil
}

func (r ProductsRepository) DeleteProduct(
	ctx context.Context, id int64,
) error {
	const op = "ProductsRepository.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(
		ctx, `DELETE FROM products WHERE id = $1;`, id,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to delete: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	return nil
}

func productArgs(p domain.Product) ([]any, error) {
	picB, err := json.Marshal(emptyIfNil(p.Pictures))
	if err != nil {
		return nil, err
	}
	colB, err := json.Marshal(emptyIfNil(p.Colors))
	if err != nil {
		return nil, err
	}
	sizB, err := json.Marshal(emptyIfNil(p.Sizes))
	if err != nil {
		return nil, err
	}

	var newPrice sql.NullFloat64
	if p.NewPrice > 0 {
		newPrice = sql.NullFloat64{Float64: p.NewPrice, Valid: true}
	}

	return []any{
		p.Name, p.Price, newPrice, p.Type,
		string(picB), string(colB), string(sizB), p.Description,
	}, nil
}

func scanProduct(scan func(dest ...any) error) (domain.Product, error) {
	var (
		p        domain.Product
		newPrice sql.NullFloat64
		picS     string
		colS     string
		sizS     string
	)

	err := scan(
		&p.ID, &p.Name, &p.Price, &newPrice, &p.Type,
		&picS, &colS, &sizS, &p.Description,
	)
	if err != nil {
		return domain.Product{}, err
	}

	p.NewPrice = newPrice.Float64

	if err := json.Unmarshal([]byte(picS), &p.Pictures); err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal([]byte(colS), &p.Colors); err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal([]byte(sizS), &p.Sizes); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func emptyIfNil(vs []string) []string {
	if vs == nil {
		return []string{}
	}
	return vs
}
