package pos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepo: lookup produk dari Postgres. Product immutable selama sale;
// stock di sini cuma ceiling check, tidak ada reservation/locking dari sisi
// register.
type CatalogRepo struct{ DB *pgxpool.Pool }

const productCols = `id, sku, name, category, price_cents, stock, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *CatalogRepo) GetProduct(ctx context.Context, id string) (Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
}

// GetBySKU dipakai jalur barcode scan.
func (r *CatalogRepo) GetBySKU(ctx context.Context, sku string) (Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE sku=$1`, sku))
}

// ListProducts: filter optional category ("All" / kosong = semua) dan search
// case-insensitive di nama.
func (r *CatalogRepo) ListProducts(ctx context.Context, category, search string) ([]Product, error) {
	q := `SELECT ` + productCols + ` FROM products WHERE 1=1`
	args := []any{}
	if category != "" && category != "All" {
		args = append(args, category)
		q += ` AND category=$1`
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		q += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	q += ` ORDER BY sku`

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
