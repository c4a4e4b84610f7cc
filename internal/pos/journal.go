package pos

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JournalRepo: append-only journal penjualan di Postgres. Diisi oleh consumer
// pos.sale.completed, bukan oleh API handler, supaya checkout tetap cepat.
type JournalRepo struct{ DB *pgxpool.Pool }

// InsertSale idempotent via sale_id: event yang sama boleh datang dua kali
// (at-least-once delivery), insert kedua jadi no-op.
func (r *JournalRepo) InsertSale(ctx context.Context, p SaleCompletedPayload, occurredAt int64) (existed bool, err error) {
	var id string
	err = r.DB.QueryRow(ctx, `SELECT sale_id FROM sales WHERE sale_id=$1`, p.SaleID).Scan(&id)
	if err == nil {
		return true, nil
	} else if err != pgx.ErrNoRows {
		return false, err
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO sales(sale_id, txn_id, register_id, subtotal_cents, tax_cents, total_cents, payment_method, cashier, store, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, to_timestamp($10))
	`, p.SaleID, p.TransactionID, p.RegisterID, p.SubtotalCents, p.TaxCents, p.TotalCents, string(p.Method), p.Cashier, p.Store, occurredAt)
	if err != nil {
		return false, err
	}

	for _, it := range p.Items {
		if _, err = tx.Exec(ctx, `
			INSERT INTO sale_items(sale_id, product_id, name, qty, price_cents)
			VALUES ($1,$2,$3,$4,$5)`,
			p.SaleID, it.ProductID, it.Name, it.Qty, it.PriceCents,
		); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return false, nil
}

// DeductStock: kurangi stok per item dengan lock per baris (FOR UPDATE).
// Tidak ada reservation di sisi register, jadi stok bisa saja kurang dari qty
// terjual; di kasus itu clamp ke nol, sale yang sudah tercatat tidak digagalkan.
// Return produk yang stoknya menipis setelah pengurangan.
func (r *JournalRepo) DeductStock(ctx context.Context, items []CartLine) (low []Product, err error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, it := range items {
		var stock int
		if err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1 FOR UPDATE`, it.ProductID).Scan(&stock); err != nil {
			if err == pgx.ErrNoRows {
				continue // produk sudah dihapus dari catalog; skip
			}
			return nil, err
		}
		next := stock - it.Qty
		if next < 0 {
			next = 0
		}
		if _, err := tx.Exec(ctx, `UPDATE products SET stock=$2, updated_at=now() WHERE id=$1`, it.ProductID, next); err != nil {
			return nil, err
		}
		if next <= LowStock {
			var p Product
			row := tx.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, it.ProductID)
			if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, err
			}
			low = append(low, p)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return low, nil
}
