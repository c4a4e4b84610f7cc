package pos

import "time"

// Tax rate tetap 8% (800 basis points), dihitung di atas subtotal.
const TaxRateBps = 800

// Cart: working set line item utk sale yang sedang berjalan.
// Urutan insert = urutan display. Satu cart aktif per register session,
// caller yang pegang lock. Lookup produk di-inject oleh caller (tidak ada
// global catalog di sini).
type Cart struct {
	lines []CartLine
}

func (c *Cart) Len() int { return len(c.lines) }

// Lines return salinan, biar caller tidak bisa mutasi internal slice.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) find(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddLine: tambah qty 1 utk produk p. Ceiling check terhadap stock saat
// increment; kalau lewat -> ErrInsufficientStock dan cart tidak berubah.
func (c *Cart) AddLine(p Product) error {
	if i := c.find(p.ID); i >= 0 {
		if c.lines[i].Qty+1 > p.Stock {
			return ErrInsufficientStock
		}
		c.lines[i].Qty++
		return nil
	}
	if p.Stock < 1 {
		return ErrInsufficientStock
	}
	c.lines = append(c.lines, CartLine{
		ProductID:  p.ID,
		Name:       p.Name,
		Category:   p.Category,
		PriceCents: p.PriceCents,
		Qty:        1,
	})
	return nil
}

// ChangeQty: apply delta ke line produk p. Hasil > stock -> tolak, qty tetap.
// Hasil <= 0 -> line dihapus.
func (c *Cart) ChangeQty(p Product, delta int) error {
	i := c.find(p.ID)
	if i < 0 {
		return ErrProductNotFound
	}
	next := c.lines[i].Qty + delta
	if next > p.Stock {
		return ErrInsufficientStock
	}
	if next <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Qty = next
	return nil
}

func (c *Cart) RemoveLine(productID string) {
	if i := c.find(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

func (c *Cart) Clear() { c.lines = nil }

// Totals pure & dihitung ulang tiap call, tidak ada cache.
func (c *Cart) Totals() Totals {
	subtotal := 0
	for _, l := range c.lines {
		subtotal += l.LineTotalCents()
	}
	tax := taxCents(subtotal)
	return Totals{SubtotalCents: subtotal, TaxCents: tax, TotalCents: subtotal + tax}
}

// round half-up dalam cents: 500 -> 40, 4550 -> 364.
func taxCents(subtotalCents int) int {
	return (subtotalCents*TaxRateBps + 5000) / 10000
}

// Suspend: bekukan cart jadi SuspendedSale (deep copy) lalu kosongkan cart.
func (c *Cart) Suspend(id string, now time.Time) (SuspendedSale, error) {
	if len(c.lines) == 0 {
		return SuspendedSale{}, ErrEmptyCart
	}
	s := SuspendedSale{
		ID:          id,
		Lines:       c.Lines(),
		TotalCents:  c.Totals().TotalCents,
		SuspendedAt: now,
	}
	c.lines = nil
	return s, nil
}

// Restore: balikin snapshot jadi cart aktif. Tolak kalau masih ada sale jalan.
func (c *Cart) Restore(s SuspendedSale) error {
	if len(c.lines) > 0 {
		return ErrCartNotEmpty
	}
	c.lines = make([]CartLine, len(s.Lines))
	copy(c.lines, s.Lines)
	return nil
}
