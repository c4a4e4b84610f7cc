package pos

import (
	"fmt"
	"time"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "Cash"
	MethodCard PaymentMethod = "Card"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodCard
}

type Product struct {
	ID         string    `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	PriceCents int       `json:"price_cents"`
	Stock      int       `json:"stock"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// Stok <= LowStock dianggap menipis (warning di UI, event di journal).
const LowStock = 5

type CartLine struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int    `json:"price_cents"`
	Qty        int    `json:"qty"`
}

func (l CartLine) LineTotalCents() int { return l.PriceCents * l.Qty }

type Totals struct {
	SubtotalCents int `json:"subtotal_cents"`
	TaxCents      int `json:"tax_cents"`
	TotalCents    int `json:"total_cents"`
}

// SuspendedSale: snapshot cart yang diparkir, register bebas utk transaksi lain.
type SuspendedSale struct {
	ID          string     `json:"id"`
	Lines       []CartLine `json:"lines"`
	TotalCents  int        `json:"total_cents"`
	SuspendedAt time.Time  `json:"suspended_at"`
}

type DrawerAction string

const (
	ActionSale   DrawerAction = "sale"
	ActionAdd    DrawerAction = "add"
	ActionRemove DrawerAction = "remove"
)

// Transaction: record immutable per mutasi drawer (sale / add / remove).
type Transaction struct {
	ID          string        `json:"id"`
	At          time.Time     `json:"at"`
	AmountCents int           `json:"amount_cents"`
	Method      PaymentMethod `json:"method,omitempty"`
	Action      DrawerAction  `json:"action"`
	Reason      string        `json:"reason,omitempty"`
}

type Denomination struct {
	ValueCents int `json:"value_cents"`
	Count      int `json:"count"`
}

func CountCents(denoms []Denomination) int {
	total := 0
	for _, d := range denoms {
		if d.Count <= 0 {
			continue
		}
		total += d.ValueCents * d.Count
	}
	return total
}

// FormatCents: 4550 -> "45.50". Variance bisa negatif.
func FormatCents(c int) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
