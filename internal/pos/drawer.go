package pos

import (
	"fmt"
	"time"
)

type Direction string

const (
	DirectionAdd    Direction = "add"
	DirectionRemove Direction = "remove"
)

// Recent log dibatasi utk display; full log ada di list "transactions" (Redis)
// dan journal Postgres.
const RecentLimit = 5

// Drawer: cash float per shift. Lifecycle Closed -> Open -> Closed, satu
// cycle = satu shift. Semua method mutasi hanya valid sesuai state; error
// berarti state tidak berubah sama sekali.
type Drawer struct {
	OpeningCents    int           `json:"opening_cents"`
	CurrentCents    int           `json:"current_cents"`
	TotalSalesCents int           `json:"total_sales_cents"`
	TotalCashCents  int           `json:"total_cash_cents"`
	TotalCardCents  int           `json:"total_card_cents"`
	TxnCount        int           `json:"txn_count"`
	IsOpen          bool          `json:"is_open"`
	OpenedAt        time.Time     `json:"opened_at,omitempty"`
	ClosedAt        time.Time     `json:"closed_at,omitempty"`
	Recent          []Transaction `json:"recent"` // terbaru di depan, max RecentLimit
}

// CloseReport: hasil tutup drawer. Variance = counted - expected; dilaporkan,
// tidak pernah nge-block closing.
type CloseReport struct {
	OpeningCents    int       `json:"opening_cents"`
	ExpectedCents   int       `json:"expected_cents"`
	CountedCents    int       `json:"counted_cents"`
	VarianceCents   int       `json:"variance_cents"`
	TotalSalesCents int       `json:"total_sales_cents"`
	TotalCashCents  int       `json:"total_cash_cents"`
	TotalCardCents  int       `json:"total_card_cents"`
	TxnCount        int       `json:"txn_count"`
	Balanced        bool      `json:"balanced"`
	OpenedAt        time.Time `json:"opened_at"`
	ClosedAt        time.Time `json:"closed_at"`
}

// Open: hanya valid dari Closed. Reset semua running total & recent log,
// opening = current = float awal.
func (d *Drawer) Open(openingCents int, now time.Time) error {
	if d.IsOpen {
		return ErrDrawerOpen
	}
	if openingCents < 0 {
		return ErrInvalidAmount
	}
	*d = Drawer{
		OpeningCents: openingCents,
		CurrentCents: openingCents,
		IsOpen:       true,
		OpenedAt:     now,
	}
	return nil
}

// id sequential per shift: TXN001, TXN002, ... dipakai sale maupun adjustment.
func (d *Drawer) nextTxnID() string {
	d.TxnCount++
	return fmt.Sprintf("TXN%03d", d.TxnCount)
}

// RecordSale: tambah total sale ke current & totalSales, split cash/card.
func (d *Drawer) RecordSale(amountCents int, method PaymentMethod, now time.Time) (Transaction, error) {
	if !d.IsOpen {
		return Transaction{}, ErrDrawerClosed
	}
	if amountCents <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	if !method.Valid() {
		return Transaction{}, ErrInvalidAmount
	}

	d.CurrentCents += amountCents
	d.TotalSalesCents += amountCents
	switch method {
	case MethodCash:
		d.TotalCashCents += amountCents
	case MethodCard:
		d.TotalCardCents += amountCents
	}

	t := Transaction{
		ID:          d.nextTxnID(),
		At:          now,
		AmountCents: amountCents,
		Method:      method,
		Action:      ActionSale,
	}
	d.appendRecent(t)
	return t, nil
}

// Adjust: add/remove cash manual (change fund, bank deposit, dst). Wajib ada
// reason. Remove tidak boleh melebihi saldo drawer.
func (d *Drawer) Adjust(amountCents int, dir Direction, reason string, now time.Time) (Transaction, error) {
	if !d.IsOpen {
		return Transaction{}, ErrDrawerClosed
	}
	if amountCents <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	if reason == "" {
		return Transaction{}, ErrMissingReason
	}

	var action DrawerAction
	switch dir {
	case DirectionAdd:
		d.CurrentCents += amountCents
		action = ActionAdd
	case DirectionRemove:
		if amountCents > d.CurrentCents {
			return Transaction{}, ErrInsufficientFunds
		}
		d.CurrentCents -= amountCents
		action = ActionRemove
	default:
		return Transaction{}, ErrInvalidAmount
	}

	t := Transaction{
		ID:          d.nextTxnID(),
		At:          now,
		AmountCents: amountCents,
		Action:      action,
		Reason:      reason,
	}
	d.appendRecent(t)
	return t, nil
}

// Close: hitung variance terhadap cash yang dihitung fisik, lalu freeze.
// Selalu sukses selama drawer open; selisih cuma dilaporkan.
func (d *Drawer) Close(countedCents int, now time.Time) (CloseReport, error) {
	if !d.IsOpen {
		return CloseReport{}, ErrDrawerClosed
	}
	d.IsOpen = false
	d.ClosedAt = now
	variance := countedCents - d.CurrentCents
	return CloseReport{
		OpeningCents:    d.OpeningCents,
		ExpectedCents:   d.CurrentCents,
		CountedCents:    countedCents,
		VarianceCents:   variance,
		TotalSalesCents: d.TotalSalesCents,
		TotalCashCents:  d.TotalCashCents,
		TotalCardCents:  d.TotalCardCents,
		TxnCount:        d.TxnCount,
		Balanced:        variance == 0,
		OpenedAt:        d.OpenedAt,
		ClosedAt:        now,
	}, nil
}

func (d *Drawer) appendRecent(t Transaction) {
	d.Recent = append([]Transaction{t}, d.Recent...)
	if len(d.Recent) > RecentLimit {
		d.Recent = d.Recent[:RecentLimit]
	}
}
