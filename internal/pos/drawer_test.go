package pos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDrawer(t *testing.T, cents int) *Drawer {
	t.Helper()
	var d Drawer
	require.NoError(t, d.Open(cents, time.Now()))
	return &d
}

func TestDrawerOpen(t *testing.T) {
	var d Drawer
	require.ErrorIs(t, d.Open(-1, time.Now()), ErrInvalidAmount)
	require.False(t, d.IsOpen)

	require.NoError(t, d.Open(20000, time.Now()))
	assert.Equal(t, 20000, d.OpeningCents)
	assert.Equal(t, 20000, d.CurrentCents)

	require.ErrorIs(t, d.Open(100, time.Now()), ErrDrawerOpen)
}

func TestDrawerOpenResetsPriorShift(t *testing.T) {
	d := openDrawer(t, 20000)
	_, err := d.RecordSale(4550, MethodCash, time.Now())
	require.NoError(t, err)
	_, err = d.Close(24550, time.Now())
	require.NoError(t, err)

	// shift baru: semua counter balik ke nol apapun nilai shift sebelumnya
	require.NoError(t, d.Open(10000, time.Now()))
	assert.Equal(t, 0, d.TotalSalesCents)
	assert.Equal(t, 0, d.TotalCashCents)
	assert.Equal(t, 0, d.TotalCardCents)
	assert.Equal(t, 0, d.TxnCount)
	assert.Empty(t, d.Recent)
	assert.Equal(t, 10000, d.CurrentCents)
}

func TestDrawerShiftScenario(t *testing.T) {
	// open 200.00 -> cash sale 45.50 -> close counted 245.50 -> variance 0
	d := openDrawer(t, 20000)

	txn, err := d.RecordSale(4550, MethodCash, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "TXN001", txn.ID)
	assert.Equal(t, ActionSale, txn.Action)
	assert.Equal(t, 24550, d.CurrentCents)
	assert.Equal(t, 4550, d.TotalSalesCents)
	assert.Equal(t, 4550, d.TotalCashCents)
	assert.Equal(t, 0, d.TotalCardCents)
	assert.Equal(t, 1, d.TxnCount)

	report, err := d.Close(24550, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, report.VarianceCents)
	assert.True(t, report.Balanced)
	assert.False(t, d.IsOpen)
}

func TestDrawerRecordSaleCardSplit(t *testing.T) {
	d := openDrawer(t, 0)
	_, err := d.RecordSale(1000, MethodCard, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1000, d.TotalCardCents)
	assert.Equal(t, 0, d.TotalCashCents)
}

func TestDrawerRecordSaleGuards(t *testing.T) {
	var d Drawer
	_, err := d.RecordSale(100, MethodCash, time.Now())
	require.ErrorIs(t, err, ErrDrawerClosed)

	d2 := openDrawer(t, 0)
	_, err = d2.RecordSale(0, MethodCash, time.Now())
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = d2.RecordSale(100, PaymentMethod("Check"), time.Now())
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDrawerAdjust(t *testing.T) {
	d := openDrawer(t, 5000)

	_, err := d.Adjust(0, DirectionAdd, "change fund", time.Now())
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = d.Adjust(100, DirectionAdd, "", time.Now())
	require.ErrorIs(t, err, ErrMissingReason)

	_, err = d.Adjust(100, Direction("sideways"), "huh", time.Now())
	require.ErrorIs(t, err, ErrInvalidAmount)

	txn, err := d.Adjust(2500, DirectionAdd, "change fund", time.Now())
	require.NoError(t, err)
	assert.Equal(t, ActionAdd, txn.Action)
	assert.Equal(t, 7500, d.CurrentCents)

	txn, err = d.Adjust(500, DirectionRemove, "petty cash", time.Now())
	require.NoError(t, err)
	assert.Equal(t, ActionRemove, txn.Action)
	assert.Equal(t, "petty cash", txn.Reason)
	assert.Equal(t, 7000, d.CurrentCents)
}

func TestDrawerRemoveInsufficientFunds(t *testing.T) {
	d := openDrawer(t, 1000)
	_, err := d.Adjust(1001, DirectionRemove, "bank deposit", time.Now())
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 1000, d.CurrentCents, "saldo tidak boleh berubah")

	// tepat sebesar saldo boleh
	_, err = d.Adjust(1000, DirectionRemove, "bank deposit", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, d.CurrentCents)
}

func TestDrawerSequentialTxnIDs(t *testing.T) {
	d := openDrawer(t, 0)
	t1, _ := d.RecordSale(100, MethodCash, time.Now())
	t2, _ := d.Adjust(50, DirectionAdd, "float", time.Now())
	t3, _ := d.RecordSale(200, MethodCard, time.Now())
	assert.Equal(t, "TXN001", t1.ID)
	assert.Equal(t, "TXN002", t2.ID)
	assert.Equal(t, "TXN003", t3.ID)
}

func TestDrawerRecentBounded(t *testing.T) {
	d := openDrawer(t, 0)
	for i := 0; i < RecentLimit+2; i++ {
		_, err := d.RecordSale(100*(i+1), MethodCash, time.Now())
		require.NoError(t, err)
	}
	require.Len(t, d.Recent, RecentLimit)
	// terbaru di depan
	assert.Equal(t, "TXN007", d.Recent[0].ID)
	assert.Equal(t, "TXN003", d.Recent[RecentLimit-1].ID)
}

func TestDrawerCloseVariance(t *testing.T) {
	var d Drawer
	_, err := d.Close(0, time.Now())
	require.ErrorIs(t, err, ErrDrawerClosed)

	d2 := openDrawer(t, 20000)
	report, err := d2.Close(19850, time.Now())
	require.NoError(t, err)
	// kurang 1.50: variance negatif, tapi closing tetap sukses
	assert.Equal(t, -150, report.VarianceCents)
	assert.False(t, report.Balanced)
	assert.False(t, d2.IsOpen)
}

func TestCountCents(t *testing.T) {
	denoms := []Denomination{
		{ValueCents: 10000, Count: 2}, // $100 x2
		{ValueCents: 2000, Count: 15}, // $20 x15
		{ValueCents: 25, Count: 40},   // quarter x40
		{ValueCents: 1, Count: 50},    // penny x50
		{ValueCents: 500, Count: -3},  // count negatif diabaikan
	}
	assert.Equal(t, 20000+30000+1000+50, CountCents(denoms))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "45.50", FormatCents(4550))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "-1.50", FormatCents(-150))
	assert.Equal(t, "0.00", FormatCents(0))
}
