package pos

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt(t *testing.T) Receipt {
	t.Helper()
	var c Cart
	require.NoError(t, c.AddLine(banana))
	require.NoError(t, c.AddLine(banana))
	require.NoError(t, c.AddLine(milk))

	ts := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	return BuildReceipt("f3c1e9aa-0000-0000-0000-000000000001", "TXN001", "REG-001",
		ts, c.Lines(), c.Totals(), MethodCash, "Admin User", "MANPASAND Store #001")
}

func TestReceiptRenderText(t *testing.T) {
	text := sampleReceipt(t).RenderText()

	for _, want := range []string{
		"MANPASAND POS SYSTEM",
		"MANPASAND Store #001",
		"Transaction ID: TXN001",
		"Cashier: Admin User",
		"Banana x2 @ $0.75 = $1.50",
		"Milk x1 @ $3.50 = $3.50",
		"Subtotal: $5.00",
		"Tax (8%): $0.40",
		"TOTAL: $5.40",
		"Payment Method: Cash",
		"Thank you for shopping with us!",
	} {
		assert.Contains(t, text, want)
	}
}

func TestReceiptRenderHTML(t *testing.T) {
	html, err := sampleReceipt(t).RenderHTML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "TXN001")
	assert.Contains(t, html, "$5.40")
	assert.Contains(t, html, "Banana")
}

func TestBuildReceiptCopiesLines(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddLine(banana))
	r := BuildReceipt("id", "TXN001", "REG-001", time.Now(), c.Lines(), c.Totals(),
		MethodCard, "Admin User", "Store")

	c.Clear()
	require.Len(t, r.Items, 1, "struk tidak boleh ikut berubah setelah cart di-clear")
}
