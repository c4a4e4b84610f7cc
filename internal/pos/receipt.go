package pos

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Receipt: record checkout final. SaleID (uuid) dipakai journal sebagai kunci
// idempotency, TransactionID (TXNnnn) yang tampil ke customer.
type Receipt struct {
	SaleID        string        `json:"sale_id"`
	TransactionID string        `json:"transaction_id"`
	RegisterID    string        `json:"register_id"`
	Timestamp     time.Time     `json:"timestamp"`
	Items         []CartLine    `json:"items"`
	SubtotalCents int           `json:"subtotal_cents"`
	TaxCents      int           `json:"tax_cents"`
	TotalCents    int           `json:"total_cents"`
	Method        PaymentMethod `json:"payment_method"`
	Cashier       string        `json:"cashier"`
	Store         string        `json:"store"`
}

func BuildReceipt(saleID, txnID, registerID string, now time.Time, lines []CartLine, t Totals, method PaymentMethod, cashier, store string) Receipt {
	items := make([]CartLine, len(lines))
	copy(items, lines)
	return Receipt{
		SaleID:        saleID,
		TransactionID: txnID,
		RegisterID:    registerID,
		Timestamp:     now,
		Items:         items,
		SubtotalCents: t.SubtotalCents,
		TaxCents:      t.TaxCents,
		TotalCents:    t.TotalCents,
		Method:        method,
		Cashier:       cashier,
		Store:         store,
	}
}

// RenderText: struk plain text siap download/print thermal.
func (r Receipt) RenderText() string {
	var b strings.Builder
	b.WriteString("MANPASAND POS SYSTEM\n")
	b.WriteString(r.Store + "\n")
	b.WriteString("================================\n\n")
	fmt.Fprintf(&b, "Transaction ID: %s\n", r.TransactionID)
	fmt.Fprintf(&b, "Date: %s\n", r.Timestamp.Format("02 Jan 2006 15:04:05"))
	fmt.Fprintf(&b, "Cashier: %s\n\n", r.Cashier)
	b.WriteString("ITEMS:\n")
	for _, it := range r.Items {
		fmt.Fprintf(&b, "%s x%d @ $%s = $%s\n",
			it.Name, it.Qty, FormatCents(it.PriceCents), FormatCents(it.LineTotalCents()))
	}
	b.WriteString("\n--------------------------------\n")
	fmt.Fprintf(&b, "Subtotal: $%s\n", FormatCents(r.SubtotalCents))
	fmt.Fprintf(&b, "Tax (8%%): $%s\n", FormatCents(r.TaxCents))
	fmt.Fprintf(&b, "TOTAL: $%s\n\n", FormatCents(r.TotalCents))
	fmt.Fprintf(&b, "Payment Method: %s\n\n", r.Method)
	b.WriteString("Thank you for shopping with us!\n")
	b.WriteString("================================\n")
	return b.String()
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": func(c int) string { return FormatCents(c) },
	"line":  func(l CartLine) string { return FormatCents(l.LineTotalCents()) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt {{.TransactionID}}</title>
<style>
body { font-family: monospace; width: 320px; margin: 0 auto; }
table { width: 100%; }
td.amt { text-align: right; }
hr { border: none; border-top: 1px dashed #000; }
.center { text-align: center; }
</style>
</head>
<body onload="window.print()">
<div class="center">
<h3>MANPASAND POS SYSTEM</h3>
<p>{{.Store}}</p>
</div>
<hr>
<p>Transaction ID: {{.TransactionID}}<br>
Date: {{.Timestamp.Format "02 Jan 2006 15:04:05"}}<br>
Cashier: {{.Cashier}}</p>
<table>
{{range .Items}}<tr><td>{{.Name}} x{{.Qty}} @ ${{money .PriceCents}}</td><td class="amt">${{line .}}</td></tr>
{{end}}</table>
<hr>
<table>
<tr><td>Subtotal</td><td class="amt">${{money .SubtotalCents}}</td></tr>
<tr><td>Tax (8%)</td><td class="amt">${{money .TaxCents}}</td></tr>
<tr><td><b>TOTAL</b></td><td class="amt"><b>${{money .TotalCents}}</b></td></tr>
</table>
<p>Payment Method: {{.Method}}</p>
<hr>
<p class="center">Thank you for shopping with us!</p>
</body>
</html>
`))

// RenderHTML: varian printable, dibuka di window baru oleh client.
func (r Receipt) RenderHTML() (string, error) {
	var b strings.Builder
	if err := receiptTmpl.Execute(&b, r); err != nil {
		return "", err
	}
	return b.String(), nil
}
