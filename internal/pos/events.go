package pos

import (
	"encoding/json"
	"time"
)

const (
	EventSaleCompleted = "SaleCompleted"
	EventDrawerClosed  = "DrawerClosed"
	EventStockLow      = "StockLow"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "pos-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya sale_id / register_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload per event ----

type SaleCompletedPayload struct {
	SaleID        string        `json:"sale_id"`
	TransactionID string        `json:"transaction_id"`
	RegisterID    string        `json:"register_id"`
	Items         []CartLine    `json:"items"`
	SubtotalCents int           `json:"subtotal_cents"`
	TaxCents      int           `json:"tax_cents"`
	TotalCents    int           `json:"total_cents"`
	Method        PaymentMethod `json:"payment_method"`
	Cashier       string        `json:"cashier"`
	Store         string        `json:"store"`
}

type DrawerClosedPayload struct {
	RegisterID string      `json:"register_id"`
	Report     CloseReport `json:"report"`
}

type StockLowPayload struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}
