package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ariefcatur/go-pos-register.git/internal/pos"
	"github.com/ariefcatur/go-pos-register.git/internal/register"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct{ products []pos.Product }

func (s *stubCatalog) GetProduct(_ context.Context, id string) (pos.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return pos.Product{}, pos.ErrProductNotFound
}

func (s *stubCatalog) GetBySKU(_ context.Context, sku string) (pos.Product, error) {
	for _, p := range s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return pos.Product{}, pos.ErrProductNotFound
}

func (s *stubCatalog) ListProducts(_ context.Context, _, _ string) ([]pos.Product, error) {
	return s.products, nil
}

func (s *stubCatalog) Categories(_ context.Context) ([]string, error) {
	return []string{"All", "Fruits"}, nil
}

type stubLog struct {
	receipts  map[string]pos.Receipt
	suspended []pos.SuspendedSale
}

func (s *stubLog) AppendReceipt(_ context.Context, r pos.Receipt) error {
	if s.receipts == nil {
		s.receipts = map[string]pos.Receipt{}
	}
	s.receipts[r.TransactionID] = r
	return nil
}

func (s *stubLog) GetReceipt(_ context.Context, txnID string) (pos.Receipt, error) {
	r, ok := s.receipts[txnID]
	if !ok {
		return pos.Receipt{}, pos.ErrSaleNotFound
	}
	return r, nil
}

func (s *stubLog) SaveSuspended(_ context.Context, sales []pos.SuspendedSale) error {
	s.suspended = append([]pos.SuspendedSale(nil), sales...)
	return nil
}

func (s *stubLog) LoadSuspended(_ context.Context) ([]pos.SuspendedSale, error) {
	return append([]pos.SuspendedSale(nil), s.suspended...), nil
}

func newTestRouter() *chi.Mux {
	svc := &register.Service{
		Catalog: &stubCatalog{products: []pos.Product{
			{ID: "1", SKU: "SKU-0001", Name: "Banana", Category: "Fruits", PriceCents: 75, Stock: 50},
			{ID: "5", SKU: "SKU-0005", Name: "Milk", Category: "Dairy", PriceCents: 350, Stock: 20},
		}},
		Log:         &stubLog{},
		ServiceName: "pos-api-test",
		RegisterID:  "REG-001",
		StoreLabel:  "MANPASAND Store #001",
		CashierName: "Admin User",
	}
	h := &RegisterHandler{Svc: svc}
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doReq(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListProducts(t *testing.T) {
	r := newTestRouter()
	rec := doReq(t, r, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ps []pos.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ps))
	assert.Len(t, ps, 2)
}

func TestAddItemUnknownProduct(t *testing.T) {
	r := newTestRouter()
	rec := doReq(t, r, http.MethodPost, "/cart/items", `{"product_id":"no-such"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItemMissingBody(t *testing.T) {
	r := newTestRouter()
	rec := doReq(t, r, http.MethodPost, "/cart/items", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutConflicts(t *testing.T) {
	r := newTestRouter()

	// drawer masih closed
	rec := doReq(t, r, http.MethodPost, "/checkout", `{"payment_method":"Cash"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doReq(t, r, http.MethodPost, "/drawer/open", `{"opening_cents":20000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// cart kosong
	rec = doReq(t, r, http.MethodPost, "/checkout", `{"payment_method":"Cash"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// method aneh
	rec = doReq(t, r, http.MethodPost, "/checkout", `{"payment_method":"Barter"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHappyCheckoutAndReceipt(t *testing.T) {
	r := newTestRouter()

	rec := doReq(t, r, http.MethodPost, "/drawer/open", `{"opening_cents":20000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doReq(t, r, http.MethodPost, "/cart/items", `{"product_id":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doReq(t, r, http.MethodPost, "/cart/items", `{"product_id":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doReq(t, r, http.MethodPost, "/cart/items", `{"product_id":"5"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doReq(t, r, http.MethodPost, "/checkout", `{"payment_method":"Cash"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var receipt pos.Receipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, "TXN001", receipt.TransactionID)
	assert.Equal(t, 540, receipt.TotalCents)

	rec = doReq(t, r, http.MethodGet, "/receipts/TXN001", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doReq(t, r, http.MethodGet, "/receipts/TXN001?format=text", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOTAL: $5.40")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "receipt-TXN001.txt")

	rec = doReq(t, r, http.MethodGet, "/receipts/TXN999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDrawerEndpoints(t *testing.T) {
	r := newTestRouter()

	rec := doReq(t, r, http.MethodPost, "/drawer/cash", `{"amount_cents":100,"direction":"add","reason":"x"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "adjust sebelum open harus 409")

	rec = doReq(t, r, http.MethodPost, "/drawer/open", `{"opening_cents":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doReq(t, r, http.MethodPost, "/drawer/open", `{"opening_cents":5000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doReq(t, r, http.MethodPost, "/drawer/cash", `{"amount_cents":100,"direction":"sideways","reason":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doReq(t, r, http.MethodPost, "/drawer/close", `{"counted_cents":5000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var report pos.CloseReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Balanced)
}
