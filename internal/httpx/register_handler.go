package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-pos-register.git/internal/pos"
	"github.com/ariefcatur/go-pos-register.git/internal/register"
	"github.com/go-chi/chi/v5"
)

// RegisterHandler: API register POS (catalog, cart, drawer, checkout).
// Semua route di sini di belakang RequireAuth.
type RegisterHandler struct {
	Svc *register.Service
}

func (h *RegisterHandler) Register(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/categories", h.listCategories)

	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addItem)
	r.Post("/cart/scan", h.scanItem)
	r.Patch("/cart/items/{productID}", h.updateQty)
	r.Delete("/cart/items/{productID}", h.removeItem)
	r.Delete("/cart", h.clearCart)
	r.Post("/cart/suspend", h.suspend)

	r.Get("/sales/suspended", h.listSuspended)
	r.Post("/sales/suspended/{id}/resume", h.resume)

	r.Post("/checkout", h.checkout)
	r.Get("/receipts/{txnID}", h.getReceipt)

	r.Get("/drawer", h.getDrawer)
	r.Post("/drawer/open", h.openDrawer)
	r.Post("/drawer/cash", h.adjustCash)
	r.Post("/drawer/close", h.closeDrawer)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Mapping error domain -> status. Semua recoverable: operasi ditolak, state
// tidak berubah, client tinggal tampilkan warning.
func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, pos.ErrInvalidAmount),
		errors.Is(err, pos.ErrMissingReason):
		code = http.StatusBadRequest
	case errors.Is(err, pos.ErrProductNotFound),
		errors.Is(err, pos.ErrSaleNotFound):
		code = http.StatusNotFound
	case errors.Is(err, pos.ErrInsufficientStock),
		errors.Is(err, pos.ErrInsufficientFunds),
		errors.Is(err, pos.ErrEmptyCart),
		errors.Is(err, pos.ErrCartNotEmpty),
		errors.Is(err, pos.ErrDrawerClosed),
		errors.Is(err, pos.ErrDrawerOpen):
		code = http.StatusConflict
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// ---- catalog ----

func (h *RegisterHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ps, err := h.Svc.Products(r.Context(), q.Get("category"), q.Get("search"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if ps == nil {
		ps = []pos.Product{}
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *RegisterHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Svc.Categories(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// ---- cart ----

func (h *RegisterHandler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Svc.Cart())
}

type addItemReq struct {
	ProductID string `json:"product_id"`
}

func (h *RegisterHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := decodeJSON(r, &req); err != nil || req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing product_id"})
		return
	}
	view, err := h.Svc.AddItem(r.Context(), req.ProductID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type scanResp struct {
	Product pos.Product       `json:"product"`
	Cart    register.CartView `json:"cart"`
}

func (h *RegisterHandler) scanItem(w http.ResponseWriter, r *http.Request) {
	p, view, err := h.Svc.ScanItem(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scanResp{Product: p, Cart: view})
}

type updateQtyReq struct {
	Delta int `json:"delta"`
}

func (h *RegisterHandler) updateQty(w http.ResponseWriter, r *http.Request) {
	var req updateQtyReq
	if err := decodeJSON(r, &req); err != nil || req.Delta == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing delta"})
		return
	}
	view, err := h.Svc.UpdateQty(r.Context(), chi.URLParam(r, "productID"), req.Delta)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *RegisterHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Svc.RemoveItem(chi.URLParam(r, "productID")))
}

func (h *RegisterHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Svc.ClearCart()
	writeJSON(w, http.StatusOK, h.Svc.Cart())
}

// ---- suspend / resume ----

func (h *RegisterHandler) suspend(w http.ResponseWriter, r *http.Request) {
	sale, err := h.Svc.Suspend(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (h *RegisterHandler) listSuspended(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Svc.ListSuspended(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	if sales == nil {
		sales = []pos.SuspendedSale{}
	}
	writeJSON(w, http.StatusOK, sales)
}

func (h *RegisterHandler) resume(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.Resume(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ---- checkout / receipts ----

type checkoutReq struct {
	Method string `json:"payment_method"`
}

func (h *RegisterHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	method := pos.PaymentMethod(req.Method)
	if !method.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payment_method must be Cash or Card"})
		return
	}
	receipt, err := h.Svc.Checkout(r.Context(), method)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// getReceipt: default JSON; ?format=text utk download, ?format=html utk print.
func (h *RegisterHandler) getReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.Svc.Receipt(r.Context(), chi.URLParam(r, "txnID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	switch r.URL.Query().Get("format") {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+receipt.TransactionID+".txt")
		_, _ = w.Write([]byte(receipt.RenderText()))
	case "html":
		html, err := receipt.RenderHTML()
		if err != nil {
			writeErr(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	default:
		writeJSON(w, http.StatusOK, receipt)
	}
}

// ---- drawer ----

func (h *RegisterHandler) getDrawer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Svc.Drawer())
}

type openDrawerReq struct {
	OpeningCents int `json:"opening_cents"`
}

func (h *RegisterHandler) openDrawer(w http.ResponseWriter, r *http.Request) {
	var req openDrawerReq
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	d, err := h.Svc.OpenDrawer(req.OpeningCents)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type adjustCashReq struct {
	AmountCents int    `json:"amount_cents"`
	Direction   string `json:"direction"` // add | remove
	Reason      string `json:"reason"`
}

type adjustCashResp struct {
	Transaction pos.Transaction `json:"transaction"`
	Drawer      pos.Drawer      `json:"drawer"`
}

func (h *RegisterHandler) adjustCash(w http.ResponseWriter, r *http.Request) {
	var req adjustCashReq
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	dir := pos.Direction(req.Direction)
	if dir != pos.DirectionAdd && dir != pos.DirectionRemove {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "direction must be add or remove"})
		return
	}
	t, d, err := h.Svc.AdjustCash(req.AmountCents, dir, req.Reason)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adjustCashResp{Transaction: t, Drawer: d})
}

type closeDrawerReq struct {
	CountedCents  int                `json:"counted_cents"`
	Denominations []pos.Denomination `json:"denominations,omitempty"`
}

func (h *RegisterHandler) closeDrawer(w http.ResponseWriter, r *http.Request) {
	var req closeDrawerReq
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	report, err := h.Svc.CloseDrawer(r.Context(), req.CountedCents, req.Denominations)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
