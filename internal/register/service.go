package register

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	kafkax "github.com/ariefcatur/go-pos-register.git/internal/kafka"
	"github.com/ariefcatur/go-pos-register.git/internal/pos"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Catalog: lookup produk yang di-inject ke register, cart tidak pernah baca
// data global.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (pos.Product, error)
	GetBySKU(ctx context.Context, sku string) (pos.Product, error)
	ListProducts(ctx context.Context, category, search string) ([]pos.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service: satu register session per proses. Satu cart aktif + satu drawer di
// belakang mutex; operasi jalan satu-satu, persis model single-session UI.
type Service struct {
	mu     sync.Mutex
	cart   pos.Cart
	drawer pos.Drawer

	Catalog        Catalog
	Log            SaleLog
	ProducerSale   Publisher
	ProducerDrawer Publisher
	ServiceName    string
	RegisterID     string
	StoreLabel     string
	CashierName    string

	// simulated latency (payment processing & barcode scan); 0 di test
	PaymentDelay time.Duration
	ScanDelay    time.Duration
}

// ---- catalog ----

func (s *Service) Products(ctx context.Context, category, search string) ([]pos.Product, error) {
	return s.Catalog.ListProducts(ctx, category, search)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.Catalog.Categories(ctx)
}

// ---- cart ----

type CartView struct {
	Lines  []pos.CartLine `json:"lines"`
	Totals pos.Totals     `json:"totals"`
}

func (s *Service) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartView{Lines: s.cart.Lines(), Totals: s.cart.Totals()}
}

func (s *Service) AddItem(ctx context.Context, productID string) (CartView, error) {
	p, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.AddLine(p); err != nil {
		return CartView{}, err
	}
	return CartView{Lines: s.cart.Lines(), Totals: s.cart.Totals()}, nil
}

// ScanItem: simulasi barcode scan; delay lalu ambil produk acak dari catalog
// dan masukin ke cart.
func (s *Service) ScanItem(ctx context.Context) (pos.Product, CartView, error) {
	if err := sleepCtx(ctx, s.ScanDelay); err != nil {
		return pos.Product{}, CartView{}, err
	}
	products, err := s.Catalog.ListProducts(ctx, "", "")
	if err != nil {
		return pos.Product{}, CartView{}, err
	}
	if len(products) == 0 {
		return pos.Product{}, CartView{}, pos.ErrProductNotFound
	}
	p := products[rand.Intn(len(products))]

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.AddLine(p); err != nil {
		return pos.Product{}, CartView{}, err
	}
	return p, CartView{Lines: s.cart.Lines(), Totals: s.cart.Totals()}, nil
}

func (s *Service) UpdateQty(ctx context.Context, productID string, delta int) (CartView, error) {
	p, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.ChangeQty(p, delta); err != nil {
		return CartView{}, err
	}
	return CartView{Lines: s.cart.Lines(), Totals: s.cart.Totals()}, nil
}

func (s *Service) RemoveItem(productID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveLine(productID)
	return CartView{Lines: s.cart.Lines(), Totals: s.cart.Totals()}
}

func (s *Service) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// ---- suspend / resume ----

func (s *Service) Suspend(ctx context.Context) (pos.SuspendedSale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("SUSP%06d", time.Now().UnixMilli()%1000000)
	sale, err := s.cart.Suspend(id, time.Now().UTC())
	if err != nil {
		return pos.SuspendedSale{}, err
	}

	list, err := s.Log.LoadSuspended(ctx)
	if err == nil {
		err = s.Log.SaveSuspended(ctx, append(list, sale))
	}
	if err != nil {
		// persist gagal -> balikin cart, state tidak berubah
		_ = s.cart.Restore(sale)
		return pos.SuspendedSale{}, err
	}
	return sale, nil
}

func (s *Service) ListSuspended(ctx context.Context) ([]pos.SuspendedSale, error) {
	return s.Log.LoadSuspended(ctx)
}

// Resume: snapshot balik jadi cart aktif, lalu dihapus dari side list.
// Ditolak kalau masih ada sale yang jalan.
func (s *Service) Resume(ctx context.Context, id string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Len() > 0 {
		return CartView{}, pos.ErrCartNotEmpty
	}
	list, err := s.Log.LoadSuspended(ctx)
	if err != nil {
		return CartView{}, err
	}
	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return CartView{}, pos.ErrSaleNotFound
	}
	sale := list[idx]
	if err := s.Log.SaveSuspended(ctx, append(list[:idx], list[idx+1:]...)); err != nil {
		return CartView{}, err
	}
	if err := s.cart.Restore(sale); err != nil {
		return CartView{}, err
	}
	return CartView{Lines: s.cart.Lines(), Totals: s.cart.Totals()}, nil
}

// ---- drawer ----

func (s *Service) Drawer() pos.Drawer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawer
}

func (s *Service) OpenDrawer(openingCents int) (pos.Drawer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.drawer.Open(openingCents, time.Now().UTC()); err != nil {
		return pos.Drawer{}, err
	}
	return s.drawer, nil
}

func (s *Service) AdjustCash(amountCents int, dir pos.Direction, reason string) (pos.Transaction, pos.Drawer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.drawer.Adjust(amountCents, dir, reason, time.Now().UTC())
	if err != nil {
		return pos.Transaction{}, pos.Drawer{}, err
	}
	return t, s.drawer, nil
}

// CloseDrawer: counted bisa dikasih langsung atau via hitungan denominasi.
func (s *Service) CloseDrawer(ctx context.Context, countedCents int, denoms []pos.Denomination) (pos.CloseReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(denoms) > 0 {
		countedCents = pos.CountCents(denoms)
	}
	report, err := s.drawer.Close(countedCents, time.Now().UTC())
	if err != nil {
		return pos.CloseReport{}, err
	}

	s.publish(s.ProducerDrawer, pos.EventDrawerClosed, s.RegisterID,
		pos.DrawerClosedPayload{RegisterID: s.RegisterID, Report: report})
	return report, nil
}

// ---- checkout ----

// Checkout: simulated delay -> record sale di drawer -> struk -> append log ->
// publish event -> clear cart. Lock dipegang selama delay: re-entrancy
// dicegah persis seperti tombol yang disabled selama processing.
func (s *Service) Checkout(ctx context.Context, method pos.PaymentMethod) (pos.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.drawer.IsOpen {
		return pos.Receipt{}, pos.ErrDrawerClosed
	}
	if s.cart.Len() == 0 {
		return pos.Receipt{}, pos.ErrEmptyCart
	}
	if err := sleepCtx(ctx, s.PaymentDelay); err != nil {
		return pos.Receipt{}, err
	}

	now := time.Now().UTC()
	totals := s.cart.Totals()
	txn, err := s.drawer.RecordSale(totals.TotalCents, method, now)
	if err != nil {
		return pos.Receipt{}, err
	}

	receipt := pos.BuildReceipt(uuid.NewString(), txn.ID, s.RegisterID, now,
		s.cart.Lines(), totals, method, s.CashierName, s.StoreLabel)

	// sale sudah tercatat di drawer; log & event adalah side effect, gagal
	// cuma di-log (hook point utk failure handling beneran)
	if err := s.Log.AppendReceipt(ctx, receipt); err != nil {
		log.Printf("append receipt %s: %v", txn.ID, err)
	}
	s.publish(s.ProducerSale, pos.EventSaleCompleted, receipt.SaleID, pos.SaleCompletedPayload{
		SaleID:        receipt.SaleID,
		TransactionID: receipt.TransactionID,
		RegisterID:    s.RegisterID,
		Items:         receipt.Items,
		SubtotalCents: receipt.SubtotalCents,
		TaxCents:      receipt.TaxCents,
		TotalCents:    receipt.TotalCents,
		Method:        method,
		Cashier:       receipt.Cashier,
		Store:         receipt.Store,
	})

	s.cart.Clear()
	return receipt, nil
}

func (s *Service) Receipt(ctx context.Context, txnID string) (pos.Receipt, error) {
	return s.Log.GetReceipt(ctx, txnID)
}

func (s *Service) publish(p Publisher, eventType, correlationID string, payload any) {
	if p == nil {
		return
	}
	ev := pos.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: correlationID,
	}
	ev.Payload = kafkax.MustMarshal(payload)
	p.Publish(pos.PartitionKey(s.RegisterID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
