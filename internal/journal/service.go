package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	kafkax "github.com/ariefcatur/go-pos-register.git/internal/kafka"
	"github.com/ariefcatur/go-pos-register.git/internal/pos"
	"github.com/ariefcatur/go-pos-register.git/internal/redisx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Service: sisi consumer dari checkout. Catat sale ke journal Postgres,
// kurangi stok, dan kabarin kalau ada produk yang menipis.
type Service struct {
	Repo        *pos.JournalRepo
	Redis       *redis.Client
	ProducerLow *kafkax.Producer // publish pos.stock.low
	ServiceName string
}

// HandleSaleCompleted dipasang sebagai handler consumer pos.sale.completed.
func (s *Service) HandleSaleCompleted(ctx context.Context, m kafkago.Message) error {
	var env pos.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != pos.EventSaleCompleted {
		return nil // ignore
	}

	// dedup via Redis (pakai event_id); delivery at-least-once
	dkey := fmt.Sprintf(redisx.KeyDedup, "journal", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[pos.SaleCompletedPayload](env.Payload)
	if err != nil {
		return err
	}

	existed, err := s.Repo.InsertSale(ctx, p, env.OccurredAt.Unix())
	if err != nil {
		return err
	}
	if existed {
		// journal sudah punya sale ini, stok pasti sudah dikurangi
		return nil
	}

	low, err := s.Repo.DeductStock(ctx, p.Items)
	if err != nil {
		return err
	}
	for _, prod := range low {
		s.publishStockLow(prod, env.TraceID)
	}
	log.Printf("journaled sale %s (%s) total=%s items=%d", p.SaleID, p.TransactionID,
		pos.FormatCents(p.TotalCents), len(p.Items))
	return nil
}

func (s *Service) publishStockLow(p pos.Product, trace string) {
	if s.ProducerLow == nil {
		return
	}
	ev := pos.Envelope{
		EventID:       uuid.NewString(),
		EventType:     pos.EventStockLow,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: p.ID,
		Payload: kafkax.MustMarshal(pos.StockLowPayload{
			ProductID: p.ID, SKU: p.SKU, Name: p.Name, Stock: p.Stock,
		}),
	}
	s.ProducerLow.Publish(pos.PartitionKey(p.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(pos.EventStockLow)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
