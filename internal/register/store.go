package register

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ariefcatur/go-pos-register.git/internal/pos"
	"github.com/ariefcatur/go-pos-register.git/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// SaleLog: persisted state register (layout key-value): list "transactions"
// append-only utk struk, list "suspendedSales" utk sale yang diparkir.
type SaleLog interface {
	AppendReceipt(ctx context.Context, r pos.Receipt) error
	GetReceipt(ctx context.Context, txnID string) (pos.Receipt, error)
	SaveSuspended(ctx context.Context, sales []pos.SuspendedSale) error
	LoadSuspended(ctx context.Context) ([]pos.SuspendedSale, error)
}

type RedisStore struct{ RDB *redis.Client }

func (s *RedisStore) AppendReceipt(ctx context.Context, r pos.Receipt) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := s.RDB.RPush(ctx, redisx.ListTransactions, b).Err(); err != nil {
		return err
	}
	// lookup cepat utk GET /receipts/{txn_id}; id TXNnnn berulang per shift,
	// key ini selalu nunjuk struk terbaru
	key := fmt.Sprintf(redisx.KeyReceipt, r.TransactionID)
	return s.RDB.Set(ctx, key, b, redisx.TTLReceipt).Err()
}

func (s *RedisStore) GetReceipt(ctx context.Context, txnID string) (pos.Receipt, error) {
	key := fmt.Sprintf(redisx.KeyReceipt, txnID)
	b, err := s.RDB.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return pos.Receipt{}, pos.ErrSaleNotFound
	}
	if err != nil {
		return pos.Receipt{}, err
	}
	var r pos.Receipt
	if err := json.Unmarshal(b, &r); err != nil {
		return pos.Receipt{}, err
	}
	return r, nil
}

// SaveSuspended nulis ulang seluruh list (snapshot kecil, max beberapa sale).
func (s *RedisStore) SaveSuspended(ctx context.Context, sales []pos.SuspendedSale) error {
	pipe := s.RDB.TxPipeline()
	pipe.Del(ctx, redisx.ListSuspended)
	for _, sale := range sales {
		b, err := json.Marshal(sale)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, redisx.ListSuspended, b)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) LoadSuspended(ctx context.Context) ([]pos.SuspendedSale, error) {
	vals, err := s.RDB.LRange(ctx, redisx.ListSuspended, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]pos.SuspendedSale, 0, len(vals))
	for _, v := range vals {
		var sale pos.SuspendedSale
		if err := json.Unmarshal([]byte(v), &sale); err != nil {
			return nil, err
		}
		out = append(out, sale)
	}
	return out, nil
}
