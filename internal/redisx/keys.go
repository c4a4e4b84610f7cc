package redisx

import "time"

const (
	// Session token login: auth:token:{token} -> email
	KeyAuthToken = "auth:token:%s"

	// Struk per transaksi utk GET /receipts/{txn_id}: receipt:{txn_id} -> Receipt JSON
	KeyReceipt = "receipt:%s"

	// Append-only log struk checkout (RPUSH): list JSON Receipt
	ListTransactions = "transactions"

	// Sale yang diparkir: list JSON SuspendedSale
	ListSuspended = "suspendedSales"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLAuthToken = 24 * time.Hour
	TTLReceipt   = 24 * time.Hour
	TTLDedup     = 48 * time.Hour
)
