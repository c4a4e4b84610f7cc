package pos

const (
	TopicSaleCompleted = "pos.sale.completed"
	TopicDrawerClosed  = "pos.drawer.closed"
	TopicStockLow      = "pos.stock.low"
)

// Partition key = register_id, supaya event satu register maintain urutan.
func PartitionKey(registerID string) []byte { return []byte(registerID) }
