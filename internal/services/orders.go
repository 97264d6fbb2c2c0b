package services

import (
	"context"
	"log"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
	"github.com/johnper68/whatsapp-order-bot/internal/storage"
)

// OrderWriter persists a finalized order as two sequential backend writes:
// the header row first, then the detail rows. There is no transaction
// across the two tables and no retry; if the detail write fails the header
// row stays behind.
type OrderWriter struct {
	store storage.Store
}

// NewOrderWriter creates an order writer over the given backend.
func NewOrderWriter(store storage.Store) *OrderWriter {
	return &OrderWriter{store: store}
}

// SaveOrder writes the order and reports success. Failures are logged and
// surface only as false, the conversation layer never sees the error.
func (w *OrderWriter) SaveOrder(ctx context.Context, order *models.Order) bool {
	if err := w.store.AddOrderHeader(ctx, order); err != nil {
		log.Printf("❌ Failed to save order header %s: %v", order.OrderID, err)
		return false
	}

	if err := w.store.AddOrderDetails(ctx, order.Items); err != nil {
		// The header row is already persisted at this point. It is left
		// in place, there is no compensation write.
		log.Printf("❌ Failed to save order details %s: %v", order.OrderID, err)
		return false
	}

	log.Printf("✅ Order %s saved (%d items, total $%s)", order.OrderID, len(order.Items), formatMoney(order.Total))
	return true
}
