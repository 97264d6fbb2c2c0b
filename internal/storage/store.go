package storage

import (
	"context"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
)

// Store defines the row-store backend operations the bot needs: reading
// the product and FAQ tables and appending order rows. Implementations are
// the AppSheet HTTP API, a PostgreSQL database with the same tables, and
// an in-memory store for development and tests.
type Store interface {
	// Products returns every row of the product table. Filtering happens
	// client-side, the backend has no server-side search.
	Products(ctx context.Context) ([]models.Product, error)

	// FaqEntries returns every row of the FAQ table.
	FaqEntries(ctx context.Context) ([]models.FaqEntry, error)

	// AddOrderHeader appends the order header row.
	AddOrderHeader(ctx context.Context, order *models.Order) error

	// AddOrderDetails appends one row per order item. A header written by
	// a previous call is not removed when this fails.
	AddOrderDetails(ctx context.Context, items []models.OrderItem) error
}
