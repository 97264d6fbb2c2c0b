package storage

import (
	"context"
	"sync"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
)

// MemoryStore holds the catalog and written orders in memory. Used with
// USE_MEMORY_STORE=true and as the backend double in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	products []models.Product
	faq      []models.FaqEntry
	headers  []models.Order
	details  []models.OrderItem
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SeedProducts replaces the product table.
func (m *MemoryStore) SeedProducts(products []models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
}

// SeedFaq replaces the FAQ table.
func (m *MemoryStore) SeedFaq(entries []models.FaqEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faq = entries
}

func (m *MemoryStore) Products(ctx context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]models.Product, len(m.products))
	copy(products, m.products)
	return products, nil
}

func (m *MemoryStore) FaqEntries(ctx context.Context) ([]models.FaqEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]models.FaqEntry, len(m.faq))
	copy(entries, m.faq)
	return entries, nil
}

func (m *MemoryStore) AddOrderHeader(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	header := *order
	header.Items = nil
	m.headers = append(m.headers, header)
	return nil
}

func (m *MemoryStore) AddOrderDetails(ctx context.Context, items []models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.details = append(m.details, items...)
	return nil
}

// OrderHeaders returns the header rows written so far.
func (m *MemoryStore) OrderHeaders() []models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()

	headers := make([]models.Order, len(m.headers))
	copy(headers, m.headers)
	return headers
}

// OrderDetails returns the detail rows written so far.
func (m *MemoryStore) OrderDetails() []models.OrderItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	details := make([]models.OrderItem, len(m.details))
	copy(details, m.details)
	return details
}
