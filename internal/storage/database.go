package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
)

// DatabaseStore serves the same tables as the AppSheet backend from a
// PostgreSQL database, for deployments that own their data.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := d.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (d *DatabaseStore) FaqEntries(ctx context.Context) ([]models.FaqEntry, error) {
	var entries []models.FaqEntry
	if err := d.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *DatabaseStore) AddOrderHeader(ctx context.Context, order *models.Order) error {
	return d.db.WithContext(ctx).Create(order).Error
}

func (d *DatabaseStore) AddOrderDetails(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return d.db.WithContext(ctx).Create(&items).Error
}
