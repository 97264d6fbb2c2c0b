package services

import (
	"context"
	"testing"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
	"github.com/johnper68/whatsapp-order-bot/internal/storage"
)

func buildOrder() *models.Order {
	order := models.NewOrder()
	order.Customer = "Juan Pérez"
	order.Address = "Calle 1"
	order.Phone = "3001234567"
	order.AddItem(models.Product{Name: "Jabón Azul", UnitValue: 5000}, 2)
	order.AddItem(models.Product{Name: "Café Molido 500g", UnitValue: 12000}, 1)
	return order
}

func TestSaveOrderWritesHeaderThenDetails(t *testing.T) {
	store := storage.NewMemoryStore()
	writer := NewOrderWriter(store)
	order := buildOrder()

	if !writer.SaveOrder(context.Background(), order) {
		t.Fatal("SaveOrder should succeed")
	}

	headers := store.OrderHeaders()
	if len(headers) != 1 {
		t.Fatalf("header rows = %d, want 1", len(headers))
	}
	if headers[0].OrderID != order.OrderID || headers[0].Total != 22000 {
		t.Errorf("unexpected header: %+v", headers[0])
	}

	details := store.OrderDetails()
	if len(details) != 2 {
		t.Fatalf("detail rows = %d, want 2", len(details))
	}
	for _, item := range details {
		if item.OrderID != order.OrderID {
			t.Errorf("detail row has order id %q, want %q", item.OrderID, order.OrderID)
		}
	}
}

func TestSaveOrderHeaderFailure(t *testing.T) {
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), failHeader: true}
	writer := NewOrderWriter(store)

	if writer.SaveOrder(context.Background(), buildOrder()) {
		t.Fatal("SaveOrder should fail when the header write fails")
	}
	if len(store.OrderDetails()) != 0 {
		t.Error("no detail rows should be written after a header failure")
	}
}

func TestSaveOrderDetailFailureLeavesHeader(t *testing.T) {
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), failDetails: true}
	writer := NewOrderWriter(store)

	if writer.SaveOrder(context.Background(), buildOrder()) {
		t.Fatal("SaveOrder should fail when the detail write fails")
	}
	if len(store.OrderHeaders()) != 1 {
		t.Error("the already-written header row stays behind")
	}
}
