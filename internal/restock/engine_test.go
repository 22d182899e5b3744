package restock

import (
	"testing"
	"time"

	"catalogadmin/backend/internal/domain"
)

func TestSuggestRanksByUrgency(t *testing.T) {
	engine := NewEngine(0)

	products := []domain.Product{
		{ID: "p-out", Name: "Out Of Stock Tee", Stock: 0, ReorderLevel: 10, Active: true},
		{ID: "p-low", Name: "Low Stock Jeans", Stock: 4, ReorderLevel: 10, Active: true},
		{ID: "p-ok", Name: "Healthy Sneaker", Stock: 30, ReorderLevel: 10, Active: true},
		{ID: "p-inactive", Name: "Retired Belt", Stock: 0, ReorderLevel: 10, Active: false},
		{ID: "p-untracked", Name: "No Reorder Level", Stock: 0, ReorderLevel: 0, Active: true},
	}
	orders := []domain.Order{
		{
			Status:    domain.OrderDelivered,
			OrderDate: time.Now().Add(-24 * time.Hour),
			Items: []domain.OrderItem{
				{ProductID: "p-low", Quantity: 6},
			},
		},
		{
			Status:    domain.OrderCancelled,
			OrderDate: time.Now().Add(-24 * time.Hour),
			Items: []domain.OrderItem{
				{ProductID: "p-low", Quantity: 50},
			},
		},
	}

	suggestions := engine.Suggest(products, orders)
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %+v", len(suggestions), suggestions)
	}
	if suggestions[0].ProductID != "p-out" {
		t.Fatalf("expected out-of-stock product first, got %s", suggestions[0].ProductID)
	}
	if suggestions[0].SuggestedQuantity != 10 {
		t.Fatalf("expected suggested quantity 10, got %d", suggestions[0].SuggestedQuantity)
	}

	low := suggestions[1]
	if low.ProductID != "p-low" {
		t.Fatalf("expected low-stock product second, got %s", low.ProductID)
	}
	if low.SoldRecently != 6 {
		t.Fatalf("cancelled orders must not count, got sold %d", low.SoldRecently)
	}
	if low.SuggestedQuantity != 12 {
		t.Fatalf("expected deficit 6 plus sold 6, got %d", low.SuggestedQuantity)
	}
}

func TestSuggestEmptyWhenStockHealthy(t *testing.T) {
	engine := NewEngine(0)

	suggestions := engine.Suggest([]domain.Product{
		{ID: "p-ok", Name: "Healthy", Stock: 50, ReorderLevel: 10, Active: true},
	}, nil)
	if len(suggestions) != 0 {
		t.Fatalf("expected no suggestions, got %+v", suggestions)
	}
}
