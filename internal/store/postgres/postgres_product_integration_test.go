package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"catalogadmin/backend/internal/domain"
	"catalogadmin/backend/internal/store"
)

func TestProductLifecycle(t *testing.T) {
	databaseURL := os.Getenv("CATALOGADMIN_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set CATALOGADMIN_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	stamp := time.Now().UnixNano()
	categoryID := fmt.Sprintf("cat-it-%d", stamp)
	productID := fmt.Sprintf("prod-it-%d", stamp)

	t.Cleanup(func() {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	})

	if _, err := s.CreateCategory(ctx, domain.Category{
		ID:   categoryID,
		Name: fmt.Sprintf("Apparel IT %d", stamp),
	}); err != nil {
		t.Fatalf("create category: %v", err)
	}

	created, err := s.CreateProduct(ctx, domain.Product{
		ID:           productID,
		Name:         "Crew Neck Tee",
		SKU:          fmt.Sprintf("SKU-IT-%d", stamp),
		UnitPrice:    40,
		SellingPrice: 100,
		CategoryID:   categoryID,
		Stock:        7,
		Variants: []domain.ProductVariant{
			{Color: "red", Size: "M", Quantity: 3},
			{Color: "blue", Size: "L", Quantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	got, err := s.GetProductByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if len(got.Variants) != 2 {
		t.Fatalf("expected 2 variants after round trip, got %d", len(got.Variants))
	}
	if got.Variants[0].Color != "red" || got.Variants[0].Quantity != 3 {
		t.Fatalf("unexpected first variant %+v", got.Variants[0])
	}

	if err := s.DeleteCategory(ctx, categoryID); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict deleting referenced category, got %v", err)
	}

	if err := s.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := s.DeleteCategory(ctx, categoryID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if _, err := s.GetProductByID(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
