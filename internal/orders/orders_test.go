package orders

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shopsmart/internal/shopping"
)

func TestLoadMissingIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "orders"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := s.LoadOrders(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil orders, got %#v", got)
	}
}

func TestSaveOverwritesAndClears(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orders")
	s, _ := Open(dir)
	ctx := context.Background()

	first := []shopping.OrderRecord{{Name: "Milk", Amount: 40, ImageURL: "http://img/milk.jpg"}, {Name: "Eggs", Amount: 60}}
	if err := s.SaveOrders(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadOrders(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0] != first[0] || got[1] != first[1] {
		t.Fatalf("unexpected orders %#v", got)
	}

	if err := s.SaveOrders(ctx, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, ordersKey))
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected explicit empty list on disk, got %q", raw)
	}

	// A fresh store on the same directory sees the cleared state.
	s2, _ := Open(dir)
	got, err = s2.LoadOrders(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected cleared orders, got %#v (err %v)", got, err)
	}
}

func TestSaveTwiceSameState(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orders")
	s, _ := Open(dir)
	ctx := context.Background()
	recs := []shopping.OrderRecord{{Name: "Tea", Amount: 5}}
	_ = s.SaveOrders(ctx, recs)
	once, _ := os.ReadFile(filepath.Join(dir, ordersKey))
	_ = s.SaveOrders(ctx, recs)
	twice, _ := os.ReadFile(filepath.Join(dir, ordersKey))
	if string(once) != string(twice) {
		t.Fatalf("saving twice changed the stored bytes: %q vs %q", once, twice)
	}
}
