package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func product(id int64, title string) Product {
	return Product{ID: id, Title: title, Price: decimal.NewFromInt(id * 10)}
}

func TestStore_LoadReplacesCollection(t *testing.T) {
	s := NewStore()
	s.Load([]Product{product(1, "Blanket"), product(2, "Pillow")})
	s.Load([]Product{product(3, "Mug")})

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after reload", s.Len())
	}
	if _, ok := s.Get(1); ok {
		t.Fatal("Get(1) ok = true after reload, want false")
	}
	if p, ok := s.Get(3); !ok || p.Title != "Mug" {
		t.Fatalf("Get(3) = %#v %v, want Mug", p, ok)
	}
}

func TestStore_UpsertInsertsAndOverwrites(t *testing.T) {
	s := NewStore()
	s.Upsert(product(1, "Blanket"))
	s.Upsert(Product{ID: 1, Title: "Blanket Deluxe", Price: decimal.NewFromInt(15)})

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	p, ok := s.Get(1)
	if !ok || p.Title != "Blanket Deluxe" {
		t.Fatalf("Get(1) = %#v, want overwritten record", p)
	}
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.Upsert(product(1, "Blanket"))
	s.Remove(42)
	s.Remove(1)
	s.Remove(1)

	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestStore_AddRemoveAddRoundTrip(t *testing.T) {
	p := product(2, "Pillow")

	s := NewStore()
	s.Load([]Product{product(1, "Blanket")})
	s.Upsert(p)
	s.Remove(p.ID)
	s.Upsert(p)

	want := NewStore()
	want.Load([]Product{product(1, "Blanket")})
	want.Upsert(p)

	got, expect := s.Products(), want.Products()
	if len(got) != len(expect) {
		t.Fatalf("Products len = %d, want %d", len(got), len(expect))
	}
	for i := range got {
		if got[i].ID != expect[i].ID || got[i].Title != expect[i].Title {
			t.Fatalf("Products[%d] = %#v, want %#v", i, got[i], expect[i])
		}
	}
}

func TestStore_ProductsOrderedAndCopied(t *testing.T) {
	s := NewStore()
	s.Load([]Product{product(3, "c"), product(1, "a"), product(2, "b")})

	list := s.Products()
	if len(list) != 3 || list[0].ID != 1 || list[1].ID != 2 || list[2].ID != 3 {
		t.Fatalf("Products = %#v, want ascending IDs", list)
	}

	// Mutating the returned slice must not touch the store.
	list[0].Title = "mutated"
	if p, _ := s.Get(1); p.Title != "a" {
		t.Fatalf("store record mutated through snapshot: %#v", p)
	}
}
