package spiritx

import (
	"testing"
)

func TestWireProduct_ToDomain(t *testing.T) {
	w := wireProduct{
		ID:           5,
		CategoryID:   99,
		Title:        "Blanket",
		Description:  "Soft",
		Price:        "10.50",
		ProductImage: "product/5.png",
		CreatedAt:    "2023-01-02 10:00:00",
	}

	p, err := w.toDomain()
	if err != nil {
		t.Fatalf("toDomain returned error: %v", err)
	}
	if p.ID != 5 || p.Title != "Blanket" || p.Image != "product/5.png" {
		t.Fatalf("toDomain = %#v, want wire fields carried over", p)
	}
	if p.PriceString() != "10.50" {
		t.Fatalf("PriceString = %q, want 10.50", p.PriceString())
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("CreatedAt is zero, want parsed timestamp")
	}
}

func TestWireProduct_ToDomainRejectsBadPrice(t *testing.T) {
	w := wireProduct{ID: 5, Title: "Blanket", Price: "free"}
	if _, err := w.toDomain(); err == nil {
		t.Fatal("toDomain returned nil error for malformed price, want error")
	}
}
