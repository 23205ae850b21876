package spiritx

import (
	"time"

	"github.com/kestrel7/stockpile/internal/catalog"
)

const apiTimestampLayout = "2006-01-02 15:04:05"

// wireProduct mirrors the product payload returned by the API.
type wireProduct struct {
	ID           int64  `json:"id"`
	CategoryID   int    `json:"category_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	ProductImage string `json:"product_image"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// toDomain converts a wire record into the domain type. A malformed price is
// reported rather than silently zeroed; everything else is taken as-is
// because the server's shape is trusted.
func (w wireProduct) toDomain() (catalog.Product, error) {
	price, err := catalog.ParsePrice(w.Price)
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.Product{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Price:       price,
		Image:       w.ProductImage,
		CategoryID:  w.CategoryID,
		CreatedAt:   parseTime(w.CreatedAt),
		UpdatedAt:   parseTime(w.UpdatedAt),
	}, nil
}

// loginRequest mirrors the POST /login JSON body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse mirrors the POST /login payload.
type loginResponse struct {
	Token struct {
		Token string `json:"token"`
	} `json:"token"`
	User struct {
		Email string `json:"email"`
	} `json:"user"`
}

// Credentials is the result of a successful login.
type Credentials struct {
	Token string
	Email string
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(apiTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
