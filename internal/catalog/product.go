package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the last known server state of one catalog entry. The local
// copy is a cache mirroring the gateway response; it is never authoritative.
type Product struct {
	ID          int64
	Title       string
	Description string
	Price       decimal.Decimal
	Image       string
	CategoryID  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceString renders the price the way the gateway stores it, with two
// fractional digits.
func (p Product) PriceString() string {
	return p.Price.StringFixed(2)
}

// Draft is user input for a new or edited product, before validation.
type Draft struct {
	Title       string
	Description string
	Price       string
	ImagePath   string
}

// pricePattern matches a non-negative amount with at most two fractional
// digits, e.g. "12", "12.5", "999.99".
var pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// Validate checks the draft's required fields and price shape. It returns the
// normalized draft (trimmed fields, price padded to two fractional digits)
// and any field errors. A draft with errors must not reach the gateway.
func (d Draft) Validate() (Draft, FieldErrors) {
	errs := FieldErrors{}

	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Price = strings.TrimSpace(d.Price)
	d.ImagePath = strings.TrimSpace(d.ImagePath)

	if d.Title == "" {
		errs["title"] = "Title is required"
	}

	if d.Price == "" {
		errs["price"] = "Price is required"
	} else if !pricePattern.MatchString(d.Price) {
		errs["price"] = "Enter valid price"
	} else {
		amount, err := decimal.NewFromString(d.Price)
		if err != nil {
			errs["price"] = "Enter valid price"
		} else {
			d.Price = amount.StringFixed(2)
		}
	}

	if len(errs) == 0 {
		return d, nil
	}
	return d, errs
}

// Changes holds only the fields of an edit that differ from the product's
// last known values. Empty means nothing to send.
type Changes struct {
	Title       *string
	Description *string
	Price       *string
	ImagePath   *string
}

// Empty reports whether the edit changed nothing.
func (c Changes) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Price == nil && c.ImagePath == nil
}

// Diff computes the minimal changed-field set between a product's last known
// state and a validated draft. The draft must already be normalized via
// Validate.
func Diff(old Product, edited Draft) Changes {
	var c Changes
	if edited.Title != old.Title {
		c.Title = &edited.Title
	}
	if edited.Description != old.Description {
		c.Description = &edited.Description
	}
	if edited.Price != old.PriceString() {
		c.Price = &edited.Price
	}
	if edited.ImagePath != "" && edited.ImagePath != old.Image {
		c.ImagePath = &edited.ImagePath
	}
	return c
}

// ParsePrice converts a gateway price string into a decimal, tolerating blank
// values. Malformed values report an error instead of silently becoming zero.
func ParsePrice(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", value, err)
	}
	return amount, nil
}
