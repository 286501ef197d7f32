// Package integrations defines the contract between the fulfillment flow and
// a dropshipping supplier.
package integrations

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SupplierAdapter is the minimal interface a dropshipping supplier integration provides.
type SupplierAdapter interface {
	Name() string
	// Authenticate exchanges a long-lived API key for an access token.
	Authenticate(ctx context.Context, apiKey string) (string, error)
	// Search returns the best match for query, or nil when nothing matched.
	Search(ctx context.Context, token, query string) (*Product, error)
	PlaceOrder(ctx context.Context, token string, order Order) (*OrderResult, error)
}

// Product is a supplier product resolved from a search.
type Product struct {
	ProductID string
	VariantID string
	Name      string
	ImageURL  string
	SellPrice decimal.Decimal
}

// Usable reports whether the product can be ordered, which needs a variant.
func (p *Product) Usable() bool { return p != nil && p.VariantID != "" }

type LineItem struct {
	VariantID string
	Quantity  int
}

type Shipping struct {
	Name     string
	Address  string
	City     string
	Province string
	Zip      string
	Country  string
	Phone    string
}

// Order is the normalized order handed to a supplier.
type Order struct {
	SessionID string
	Email     string
	Shipping  Shipping
	Lines     []LineItem
}

// OrderResult carries the supplier's verbatim response and its decoded result code.
// Accepted is true only when the supplier reported success.
type OrderResult struct {
	Accepted bool
	Code     int
	Message  string
	Raw      json.RawMessage
}
