package model

import "encoding/json"

// FulfillRequest is the inbound body of the fulfill endpoint.
type FulfillRequest struct {
	SessionID       string   `json:"sessionId"`
	Items           []string `json:"items"`
	ShippingName    string   `json:"shippingName"`
	ShippingAddress string   `json:"shippingAddress"`
	ShippingCity    string   `json:"shippingCity"`
	ShippingState   string   `json:"shippingState"`
	ShippingZip     string   `json:"shippingZip"`
	ShippingCountry string   `json:"shippingCountry"`
	ShippingPhone   string   `json:"shippingPhone,omitempty"`
	Email           string   `json:"email"`
}

// Shipping returns the shipping block echoed back for manual follow-up.
func (r FulfillRequest) Shipping() ShippingEcho {
	return ShippingEcho{
		Name:    r.ShippingName,
		Address: r.ShippingAddress,
		City:    r.ShippingCity,
		State:   r.ShippingState,
		Zip:     r.ShippingZip,
		Country: r.ShippingCountry,
		Phone:   r.ShippingPhone,
	}
}

type ShippingEcho struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

// ItemEcho is a requested SKU with its display name (the SKU itself when unmapped).
type ItemEcho struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderedItem summarizes one line placed with the supplier.
type OrderedItem struct {
	SKU       string      `json:"sku"`
	Name      string      `json:"name"`
	VariantID string      `json:"variantId"`
	Cost      json.Number `json:"cost"`
}
