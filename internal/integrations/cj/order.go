package cj

import (
	"context"
	"fmt"
	"net/http"

	"dropship/internal/integrations"
)

const (
	// PlaceholderPhone is sent when the buyer gave no phone number.
	PlaceholderPhone = "0000000000"
	orderNumberLen   = 12
)

type orderProduct struct {
	VID      string `json:"vid"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	OrderNumber          string         `json:"orderNumber"`
	ShippingZip          string         `json:"shippingZip"`
	ShippingCountryCode  string         `json:"shippingCountryCode"`
	ShippingCountry      string         `json:"shippingCountry"`
	ShippingProvince     string         `json:"shippingProvince"`
	ShippingCity         string         `json:"shippingCity"`
	ShippingAddress      string         `json:"shippingAddress"`
	ShippingCustomerName string         `json:"shippingCustomerName"`
	ShippingPhone        string         `json:"shippingPhone"`
	Remark               string         `json:"remark"`
	Products             []orderProduct `json:"products"`
}

// OrderNumber derives the supplier order reference: the last 12 characters
// of the session id, or the whole id when it is shorter.
func OrderNumber(sessionID string) string {
	r := []rune(sessionID)
	if len(r) <= orderNumberLen {
		return sessionID
	}
	return string(r[len(r)-orderNumberLen:])
}

func (c *Client) buildOrder(o integrations.Order) createOrderRequest {
	phone := o.Shipping.Phone
	if phone == "" {
		phone = PlaceholderPhone
	}
	products := make([]orderProduct, 0, len(o.Lines))
	for _, l := range o.Lines {
		products = append(products, orderProduct{VID: l.VariantID, Quantity: l.Quantity})
	}
	return createOrderRequest{
		OrderNumber:          OrderNumber(o.SessionID),
		ShippingZip:          o.Shipping.Zip,
		ShippingCountryCode:  o.Shipping.Country,
		ShippingCountry:      o.Shipping.Country,
		ShippingProvince:     o.Shipping.Province,
		ShippingCity:         o.Shipping.City,
		ShippingAddress:      o.Shipping.Address,
		ShippingCustomerName: o.Shipping.Name,
		ShippingPhone:        phone,
		Remark:               fmt.Sprintf("%s | %s", c.remarkTag, o.Email),
		Products:             products,
	}
}

// PlaceOrder creates the order on CJ. A non-success code is not an error:
// it comes back in the result alongside the raw response.
func (c *Client) PlaceOrder(ctx context.Context, token string, o integrations.Order) (*integrations.OrderResult, error) {
	env, raw, err := c.do(ctx, "order", http.MethodPost, "/shopping/order/createOrder", token, c.buildOrder(o))
	if err != nil {
		return nil, err
	}
	return &integrations.OrderResult{Accepted: env.Code == CodeSuccess, Code: env.Code, Message: env.Message, Raw: raw}, nil
}
