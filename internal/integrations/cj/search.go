package cj

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"dropship/internal/integrations"
)

type productList struct {
	PageNum  int             `json:"pageNum"`
	PageSize int             `json:"pageSize"`
	Total    int             `json:"total"`
	List     []productRecord `json:"list"`
}

type productRecord struct {
	PID           string          `json:"pid"`
	ProductNameEn string          `json:"productNameEn"`
	ProductImage  string          `json:"productImage"`
	SellPrice     json.RawMessage `json:"sellPrice"`
	Variants      []variantRecord `json:"variants"`
}

type variantRecord struct {
	VID              string          `json:"vid"`
	VariantSellPrice json.RawMessage `json:"variantSellPrice"`
}

// Search asks CJ for a single result page of size one. A nil product with a
// nil error means nothing matched.
func (c *Client) Search(ctx context.Context, token, query string) (*integrations.Product, error) {
	q := url.Values{}
	q.Set("pageNum", "1")
	q.Set("pageSize", "1")
	q.Set("productNameEn", query)
	env, _, err := c.do(ctx, "search", http.MethodGet, "/product/list?"+q.Encode(), token, nil)
	if err != nil {
		return nil, err
	}
	if env.Code != CodeSuccess || len(env.Data) == 0 {
		return nil, nil
	}
	var data productList
	if err := json.Unmarshal(env.Data, &data); err != nil || len(data.List) == 0 {
		return nil, nil
	}
	p := data.List[0]
	out := &integrations.Product{
		ProductID: p.PID,
		Name:      p.ProductNameEn,
		ImageURL:  p.ProductImage,
		SellPrice: decimal.Zero,
	}
	var variantPrice json.RawMessage
	if len(p.Variants) > 0 {
		out.VariantID = p.Variants[0].VID
		variantPrice = p.Variants[0].VariantSellPrice
	}
	if d, ok := parsePrice(variantPrice); ok {
		out.SellPrice = d
	} else if d, ok := parsePrice(p.SellPrice); ok {
		out.SellPrice = d
	}
	return out, nil
}

// parsePrice accepts numbers, numeric strings and CJ range strings such as
// "1.20 -- 2.30" (lower bound wins). Zero counts as absent.
func parsePrice(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero, false
	}
	s = strings.Trim(s, `"`)
	if i := strings.Index(s, "--"); i >= 0 {
		s = s[:i]
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
