package cj

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"dropship/internal/integrations"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, HTTPClient: srv.Client(), RemarkTag: "SkillzStorm"})
}

func TestAuthenticateSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/authentication/getAccessToken", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "key-123", body["apiKey"])
		_, _ = io.WriteString(w, `{"code":200,"result":true,"message":"Success","data":{"accessToken":"tok-1"}}`)
	})
	tok, err := c.Authenticate(context.Background(), "key-123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}

func TestAuthenticateRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":1600001,"result":false,"message":"apiKey is invalid","data":null}`)
	})
	_, err := c.Authenticate(context.Background(), "bad")
	require.Error(t, err)
	var ae *AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 1600001, ae.Code)
	assert.Equal(t, "CJ auth failed: apiKey is invalid", err.Error())
}

func TestAuthenticateEmptyToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":200,"message":"ok","data":{"accessToken":""}}`)
	})
	_, err := c.Authenticate(context.Background(), "k")
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
}

func TestAuthenticateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	c := New(Config{BaseURL: url, Timeout: time.Second})
	_, err := c.Authenticate(context.Background(), "k")
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	require.Error(t, ae.Unwrap())
}

func TestSearchFirstResultAndVariant(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/product/list", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("CJ-Access-Token"))
		assert.Equal(t, "1", r.URL.Query().Get("pageNum"))
		assert.Equal(t, "1", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "VR headset phone 3D glasses", r.URL.Query().Get("productNameEn"))
		_, _ = io.WriteString(w, `{"code":200,"data":{"list":[{"pid":"p1","productNameEn":"VR Box","productImage":"https://img/1.jpg","sellPrice":"9.99","variants":[{"vid":"v1","variantSellPrice":7.5},{"vid":"v2"}]}]}}`)
	})
	p, err := c.Search(context.Background(), "tok", "VR headset phone 3D glasses")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ProductID)
	assert.Equal(t, "v1", p.VariantID)
	assert.Equal(t, "VR Box", p.Name)
	assert.Equal(t, "https://img/1.jpg", p.ImageURL)
	assert.True(t, p.SellPrice.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, p.Usable())
}

func TestSearchPriceFallbacks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
		vid  string
	}{
		{"product price when variant price missing", `{"code":200,"data":{"list":[{"pid":"p","sellPrice":"4.20","variants":[{"vid":"v"}]}]}}`, "4.2", "v"},
		{"product price when variant price zero", `{"code":200,"data":{"list":[{"pid":"p","sellPrice":3,"variants":[{"vid":"v","variantSellPrice":0}]}]}}`, "3", "v"},
		{"range uses lower bound", `{"code":200,"data":{"list":[{"pid":"p","sellPrice":"1.20 -- 2.30"}]}}`, "1.2", ""},
		{"zero when nothing priced", `{"code":200,"data":{"list":[{"pid":"p","variants":[{"vid":"v"}]}]}}`, "0", "v"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, tc.body) })
			p, err := c.Search(context.Background(), "tok", "q")
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, tc.vid, p.VariantID)
			assert.True(t, p.SellPrice.Equal(decimal.RequireFromString(tc.want)), "got %s", p.SellPrice)
		})
	}
}

func TestSearchNoVariantsIsUnusable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":200,"data":{"list":[{"pid":"p","productNameEn":"X","sellPrice":1}]}}`)
	})
	p, err := c.Search(context.Background(), "tok", "q")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "", p.VariantID)
	assert.False(t, p.Usable())
}

func TestSearchNoMatch(t *testing.T) {
	for _, body := range []string{
		`{"code":200,"data":{"list":[]}}`,
		`{"code":200,"data":null}`,
		`{"code":1600100,"message":"Param error"}`,
	} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, body) })
		p, err := c.Search(context.Background(), "tok", "q")
		require.NoError(t, err, body)
		assert.Nil(t, p, body)
	}
}

func TestSearchBadBodyIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `<html>bad gateway</html>`)
	})
	_, err := c.Search(context.Background(), "tok", "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
}

func TestOrderNumber(t *testing.T) {
	assert.Equal(t, "ef1234567890", OrderNumber("cs_test_abcdef1234567890"))
	assert.Equal(t, "short", OrderNumber("short"))
	assert.Equal(t, "", OrderNumber(""))
}

func TestPlaceOrderPayload(t *testing.T) {
	var got createOrderRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shopping/order/createOrder", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("CJ-Access-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"code":200,"result":true,"message":"Success","data":{"orderId":"CJ1"}}`)
	})
	res, err := c.PlaceOrder(context.Background(), "tok", integrations.Order{
		SessionID: "cs_test_abcdef1234567890",
		Email:     "kid@example.com",
		Shipping:  integrations.Shipping{Name: "Ada", Address: "1 Main St", City: "Austin", Province: "TX", Zip: "73301", Country: "US"},
		Lines:     []integrations.LineItem{{VariantID: "v1", Quantity: 1}, {VariantID: "v1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, CodeSuccess, res.Code)
	assert.True(t, res.Accepted)
	assert.JSONEq(t, `{"code":200,"result":true,"message":"Success","data":{"orderId":"CJ1"}}`, string(res.Raw))

	assert.Equal(t, "ef1234567890", got.OrderNumber)
	assert.Equal(t, "US", got.ShippingCountryCode)
	assert.Equal(t, "US", got.ShippingCountry)
	assert.Equal(t, "TX", got.ShippingProvince)
	assert.Equal(t, "Austin", got.ShippingCity)
	assert.Equal(t, "1 Main St", got.ShippingAddress)
	assert.Equal(t, "Ada", got.ShippingCustomerName)
	assert.Equal(t, "73301", got.ShippingZip)
	assert.Equal(t, PlaceholderPhone, got.ShippingPhone)
	assert.Equal(t, "SkillzStorm | kid@example.com", got.Remark)
	assert.Equal(t, []orderProduct{{VID: "v1", Quantity: 1}, {VID: "v1", Quantity: 1}}, got.Products)
}

func TestPlaceOrderKeepsPhoneAndNonSuccessCode(t *testing.T) {
	var got createOrderRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"code":1603001,"result":false,"message":"balance insufficient"}`)
	})
	res, err := c.PlaceOrder(context.Background(), "tok", integrations.Order{
		SessionID: "abc",
		Shipping:  integrations.Shipping{Phone: "555-0100"},
		Lines:     []integrations.LineItem{{VariantID: "v", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1603001, res.Code)
	assert.False(t, res.Accepted)
	assert.Equal(t, "balance insufficient", res.Message)
	assert.Equal(t, "555-0100", got.ShippingPhone)
	assert.Equal(t, "abc", got.OrderNumber)
}

func TestLimiterHonorsContext(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{"code":200,"data":{"list":[]}}`)
	}))
	defer srv.Close()
	lim := rate.NewLimiter(rate.Every(time.Hour), 1)
	c := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client(), Limiter: lim})

	_, err := c.Search(context.Background(), "tok", "q")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Search(ctx, "tok", "q")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
