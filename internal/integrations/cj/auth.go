package cj

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthError reports a failed token exchange, either rejected by CJ or lost in transport.
type AuthError struct {
	Code    int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("CJ auth failed: %v", e.Err)
	}
	return fmt.Sprintf("CJ auth failed: %s", e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }

type tokenData struct {
	AccessToken           string `json:"accessToken"`
	AccessTokenExpiryDate string `json:"accessTokenExpiryDate,omitempty"`
}

// Authenticate exchanges apiKey for an access token. Tokens are not cached.
func (c *Client) Authenticate(ctx context.Context, apiKey string) (string, error) {
	env, _, err := c.do(ctx, "auth", http.MethodPost, "/authentication/getAccessToken", "", map[string]string{"apiKey": apiKey})
	if err != nil {
		return "", &AuthError{Err: err}
	}
	var data tokenData
	if len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &data)
	}
	if env.Code != CodeSuccess || data.AccessToken == "" {
		return "", &AuthError{Code: env.Code, Message: env.Message}
	}
	return data.AccessToken, nil
}
