package api

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
)

// SecretHeader carries the shared secret on inbound fulfill requests.
const SecretHeader = "X-Fulfill-Secret"

// authorized compares the request secret against the expected one in
// constant time. An empty expected secret never matches.
func authorized(r *http.Request, expected string) bool {
	if expected == "" {
		return false
	}
	provided := r.Header.Get(SecretHeader)
	if provided == "" {
		return false
	}
	// Hash both sides so the comparison does not leak the secret length.
	a := sha256.Sum256([]byte(provided))
	b := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
