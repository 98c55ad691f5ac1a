package shared

import (
	"net/http"

	"github.com/go-chi/httprate"
)

// RateLimitKey buckets requests by session when one is attached and by client IP otherwise.
func RateLimitKey(r *http.Request) (string, error) {
	if id := SessionID(r.Context()); id != "" {
		return "session:" + id, nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
