package costapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SlowResponseMessage is shown when the API does not answer within the timeout.
const SlowResponseMessage = "A API demorou para responder. Tente novamente."

// ErrSlowResponse reports a request aborted by the client timeout.
var ErrSlowResponse = errors.New(SlowResponseMessage)

// StatusError carries a non-success HTTP status and the raw response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Body)
}

// UserMessage converts a client failure into the single message shown to the user.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrSlowResponse) {
		return SlowResponseMessage
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if detail := detailFromBody(statusErr.Body); detail != "" {
			return detail
		}
		return statusErr.Error()
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}

// detailFromBody pulls {"detail": "..."} out of an error body when present.
func detailFromBody(body string) string {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "{") {
		return ""
	}
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	if text, ok := payload.Detail.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}
