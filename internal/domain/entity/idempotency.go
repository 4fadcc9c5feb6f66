package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores a processed submission so retried requests replay
// the original response instead of submitting twice.
type IdempotencyKey struct {
	Key          string    // The idempotency key from the client
	UserID       uuid.UUID // User who made the request
	Endpoint     string    // e.g. "POST /reception-forms/:form_id/submit"
	ResponseCode int       // HTTP status code of the original response
	ResponseBody string    // Cached JSON response body
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
