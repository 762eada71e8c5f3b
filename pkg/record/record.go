// Package record keeps a lightweight log of chat exchanges for inspection:
// what was asked, what the model did, and how many history items were
// dropped on the way in. Recording is best-effort and never in the request
// path's failure domain.
package record

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Exchange summarizes one round trip through the chat endpoint. It carries
// no full transcript text, only previews, so the log stays small and
// shareable.
type Exchange struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Turns is the size of the normalized transcript that was submitted.
	Turns int `json:"turns"`

	// Skipped counts history items dropped during normalization.
	Skipped int `json:"skipped"`

	// Outcome is "ok" or the failure reason classification.
	Outcome string `json:"outcome"`

	// ReplyPreview is a truncated slice of the generated text, if any.
	ReplyPreview string `json:"reply_preview,omitempty"`
}

// NewExchange builds an Exchange with its content-derived ID filled in.
func NewExchange(turns, skipped int, outcome, replyPreview string) *Exchange {
	e := &Exchange{
		CreatedAt:    time.Now().UTC(),
		Turns:        turns,
		Skipped:      skipped,
		Outcome:      outcome,
		ReplyPreview: replyPreview,
	}
	e.ID = e.computeID()
	return e
}

// computeID derives the exchange ID from its content (SHA-256, hex-encoded).
// CreatedAt has nanosecond precision, which keeps IDs unique in practice.
func (e *Exchange) computeID() string {
	data, err := json.Marshal(struct {
		CreatedAt    time.Time `json:"created_at"`
		Turns        int       `json:"turns"`
		Skipped      int       `json:"skipped"`
		Outcome      string    `json:"outcome"`
		ReplyPreview string    `json:"reply_preview"`
	}{e.CreatedAt, e.Turns, e.Skipped, e.Outcome, e.ReplyPreview})
	if err != nil {
		panic("failed to marshal exchange for hashing: " + err.Error())
	}

	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Store persists exchanges. Implementations must be safe for concurrent use.
type Store interface {
	// Append stores an exchange. Appending an exchange whose ID already
	// exists is a no-op.
	Append(ctx context.Context, e *Exchange) error

	// Get retrieves an exchange by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Exchange, error)

	// List returns all exchanges in chronological order (oldest first).
	List(ctx context.Context) ([]*Exchange, error)

	// Len returns the number of stored exchanges.
	Len(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}

// ErrNotFound is returned when an exchange doesn't exist in the store.
type ErrNotFound struct {
	ID string
}

func (e ErrNotFound) Error() string {
	if e.ID == "" {
		return "exchange not found"
	}

	return "exchange not found: " + e.ID
}
