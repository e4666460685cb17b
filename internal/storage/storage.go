package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"apexfit/api/internal/ids"
)

// ErrUnavailable means the backing medium cannot accept writes right now
// (read-only deployment, unreachable endpoint). It is an operator-facing,
// retryable condition distinct from a generic failure.
var ErrUnavailable = errors.New("photo storage unavailable")

// Purpose tags the folder a photo belongs to.
type Purpose string

const (
	PurposeAnalysis Purpose = "analysis"
	PurposeProgress Purpose = "progress"
)

func (p Purpose) Valid() bool {
	return p == PurposeAnalysis || p == PurposeProgress
}

// WriteInput carries both derivative buffers of one accepted photo.
type WriteInput struct {
	UserID  string
	Purpose Purpose
	Display []byte
	Thumb   []byte
}

// WriteResult returns the stable locators plus the internal keys.
// Locators are what callers hand back to clients; keys are what the
// store needs to find the bytes again.
type WriteResult struct {
	OriginalURL string
	OriginalKey string
	ThumbURL    string
	ThumbKey    string
}

// Store persists photo derivatives. Each Write produces fresh keys;
// idempotency is neither guaranteed nor required.
type Store interface {
	Write(ctx context.Context, in WriteInput) (WriteResult, error)
}

// keyPair builds the per-user, time-ordered object keys. The ksuid
// segment disambiguates two writes landing in the same millisecond.
func keyPair(userID string, purpose Purpose) (original, thumb string) {
	base := fmt.Sprintf("users/%s/%s/%d-%s", userID, purpose, time.Now().UnixMilli(), ids.New())
	return base + "-original.jpg", base + "-thumb.jpg"
}
