package ports

import "context"

// FlashStore holds one-shot user-facing notices between a redirect and the
// next page render. PopAll returns the pending notices and clears them.
type FlashStore interface {
	Push(ctx context.Context, sessionID, message string) error
	PopAll(ctx context.Context, sessionID string) ([]string, error)
}
