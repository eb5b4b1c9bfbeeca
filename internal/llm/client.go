package llm

import (
	"context"
	"errors"
)

// ErrUpstream marks any failure of the language-understanding service:
// timeout, non-2xx status, or output that cannot be decoded. Callers always
// recover from it with a deterministic fallback; it never reaches the user.
var ErrUpstream = errors.New("upstream language service failure")

type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
