package ports

import "context"

// CompletionRequest is one chat-completion call: a fixed system instruction
// plus a rendered user prompt, with the sampling knobs the pipeline pins.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completer sends a prompt to a chat-completion model and returns the raw
// text of the first choice. Implementations make exactly one request per
// call; retry policy belongs to the caller.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
