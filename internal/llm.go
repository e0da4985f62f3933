package internal

import "context"

// Provider is the external text-generation capability. Calls block until
// the model answers or the context expires; the pipeline never retries on
// its own, it surfaces the failure and lets the caller decide.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Transcriber is the external speech-to-text capability upstream of
// capture.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
