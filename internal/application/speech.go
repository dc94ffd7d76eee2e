package application

import "context"

// SpeechToText turns a WAV clip into text. An empty string means the service
// returned no transcript.
type SpeechToText interface {
	Transcribe(ctx context.Context, clip []byte) (string, error)
}

// ChatCompleter sends a single user message and returns the first choice.
// It returns domain.ErrNoChoices when the completion is empty.
type ChatCompleter interface {
	Complete(ctx context.Context, content string) (string, error)
}
