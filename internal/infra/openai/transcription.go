package openai

import (
	"bytes"
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"job-estimator/internal/domain"
)

// Transcribe uploads a WAV clip as multipart fields "file" and "model". A
// response without text yields an empty string and no error.
func (c *Client) Transcribe(ctx context.Context, clip []byte) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    TranscriptionModel,
		FilePath: domain.ClipFilename,
		Reader:   bytes.NewReader(clip),
	})
	if err != nil {
		return "", fmt.Errorf("creating transcription: %w", err)
	}

	return resp.Text, nil
}
