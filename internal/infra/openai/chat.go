package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"job-estimator/internal/domain"
)

// Complete sends content as the only user message and returns the first
// choice verbatim.
func (c *Client) Complete(ctx context.Context, content string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: ChatModel,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: content},
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
