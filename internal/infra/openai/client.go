package openai

import (
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"

	ChatModel          = goopenai.GPT4
	TranscriptionModel = goopenai.Whisper1
)

// Client talks to an OpenAI-compatible API for both chat completions and
// transcriptions. The API key is only ever sent as the bearer token.
type Client struct {
	api *goopenai.Client
}

func NewClient(apiKey string) *Client {
	return NewClientWithURL(apiKey, DefaultBaseURL)
}

func NewClientWithURL(apiKey, baseURL string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")

	return &Client{
		api: goopenai.NewClientWithConfig(cfg),
	}
}
