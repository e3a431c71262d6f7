// Package openai adapts the OpenAI chat and embedding APIs to the ask
// package's Completer and Embedder interfaces.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/nfrund/askby/internal/ask"
	"github.com/openai/openai-go"
	oa "github.com/openai/openai-go/option"
)

// ErrNoChoices is returned when the API answers without any completion.
var ErrNoChoices = errors.New("openai: response contained no choices")

// Config selects the endpoint and models.
type Config struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	MaxRetries     int
}

// Client implements ask.Completer and ask.Embedder.
type Client struct {
	client         openai.Client
	chatModel      string
	embeddingModel string
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	opts := []oa.RequestOption{
		oa.WithAPIKey(cfg.APIKey),
		oa.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, oa.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		client:         openai.NewClient(opts...),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
	}
}

// Complete implements ask.Completer.
func (c *Client) Complete(ctx context.Context, messages []ask.Message, temperature float64, maxTokens int) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.chatModel),
		Messages:    toParams(messages),
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
		N:           openai.Int(1),
	}

	result, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", ErrNoChoices
	}
	return result.Choices[0].Message.Content, nil
}

// Embed implements ask.Embedder.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrNoChoices
	}
	return resp.Data[0].Embedding, nil
}

func toParams(messages []ask.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case ask.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case ask.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
