// Package llm is the model invocation boundary: it sends a conversation to
// an OpenAI-compatible chat completion endpoint and returns the reply text.
package llm

import (
	"context"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/ritwikdas/stormy/internal/agenterr"
	"go.uber.org/zap"
)

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string
	Content string
}

// Client talks to an OpenAI-compatible provider. Groq's endpoint is the
// default; any compatible base URL works.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// Config holds client settings.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
	Logger      *zap.Logger
}

// NewClient creates a model client. A missing API key is a configuration
// error: there is no anonymous access to chat completion providers.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, agenterr.New(agenterr.KindConfiguration, "Groq API key not provided")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client:      openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete sends the full conversation and returns the assistant's reply
// text. Transport and provider failures come back as ModelAPI-kind errors;
// retrying is the caller's decision.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("chat completion failed",
			zap.String("model", c.model),
			zap.Int("turns", len(messages)),
			zap.Error(err))
		return "", agenterr.Wrap(agenterr.KindModelAPI, "error calling chat completion API", err)
	}
	if len(resp.Choices) == 0 {
		return "", agenterr.New(agenterr.KindModelAPI, "no choices in model response")
	}

	return resp.Choices[0].Message.Content, nil
}
