// Package dashscope talks to Alibaba DashScope through its OpenAI-compatible endpoint.
package dashscope

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wordmine-server/internal/domain"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client implements domain.LanguageModel on the chat completions API
type Client struct {
	client      openai.Client
	model       string
	temperature float64
	logger      domain.Logger
}

func NewClient(opts Options, logger domain.Logger) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("dashscope: API key is required")
	}
	if opts.Model == "" {
		return nil, errors.New("dashscope: model is required")
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(baseURL),
		// one failed chunk fails the request
		option.WithMaxRetries(0),
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	return &Client{
		client:      openai.NewClient(reqOpts...),
		model:       opts.Model,
		temperature: opts.Temperature,
		logger:      logger,
	}, nil
}

// Generate sends prompt as a single user message and returns the reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("dashscope call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", domain.ErrModelUnavailable)
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrModelUnavailable)
	}

	c.logger.Debug("DashScope completion",
		"model", c.model,
		"prompt_tokens", completion.Usage.PromptTokens,
		"completion_tokens", completion.Usage.CompletionTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}
