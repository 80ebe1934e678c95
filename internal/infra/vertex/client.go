// Package vertex implements the language model on Vertex AI Gemini.
package vertex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"wordmine-server/internal/domain"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

type Options struct {
	ProjectID       string
	Location        string
	Model           string
	Temperature     float32
	Timeout         time.Duration
	CredentialsFile string
}

type Client struct {
	genaiClient *genai.Client
	model       *genai.GenerativeModel
	modelName   string
	timeout     time.Duration
	logger      domain.Logger
}

func NewClient(ctx context.Context, opts Options, logger domain.Logger) (*Client, error) {
	if opts.ProjectID == "" {
		return nil, errors.New("vertex: project id is required")
	}

	creds, err := loadCredentials(ctx, opts.CredentialsFile)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, opts.ProjectID, opts.Location, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	model.SetTemperature(opts.Temperature)
	model.ResponseMIMEType = "application/json"

	return &Client{
		genaiClient: client,
		model:       model,
		modelName:   opts.Model,
		timeout:     opts.Timeout,
		logger:      logger,
	}, nil
}

func loadCredentials(ctx context.Context, file string) (*google.Credentials, error) {
	if file == "" {
		creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to get default credentials: %w", err)
		}
		return creds, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return creds, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response from model", domain.ErrModelUnavailable)
	}

	text := joinText(resp.Candidates[0].Content.Parts)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text parts in response", domain.ErrModelUnavailable)
	}

	fields := []interface{}{"model", c.modelName, "duration_ms", time.Since(start).Milliseconds()}
	if resp.UsageMetadata != nil {
		fields = append(fields, "total_tokens", resp.UsageMetadata.TotalTokenCount)
	}
	c.logger.Debug("Gemini completion", fields...)
	return text, nil
}

func joinText(parts []genai.Part) string {
	var sb strings.Builder
	for _, part := range parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

func (c *Client) Close() error {
	return c.genaiClient.Close()
}
