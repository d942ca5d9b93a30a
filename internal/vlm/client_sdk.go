package vlm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nitin85058/VEYA/internal/logging"
)

// SDKClient backs the vision-model interface with the google.golang.org/genai
// SDK instead of hand-rolled HTTP.
type SDKClient struct {
	client          *genai.Client
	model           string
	maxOutputTokens int
	temperature     float64
	timeout         time.Duration
}

// NewSDKClient creates an SDK-backed vision-model client.
func NewSDKClient(config Config) (*SDKClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	maxOutputTokens := config.MaxOutputTokens
	if maxOutputTokens <= 0 {
		maxOutputTokens = 4096
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &SDKClient{
		client:          client,
		model:           model,
		maxOutputTokens: maxOutputTokens,
		temperature:     config.Temperature,
		timeout:         timeout,
	}, nil
}

// Describe sends the prompt and image and returns the model's text.
func (c *SDKClient) Describe(ctx context.Context, prompt string, img Image) (string, error) {
	return c.generate(ctx, prompt, img, false)
}

// DescribeJSON sends the prompt and image and asks for a JSON response.
func (c *SDKClient) DescribeJSON(ctx context.Context, prompt string, img Image) (string, error) {
	return c.generate(ctx, prompt, img, true)
}

func (c *SDKClient) generate(ctx context.Context, prompt string, img Image, jsonMode bool) (string, error) {
	// Auto-apply timeout if context has no deadline
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	startTime := time.Now()
	logging.VLMDebug("[GenAI] generate: model=%s prompt_len=%d image_bytes=%d json=%t",
		c.model, len(prompt), len(img.Data), jsonMode)

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if len(img.Data) > 0 {
		mime := img.MIME
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, genai.NewPartFromBytes(img.Data, mime))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.temperature)),
		MaxOutputTokens: int32(c.maxOutputTokens),
	}
	if jsonMode {
		genCfg.ResponseMIMEType = "application/json"
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		logging.VLMError("[GenAI] generate: request failed after %v: %v", time.Since(startTime), err)
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("no completion returned")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	response := strings.TrimSpace(sb.String())
	if response == "" {
		return "", fmt.Errorf("empty response")
	}

	logging.VLM("[GenAI] generate: completed in %v response_len=%d", time.Since(startTime), len(response))
	return response, nil
}

// Model returns the configured model name.
func (c *SDKClient) Model() string {
	return c.model
}

// Close releases the SDK client. The genai SDK client holds no closable
// resources, so there is nothing to release.
func (c *SDKClient) Close() error {
	return nil
}
