package vlm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nitin85058/VEYA/internal/logging"
)

// RESTClient calls generateContent directly over HTTP with the API key in
// the query string. Every call is a single attempt.
type RESTClient struct {
	apiKey          string
	baseURL         string
	model           string
	maxOutputTokens int
	temperature     float64
	httpClient      *http.Client
	mu              sync.Mutex
	lastRequest     time.Time
}

// NewRESTClient creates a REST-backed vision-model client.
func NewRESTClient(config Config) *RESTClient {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
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
	return &RESTClient{
		apiKey:          config.APIKey,
		baseURL:         baseURL,
		model:           model,
		maxOutputTokens: maxOutputTokens,
		temperature:     config.Temperature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Describe sends the prompt and image and returns the model's text.
func (c *RESTClient) Describe(ctx context.Context, prompt string, img Image) (string, error) {
	return c.generate(ctx, prompt, img, false)
}

// DescribeJSON sends the prompt and image and asks for a JSON response.
func (c *RESTClient) DescribeJSON(ctx context.Context, prompt string, img Image) (string, error) {
	return c.generate(ctx, prompt, img, true)
}

func (c *RESTClient) generate(ctx context.Context, prompt string, img Image, jsonMode bool) (string, error) {
	// Auto-apply timeout if context has no deadline
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	logging.VLMDebug("[Gemini] generate: model=%s prompt_len=%d image_bytes=%d json=%t",
		c.model, len(prompt), len(img.Data), jsonMode)

	if c.apiKey == "" {
		logging.VLMError("[Gemini] generate: API key not configured")
		return "", fmt.Errorf("API key not configured")
	}

	// Pace successive calls
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	parts := []GeminiPart{{Text: prompt}}
	if len(img.Data) > 0 {
		mime := img.MIME
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, GeminiPart{
			InlineData: &GeminiInlineData{
				MIMEType: mime,
				Data:     base64.StdEncoding.EncodeToString(img.Data),
			},
		})
	}

	reqBody := GeminiRequest{
		Contents: []GeminiContent{
			{
				Role:  "user",
				Parts: parts,
			},
		},
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxOutputTokens,
		},
	}
	if jsonMode {
		reqBody.GenerationConfig.ResponseMimeType = "application/json"
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.VLMError("[Gemini] generate: request failed after %v: %v", time.Since(startTime), err)
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.VLMError("[Gemini] generate: API returned status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	var result strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		result.WriteString(part.Text)
	}

	response := strings.TrimSpace(result.String())
	if response == "" {
		return "", fmt.Errorf("empty response")
	}

	logging.VLM("[Gemini] generate: completed in %v response_len=%d tokens=%d",
		time.Since(startTime), len(response), geminiResp.UsageMetadata.TotalTokenCount)
	return response, nil
}

// Model returns the configured model name.
func (c *RESTClient) Model() string {
	return c.model
}
