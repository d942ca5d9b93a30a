// Package vision wraps the Google Cloud Vision REST API for nameplate OCR.
// Authentication is a static API key in the query string; every call is a
// single attempt with no retry.
package vision

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

// Client calls the Cloud Vision images:annotate endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	mu          sync.Mutex
	lastRequest time.Time
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: "https://vision.googleapis.com/v1",
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a Cloud Vision client with default settings.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a Cloud Vision client with custom config.
func NewClientWithConfig(config Config) *Client {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://vision.googleapis.com/v1"
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  config.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ExtractText runs TEXT_DETECTION on the image and returns the full
// detected text. An image with no readable text returns "" and no error.
func (c *Client) ExtractText(ctx context.Context, img []byte) (string, error) {
	// Auto-apply timeout if context has no deadline
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	logging.VisionDebug("[Vision] ExtractText: image_bytes=%d", len(img))

	if c.apiKey == "" {
		logging.VisionError("[Vision] ExtractText: API key not configured")
		return "", fmt.Errorf("API key not configured")
	}
	if len(img) == 0 {
		return "", fmt.Errorf("empty image")
	}

	// Pace successive calls
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	reqBody := AnnotateRequest{
		Requests: []AnnotateImageRequest{
			{
				Image: ImageContent{Content: base64.StdEncoding.EncodeToString(img)},
				Features: []Feature{
					{Type: "TEXT_DETECTION", MaxResults: 1},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/images:annotate?key=%s", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.VisionError("[Vision] ExtractText: request failed after %v: %v", time.Since(startTime), err)
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.VisionError("[Vision] ExtractText: API returned status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var annotateResp AnnotateResponse
	if err := json.Unmarshal(body, &annotateResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if annotateResp.Error != nil {
		return "", fmt.Errorf("API error: %s", annotateResp.Error.Message)
	}
	if len(annotateResp.Responses) == 0 {
		return "", fmt.Errorf("no annotation returned")
	}

	first := annotateResp.Responses[0]
	if first.Error != nil {
		logging.VisionError("[Vision] ExtractText: annotation error: %s", first.Error.Message)
		return "", fmt.Errorf("API error: %s", first.Error.Message)
	}

	if len(first.TextAnnotations) == 0 {
		logging.Vision("[Vision] ExtractText: no text detected in %v", time.Since(startTime))
		return "", nil
	}

	text := strings.TrimSpace(first.TextAnnotations[0].Description)
	logging.Vision("[Vision] ExtractText: completed in %v text_len=%d", time.Since(startTime), len(text))
	return text, nil
}
