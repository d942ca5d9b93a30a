// Package vlm provides access to the Gemini vision-language model behind a
// small interface, so the analysis steps do not care which backend produced
// the text. Two backends are available: a direct REST client (default) and
// one built on the google.golang.org/genai SDK.
package vlm

import (
	"context"
	"fmt"
	"time"
)

// Image carries an uploaded photo into a model request.
type Image struct {
	Data []byte
	MIME string
}

// Client is the surface the analysis steps need. Describe returns plain
// text; DescribeJSON asks the model for a JSON response body.
type Client interface {
	Describe(ctx context.Context, prompt string, img Image) (string, error)
	DescribeJSON(ctx context.Context, prompt string, img Image) (string, error)
}

// Backend identifiers.
const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

// Config holds vision-model client configuration.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Backend         string
	Timeout         time.Duration
	MaxOutputTokens int
	Temperature     float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-2.5-flash",
		Backend:         BackendREST,
		Timeout:         60 * time.Second,
		MaxOutputTokens: 4096,
		Temperature:     0.1,
	}
}

// New returns the client for the configured backend.
func New(cfg Config) (Client, error) {
	switch cfg.Backend {
	case BackendREST, "":
		return NewRESTClient(cfg), nil
	case BackendSDK:
		return NewSDKClient(cfg)
	default:
		return nil, fmt.Errorf("unknown vlm backend: %s (valid: rest, sdk)", cfg.Backend)
	}
}
