package vlm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRESTClient_Describe_Success(t *testing.T) {
	imgBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "/models/gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected key=test-key, got %s", r.URL.Query().Get("key"))
		}

		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 {
			t.Fatalf("expected 1 content, got %d", len(req.Contents))
		}
		if req.Contents[0].Role != "user" {
			t.Errorf("expected role user, got %s", req.Contents[0].Role)
		}
		parts := req.Contents[0].Parts
		if len(parts) != 2 {
			t.Fatalf("expected 2 parts (text + image), got %d", len(parts))
		}
		if parts[0].Text != "describe this panel" {
			t.Errorf("unexpected prompt: %s", parts[0].Text)
		}
		if parts[1].InlineData == nil {
			t.Fatal("expected inline image data")
		}
		if parts[1].InlineData.MIMEType != "image/jpeg" {
			t.Errorf("expected image/jpeg, got %s", parts[1].InlineData.MIMEType)
		}
		decoded, err := base64.StdEncoding.DecodeString(parts[1].InlineData.Data)
		if err != nil {
			t.Fatalf("image data is not base64: %v", err)
		}
		if string(decoded) != string(imgBytes) {
			t.Error("image bytes did not round-trip")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {
					"parts": [{"text": "A breaker "}, {"text": "panel.\n"}],
					"role": "model"
				},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15}
		}`))
	}))
	defer server.Close()

	client := NewRESTClient(Config{APIKey: "test-key"})
	client.baseURL = server.URL

	got, err := client.Describe(context.Background(), "describe this panel", Image{Data: imgBytes, MIME: "image/jpeg"})
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if got != "A breaker panel." {
		t.Errorf("expected concatenated trimmed text, got %q", got)
	}
}

func TestRESTClient_DescribeJSON_RequestsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected response_mime_type application/json, got %q", req.GenerationConfig.ResponseMimeType)
		}
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"condition\": \"Good\"}"}]}}]}`))
	}))
	defer server.Close()

	client := NewRESTClient(Config{APIKey: "test-key"})
	client.baseURL = server.URL

	got, err := client.DescribeJSON(context.Background(), "classify", Image{})
	if err != nil {
		t.Fatalf("DescribeJSON failed: %v", err)
	}
	if got != `{"condition": "Good"}` {
		t.Errorf("unexpected response: %q", got)
	}
}

func TestRESTClient_TextOnlyHasNoImagePart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Contents[0].Parts) != 1 {
			t.Errorf("expected 1 part for text-only call, got %d", len(req.Contents[0].Parts))
		}
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`))
	}))
	defer server.Close()

	client := NewRESTClient(Config{APIKey: "test-key"})
	client.baseURL = server.URL

	if _, err := client.Describe(context.Background(), "hello", Image{}); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
}

func TestRESTClient_APIErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client := NewRESTClient(Config{APIKey: "test-key"})
	client.baseURL = server.URL

	_, err := client.Describe(context.Background(), "x", Image{})
	if err == nil {
		t.Fatal("expected error for API error envelope")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected error to carry API message, got: %v", err)
	}
}

func TestRESTClient_HTTPErrorIsNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"code": 500, "message": "internal"}}`))
	}))
	defer server.Close()

	client := NewRESTClient(Config{APIKey: "test-key"})
	client.baseURL = server.URL

	_, err := client.Describe(context.Background(), "x", Image{})
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("expected status in error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
}

func TestRESTClient_NoCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := NewRESTClient(Config{APIKey: "test-key"})
	client.baseURL = server.URL

	_, err := client.Describe(context.Background(), "x", Image{})
	if err == nil {
		t.Fatal("expected error for empty candidates")
	}
	if !strings.Contains(err.Error(), "no completion returned") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRESTClient_NoAPIKey(t *testing.T) {
	client := NewRESTClient(Config{})
	_, err := client.Describe(context.Background(), "x", Image{})
	if err == nil {
		t.Fatal("expected error when API key missing")
	}
	if !strings.Contains(err.Error(), "API key not configured") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_Backends(t *testing.T) {
	c, err := New(Config{APIKey: "k", Backend: BackendREST})
	if err != nil {
		t.Fatalf("rest backend failed: %v", err)
	}
	if _, ok := c.(*RESTClient); !ok {
		t.Errorf("expected *RESTClient, got %T", c)
	}

	c, err = New(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("default backend failed: %v", err)
	}
	if _, ok := c.(*RESTClient); !ok {
		t.Errorf("expected default backend to be REST, got %T", c)
	}

	if _, err := New(Config{APIKey: "k", Backend: "grpc"}); err == nil {
		t.Error("expected error for unknown backend")
	}

	if _, err := New(Config{Backend: BackendSDK}); err == nil {
		t.Error("expected error for sdk backend without API key")
	}
}
