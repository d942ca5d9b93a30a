package vision

import "time"

// Wire types for the Cloud Vision images:annotate endpoint.

// AnnotateRequest is the request envelope.
type AnnotateRequest struct {
	Requests []AnnotateImageRequest `json:"requests"`
}

// AnnotateImageRequest asks for one set of features on one image.
type AnnotateImageRequest struct {
	Image    ImageContent `json:"image"`
	Features []Feature    `json:"features"`
}

// ImageContent carries the base64-encoded image bytes.
type ImageContent struct {
	Content string `json:"content"`
}

// Feature selects a detection type.
type Feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

// AnnotateResponse is the response envelope.
type AnnotateResponse struct {
	Responses []AnnotateImageResponse `json:"responses"`
	Error     *APIError               `json:"error,omitempty"`
}

// AnnotateImageResponse holds the annotations for one image.
type AnnotateImageResponse struct {
	TextAnnotations []TextAnnotation `json:"textAnnotations,omitempty"`
	Error           *APIError        `json:"error,omitempty"`
}

// TextAnnotation is one detected text block. The first entry carries the
// full detected text in Description.
type TextAnnotation struct {
	Locale      string `json:"locale,omitempty"`
	Description string `json:"description"`
}

// APIError is the service error envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// Config holds Cloud Vision client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}
