// Package imaging validates uploaded equipment photos and reads their
// basic metadata. Only JPEG and PNG are accepted; both decoders are
// registered here so callers can stay format-agnostic.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/nitin85058/VEYA/internal/types"
)

// allowedExtensions are the upload formats the analyzer accepts.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ValidateName checks the filename extension against the accepted formats.
func ValidateName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported image type %q (allowed: jpg, jpeg, png)", ext)
	}
	return nil
}

// Validate checks the raw upload: non-empty, within the size cap, and
// decodable as an image header. Extension/content mismatches are
// tolerated; the decoded format decides how the image is sent onward.
func Validate(data []byte, maxBytes int64) error {
	if len(data) == 0 {
		return fmt.Errorf("empty image upload")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return fmt.Errorf("image too large: %d bytes (limit %d)", len(data), maxBytes)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("unreadable image: %w", err)
	}
	return nil
}

// Metadata reads dimensions and format from the image header.
func Metadata(data []byte) (types.ImageMeta, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return types.ImageMeta{}, fmt.Errorf("decode image header: %w", err)
	}
	return types.ImageMeta{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		Bytes:  len(data),
	}, nil
}

// MIME returns the media type for the cloud payloads. Content sniffing
// wins over the filename; the extension is only a fallback for images
// whose header did not decode.
func MIME(name string, data []byte) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		switch format {
		case "png":
			return "image/png"
		case "jpeg":
			return "image/jpeg"
		}
	}
	if strings.ToLower(filepath.Ext(name)) == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}
