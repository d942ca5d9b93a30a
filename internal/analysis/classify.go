package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/nitin85058/VEYA/internal/logging"
	"github.com/nitin85058/VEYA/internal/vlm"
)

// Classify identifies the equipment type shown in the image. The response
// is matched case-insensitively against Categories; unrecognized answers
// fall back to CategoryFallback. Transport errors propagate so the caller
// can abort the analysis.
func Classify(ctx context.Context, client vlm.Client, img vlm.Image) (string, error) {
	prompt := classifyPrompt()

	response, err := client.Describe(ctx, prompt, img)
	if err != nil {
		return "", fmt.Errorf("classification failed: %w", err)
	}

	// First line only; models occasionally append commentary
	answer := strings.TrimSpace(response)
	if i := strings.IndexByte(answer, '\n'); i >= 0 {
		answer = strings.TrimSpace(answer[:i])
	}
	answer = strings.Trim(answer, `"'.`)

	for _, category := range Categories {
		if strings.EqualFold(answer, category) {
			logging.Analysis("classify: %q", category)
			return category, nil
		}
	}

	logging.AnalysisWarn("classify: unrecognized answer %q, using %q", answer, CategoryFallback)
	return CategoryFallback, nil
}

func classifyPrompt() string {
	var sb strings.Builder
	sb.WriteString("Classify this industrial equipment image into exactly ONE of these categories:\n")
	for _, category := range Categories {
		sb.WriteString("- ")
		sb.WriteString(category)
		sb.WriteByte('\n')
	}
	sb.WriteString("\nLook at the shape, components, and visible features. Return ONLY the category name, nothing else.")
	return sb.String()
}
