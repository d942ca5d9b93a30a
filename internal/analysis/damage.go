package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nitin85058/VEYA/internal/logging"
	"github.com/nitin85058/VEYA/internal/vlm"
)

// DetectDamage scans the image for visible physical damage and returns the
// model's observations. Detection is best-effort: an unparsable response
// yields an empty list, only transport errors propagate.
func DetectDamage(ctx context.Context, client vlm.Client, img vlm.Image, category string) ([]string, error) {
	prompt := damagePrompt(category)

	response, err := client.DescribeJSON(ctx, prompt, img)
	if err != nil {
		return nil, fmt.Errorf("damage detection failed: %w", err)
	}

	raw := vlm.ExtractArray(response)
	if raw == "" {
		logging.AnalysisWarn("damage: no JSON array in response (%d bytes)", len(response))
		return []string{}, nil
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logging.AnalysisWarn("damage: unparsable array: %v", err)
		return []string{}, nil
	}

	damages := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		damages = append(damages, s)
	}

	logging.Analysis("damage: %d observation(s)", len(damages))
	return damages, nil
}

func damagePrompt(category string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this %s equipment image for physical damage and faults.\n\n", category)
	sb.WriteString("Look for these specific damage types:\n")
	for _, damage := range DamageVocabulary {
		sb.WriteString("- ")
		sb.WriteString(damage)
		sb.WriteByte('\n')
	}
	sb.WriteString("\nReturn a JSON array of detected damage types. If no damage found, return empty array [].\n")
	sb.WriteString(`Format: ["damage_type1", "damage_type2", ...]` + "\n\n")
	sb.WriteString("Be specific about what you see - look for visual evidence like discoloration, burns, corrosion, broken parts, loose connections, water damage, overheating signs, etc.")
	return sb.String()
}
