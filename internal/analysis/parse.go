package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nitin85058/VEYA/internal/logging"
	"github.com/nitin85058/VEYA/internal/types"
	"github.com/nitin85058/VEYA/internal/vlm"
)

// parsedFields is the JSON shape requested from the model. Confidence is
// deliberately loose: models answer with either a number or high/medium/low.
type parsedFields struct {
	EquipmentType  string `json:"equipment_type"`
	Manufacturer   string `json:"manufacturer"`
	ModelNumber    string `json:"model_number"`
	SerialNumber   string `json:"serial_number"`
	Specifications struct {
		Voltage          string `json:"voltage"`
		Current          string `json:"current"`
		Frequency        string `json:"frequency"`
		TemperatureRange string `json:"temperature_range"`
		PowerRating      string `json:"power_rating"`
	} `json:"specifications"`
	Condition         string   `json:"condition"`
	OperationalStatus string   `json:"operational_status"`
	DetectedDamages   []string `json:"detected_damages"`
	ExtractedText     string   `json:"extracted_text"`
	Confidence        any      `json:"confidence"`
}

// ParseFields extracts structured equipment fields by sending the image
// and its OCR text to the model, then merging regex extraction into any
// gaps. The call never fails: on model or JSON errors the record degrades
// to regex-only extraction. The category from classification owns
// equipment_type regardless of what the model echoes, and damage
// observations from the model's parse are discarded (damage detection owns
// those).
func ParseFields(ctx context.Context, client vlm.Client, img vlm.Image, category string, damages []string, ocrText string) types.EquipmentRecord {
	fallback := ExtractFromText(ocrText)
	fallback.EquipmentType = category

	response, err := client.DescribeJSON(ctx, parsePrompt(category, damages, ocrText), img)
	if err != nil {
		logging.AnalysisWarn("parse: model call failed, using regex extraction: %v", err)
		return fallback
	}

	raw := vlm.ExtractObject(response)
	if raw == "" {
		logging.AnalysisWarn("parse: no JSON object in response (%d bytes), using regex extraction", len(response))
		return fallback
	}

	var parsed parsedFields
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		logging.AnalysisWarn("parse: unparsable object, using regex extraction: %v", err)
		return fallback
	}

	record := types.EquipmentRecord{
		EquipmentType:     category,
		Manufacturer:      cleanField(parsed.Manufacturer),
		ModelNumber:       cleanField(parsed.ModelNumber),
		SerialNumber:      cleanField(parsed.SerialNumber),
		Condition:         cleanField(parsed.Condition),
		OperationalStatus: cleanField(parsed.OperationalStatus),
		ExtractedText:     ocrText,
		Confidence:        coerceConfidence(parsed.Confidence),
	}
	record.Specifications = types.Specifications{
		Voltage:          cleanField(parsed.Specifications.Voltage),
		Current:          cleanField(parsed.Specifications.Current),
		Frequency:        cleanField(parsed.Specifications.Frequency),
		TemperatureRange: cleanField(parsed.Specifications.TemperatureRange),
		PowerRating:      cleanField(parsed.Specifications.PowerRating),
	}

	mergeRecord(&record, fallback)
	logging.Analysis("parse: model fields merged with regex extraction")
	return record
}

// mergeRecord fills empty fields of record from the regex extraction.
// Compliance marks and the age estimate always come from the text scan;
// the model is not asked for them.
func mergeRecord(record *types.EquipmentRecord, extracted types.EquipmentRecord) {
	if record.Manufacturer == "" {
		record.Manufacturer = extracted.Manufacturer
	}
	if record.ModelNumber == "" {
		record.ModelNumber = extracted.ModelNumber
	}
	if record.SerialNumber == "" {
		record.SerialNumber = extracted.SerialNumber
	}
	if record.Specifications.Voltage == "" {
		record.Specifications.Voltage = extracted.Specifications.Voltage
	}
	if record.Specifications.Current == "" {
		record.Specifications.Current = extracted.Specifications.Current
	}
	if record.Specifications.Frequency == "" {
		record.Specifications.Frequency = extracted.Specifications.Frequency
	}
	if record.Specifications.TemperatureRange == "" {
		record.Specifications.TemperatureRange = extracted.Specifications.TemperatureRange
	}
	if record.Specifications.PowerRating == "" {
		record.Specifications.PowerRating = extracted.Specifications.PowerRating
	}
	if record.Condition == "" {
		record.Condition = extracted.Condition
		record.ConditionNotes = extracted.ConditionNotes
	}
	if record.OperationalStatus == "" {
		record.OperationalStatus = extracted.OperationalStatus
	}
	if record.Confidence == 0 {
		record.Confidence = extracted.Confidence
	}
	record.ComplianceMarks = extracted.ComplianceMarks
	record.AgeEstimate = extracted.AgeEstimate
}

// cleanField trims a model-provided string and drops schema placeholders
// the model sometimes echoes back verbatim.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "string") || strings.EqualFold(s, "unknown") {
		return ""
	}
	return s
}

// coerceConfidence accepts either a 0..1 number or a high/medium/low word.
func coerceConfidence(v any) float64 {
	switch c := v.(type) {
	case float64:
		if c < 0 {
			return 0
		}
		if c > 1 {
			return 1
		}
		return c
	case string:
		switch strings.ToLower(strings.TrimSpace(c)) {
		case "high":
			return 0.9
		case "medium":
			return 0.6
		case "low":
			return 0.3
		}
	}
	return 0
}

func parsePrompt(category string, damages []string, ocrText string) string {
	damageList := "None detected"
	if len(damages) > 0 {
		damageList = strings.Join(damages, ", ")
	}

	var sb strings.Builder
	sb.WriteString("Analyze this image of industrial electronic equipment and the OCR text read from it, then extract structured information.\n\n")
	fmt.Fprintf(&sb, "Equipment Type: %s\n", category)
	fmt.Fprintf(&sb, "Detected Damages: %s\n\n", damageList)
	fmt.Fprintf(&sb, "OCR Text:\n%s\n\n", ocrOrPlaceholder(ocrText))
	sb.WriteString(`Provide a JSON response with the following structure:
{
    "equipment_type": "` + category + `",
    "manufacturer": "...",
    "model_number": "...",
    "serial_number": "...",
    "specifications": {
        "voltage": "...",
        "current": "...",
        "frequency": "...",
        "temperature_range": "...",
        "power_rating": "..."
    },
    "condition": "good/fair/poor based on damages, image, and text",
    "operational_status": "functional/limited/non-functional based on damages",
    "extracted_text": "...",
    "confidence": 0.0
}

Consider the detected damages when assessing condition and operational status.
Fill in as many fields as possible. Leave fields empty if information is not available.`)
	return sb.String()
}

func ocrOrPlaceholder(ocrText string) string {
	if strings.TrimSpace(ocrText) == "" {
		return "(no text detected)"
	}
	return ocrText
}
