package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nitin85058/VEYA/internal/vlm"
)

const nameplateOCR = "SIEMENS\nMODEL: SITOP-500\nSERIAL: X99-1234\n230V 50HZ 2.5A"

func TestParseFields_ModelResponseMergedWithRegex(t *testing.T) {
	// Model fills some fields, leaves manufacturer and frequency empty;
	// regex extraction should fill those from the OCR text.
	response := `{
		"equipment_type": "Industrial PCB",
		"manufacturer": "",
		"model_number": "SITOP-500",
		"serial_number": "X99-1234",
		"specifications": {"voltage": "230 V AC", "current": "2.5 A", "frequency": "", "temperature_range": "", "power_rating": ""},
		"condition": "good",
		"operational_status": "functional",
		"detected_damages": ["hallucinated damage"],
		"extracted_text": "echo",
		"confidence": 0.85
	}`
	client := &fakeVLM{describeJSONFn: scripted(response, nil)}

	record := ParseFields(context.Background(), client, vlm.Image{}, "UPS / Inverter", nil, nameplateOCR)

	if record.EquipmentType != "UPS / Inverter" {
		t.Errorf("classification should own equipment_type, got %q", record.EquipmentType)
	}
	if record.Manufacturer != "Siemens" {
		t.Errorf("expected regex to fill manufacturer, got %q", record.Manufacturer)
	}
	if record.ModelNumber != "SITOP-500" {
		t.Errorf("expected model from response, got %q", record.ModelNumber)
	}
	if record.Specifications.Voltage != "230 V AC" {
		t.Errorf("model voltage should win over regex, got %q", record.Specifications.Voltage)
	}
	if record.Specifications.Frequency != "50Hz" {
		t.Errorf("expected regex to fill frequency, got %q", record.Specifications.Frequency)
	}
	if record.ExtractedText != nameplateOCR {
		t.Error("extracted_text should be the real OCR text, not the model echo")
	}
	if record.Confidence != 0.85 {
		t.Errorf("expected confidence 0.85, got %v", record.Confidence)
	}
}

func TestParseFields_ModelFailureDegradesToRegex(t *testing.T) {
	client := &fakeVLM{describeJSONFn: scripted("", errors.New("quota exceeded"))}

	record := ParseFields(context.Background(), client, vlm.Image{}, "Transformer", nil, nameplateOCR)

	if record.EquipmentType != "Transformer" {
		t.Errorf("expected category on fallback record, got %q", record.EquipmentType)
	}
	if record.Manufacturer != "Siemens" {
		t.Errorf("expected regex manufacturer, got %q", record.Manufacturer)
	}
	if record.ModelNumber != "SITOP-500" {
		t.Errorf("expected regex model, got %q", record.ModelNumber)
	}
	if record.SerialNumber != "X99-1234" {
		t.Errorf("expected regex serial, got %q", record.SerialNumber)
	}
	if record.Specifications.Voltage != "230V" {
		t.Errorf("expected regex voltage, got %q", record.Specifications.Voltage)
	}
}

func TestParseFields_UnparsableJSONDegradesToRegex(t *testing.T) {
	client := &fakeVLM{describeJSONFn: scripted("I cannot produce JSON today.", nil)}

	record := ParseFields(context.Background(), client, vlm.Image{}, "Transformer", nil, nameplateOCR)

	if record.Manufacturer != "Siemens" || record.ModelNumber != "SITOP-500" {
		t.Errorf("expected regex fallback record, got %+v", record)
	}
}

func TestParseFields_WordConfidenceCoerced(t *testing.T) {
	response := `{"manufacturer": "ABB", "confidence": "high"}`
	client := &fakeVLM{describeJSONFn: scripted(response, nil)}

	record := ParseFields(context.Background(), client, vlm.Image{}, "Transformer", nil, "")

	if record.Confidence != 0.9 {
		t.Errorf("expected high => 0.9, got %v", record.Confidence)
	}
}

func TestParseFields_PlaceholderFieldsDropped(t *testing.T) {
	response := `{"manufacturer": "string", "model_number": "string", "condition": "Unknown"}`
	client := &fakeVLM{describeJSONFn: scripted(response, nil)}

	record := ParseFields(context.Background(), client, vlm.Image{}, "Transformer", nil, "")

	if record.Manufacturer != "" {
		t.Errorf("schema placeholder should be dropped, got %q", record.Manufacturer)
	}
	if record.ModelNumber != "" {
		t.Errorf("schema placeholder should be dropped, got %q", record.ModelNumber)
	}
}

func TestParseFields_PromptCarriesContext(t *testing.T) {
	client := &fakeVLM{describeJSONFn: scripted("{}", nil)}

	ParseFields(context.Background(), client, vlm.Image{}, "Battery Packs", []string{"corrosion", "loose wires"}, "NP7-12 12V 7AH")

	for _, want := range []string{"Battery Packs", "corrosion, loose wires", "NP7-12 12V 7AH"} {
		if !strings.Contains(client.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestParseFields_ComplianceAndAgeAlwaysFromText(t *testing.T) {
	response := `{"manufacturer": "Fuji", "confidence": 0.7}`
	client := &fakeVLM{describeJSONFn: scripted(response, nil)}

	ocr := "ISO 9001 CERTIFIED\nUL LISTED\nDIGITAL DISPLAY"
	record := ParseFields(context.Background(), client, vlm.Image{}, "Meter / Gauge", nil, ocr)

	wantMarks := map[string]bool{"ISO": true, "UL": true}
	for _, mark := range record.ComplianceMarks {
		delete(wantMarks, mark)
	}
	if len(wantMarks) != 0 {
		t.Errorf("missing compliance marks %v in %v", wantMarks, record.ComplianceMarks)
	}
	if record.AgeEstimate != "Modern (< 5 years)" {
		t.Errorf("expected modern age estimate, got %q", record.AgeEstimate)
	}
}
