package analysis

import (
	"strings"

	"github.com/nitin85058/VEYA/internal/types"
)

// Keyword groups for text-only condition assessment, checked in order.
var (
	newKeywords   = []string{"new", "unused", "never used", "factory", "boxed"}
	wearKeywords  = []string{"used", "service", "maintenance"}
	faultKeywords = []string{"rust", "corrosion", "damaged", "broken", "faulty"}
	specKeywords  = []string{"voltage", "current", "power"}
)

// assessCondition fills condition, operational status, and confidence from
// OCR keywords. A readable nameplate with electrical specs counts as a
// weak positive signal.
func assessCondition(record *types.EquipmentRecord, ocrText string) {
	lower := strings.ToLower(ocrText)

	switch {
	case containsAny(lower, newKeywords):
		record.Condition = "Good"
		record.ConditionNotes = "Appears new/unused"
		record.OperationalStatus = "Fully functional - New equipment"
		record.Confidence = 0.6
	case containsAny(lower, wearKeywords):
		record.Condition = "Fair"
		record.ConditionNotes = "Shows signs of use"
		record.OperationalStatus = "Limited functionality - May need maintenance"
		record.Confidence = 0.6
	case containsAny(lower, faultKeywords):
		record.Condition = "Poor"
		record.ConditionNotes = "Visible damage/wear"
		record.OperationalStatus = "Non-functional - Requires repair"
		record.Confidence = 0.6
	case containsAny(lower, specKeywords):
		record.Condition = "Good"
		record.ConditionNotes = "Specifications readable"
		record.OperationalStatus = "Functional - Based on available specs"
		record.Confidence = 0.6
	default:
		record.Condition = "Unknown"
		record.ConditionNotes = "Not assessable from nameplate text"
		record.OperationalStatus = "Unknown"
		record.Confidence = 0.3
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// complianceMarks returns the certification marks found in the uppercased
// OCR text, in display casing.
func complianceMarks(upper string) []string {
	checks := []struct {
		match   string
		display string
	}{
		{"ISO", "ISO"},
		{"CE", "CE"},
		{"ROHS", "RoHS"},
		{"BIS", "BIS"},
		{"UL", "UL"},
	}

	var marks []string
	for _, c := range checks {
		if strings.Contains(upper, c.match) {
			marks = append(marks, c.display)
		}
	}
	return marks
}

// Technology-era indicators used for age estimation.
var (
	modernIndicators = []string{"LED", "DISPLAY", "DIGITAL", "MICROCONTROLLER"}
	midAgeIndicators = []string{"LCD", "ANALOG", "TRANSISTOR"}
	oldIndicators    = []string{"VACUUM TUBE", "MECHANICAL DIALS", "OUTDATED LABELS"}
)

// estimateAge guesses an age bracket from technology keywords in the
// uppercased OCR text. Modern indicators win over older ones.
func estimateAge(upper string) string {
	switch {
	case containsAny(upper, modernIndicators):
		return "Modern (< 5 years)"
	case containsAny(upper, midAgeIndicators):
		return "Intermediate (5-15 years)"
	case containsAny(upper, oldIndicators):
		return "Old (> 15 years)"
	default:
		return "Unknown"
	}
}
