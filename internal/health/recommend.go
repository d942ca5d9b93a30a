package health

import (
	"strings"

	"github.com/nitin85058/VEYA/internal/types"
)

// damageActions maps damage keywords to service actions. Slice, not map:
// the first keyword contained in an observation wins and output order
// stays deterministic.
var damageActions = []struct {
	keyword string
	action  string
}{
	{"burn marks", "Replace damaged components and inspect electrical connections"},
	{"rust", "Apply anti-corrosion treatment and check for moisture ingress"},
	{"loose wires", "Tighten all electrical connections and secure wire harnesses"},
	{"overheating", "Clean cooling surfaces and check ventilation"},
	{"broken display", "Replace display unit if LCD/LED indicators are critical"},
}

// Recommendations builds the service action list for one record: checks
// specific to the equipment type, actions for each detected damage, and
// an urgency line for low scores. Duplicates are removed preserving first
// occurrence.
func Recommendations(record types.EquipmentRecord, damages []string, score int) []string {
	var recommendations []string

	equipmentType := strings.ToLower(record.EquipmentType)
	if strings.Contains(equipmentType, "ups") || strings.Contains(equipmentType, "inverter") {
		recommendations = append(recommendations,
			"Schedule battery capacity test",
			"Check cooling fan operation")
	}
	if strings.Contains(equipmentType, "transformer") {
		recommendations = append(recommendations,
			"Check insulation resistance",
			"Verify oil levels and quality")
	}
	if strings.Contains(equipmentType, "battery") {
		recommendations = append(recommendations,
			"Check individual cell voltages",
			"Test specific gravity of electrolyte")
	}

	for _, damage := range damages {
		lower := strings.ToLower(damage)
		for _, da := range damageActions {
			if strings.Contains(lower, da.keyword) {
				recommendations = append(recommendations, da.action)
				break
			}
		}
	}

	if score < 60 {
		recommendations = append([]string{"URGENT: Schedule professional technician inspection"}, recommendations...)
	} else if score < 80 {
		recommendations = append([]string{"Schedule preventive maintenance within 30 days"}, recommendations...)
	}

	return dedupe(recommendations)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
