// Package export renders completed analyses into downloadable reports: an
// indented JSON document of the full analysis and a plain-text health
// report. Download filenames derive from the equipment type.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nitin85058/VEYA/internal/logging"
	"github.com/nitin85058/VEYA/internal/types"
)

// JSONReport renders the full analysis as indented JSON.
func JSONReport(a *types.Analysis) ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render JSON report: %w", err)
	}
	logging.ExportDebug("JSON report for %s: %d bytes", a.ID, len(data))
	return data, nil
}

// TextReport renders the plain-text health report.
func TextReport(a *types.Analysis) string {
	var b strings.Builder

	b.WriteString("INDUSTRIAL EQUIPMENT HEALTH ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	b.WriteString("EQUIPMENT INFORMATION:\n")
	fmt.Fprintf(&b, "- Type: %s\n", orUnknown(a.Record.EquipmentType))
	fmt.Fprintf(&b, "- Manufacturer: %s\n", orUnknown(a.Record.Manufacturer))
	fmt.Fprintf(&b, "- Model: %s\n", orUnknown(a.Record.ModelNumber))
	fmt.Fprintf(&b, "- Serial Number: %s\n", orUnknown(a.Record.SerialNumber))

	b.WriteString("\nHEALTH ASSESSMENT:\n")
	fmt.Fprintf(&b, "- Overall Health Score: %d%%\n", a.Health.Score)
	fmt.Fprintf(&b, "- Status: %s\n", a.Health.Status)
	fmt.Fprintf(&b, "- Risk Level: %s\n", a.Health.RiskLevel)
	fmt.Fprintf(&b, "- Condition: %s\n", orUnknown(a.Record.Condition))
	fmt.Fprintf(&b, "- Damages Detected: %s\n", damageList(a.Damages))

	b.WriteString("\nTECHNICAL SPECIFICATIONS:\n")
	specs := a.Record.Specifications
	writeSpec(&b, "Voltage", specs.Voltage)
	writeSpec(&b, "Current", specs.Current)
	writeSpec(&b, "Frequency", specs.Frequency)
	writeSpec(&b, "Temperature Range", specs.TemperatureRange)
	writeSpec(&b, "Power Rating", specs.PowerRating)

	b.WriteString("\nRECOMMENDATIONS:\n")
	switch score := a.Health.Score; {
	case score < 40:
		b.WriteString("- CRITICAL: Immediate professional inspection required\n")
		b.WriteString("- Consider equipment replacement if cost of repair > 50% of new equipment\n")
	case score < 60:
		b.WriteString("- URGENT: Schedule repair within 1 week\n")
		b.WriteString("- Address all detected damages before further use\n")
	case score < 80:
		b.WriteString("- ATTENTION: Schedule maintenance within 30 days\n")
		b.WriteString("- Monitor condition during next usage cycle\n")
	default:
		b.WriteString("- GOOD: Continue routine maintenance schedule\n")
		b.WriteString("- Equipment in good operational condition\n")
	}
	for _, rec := range a.Health.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	b.WriteString("\nMAINTENANCE PLAN:\n")
	fmt.Fprintf(&b, "- Schedule: %s\n", a.Health.MaintenanceSchedule)
	fmt.Fprintf(&b, "- Estimated Lifespan: %s\n", a.Health.EstimatedLifespan)
	fmt.Fprintf(&b, "- Estimated Repair Cost: %s\n", a.Health.CostBand)

	fmt.Fprintf(&b, "\nReport Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	return b.String()
}

// JSONFilename returns the download name for the JSON report.
func JSONFilename(a *types.Analysis) string {
	return sanitizeName(a.Record.EquipmentType) + "_analysis.json"
}

// TextFilename returns the download name for the text report.
func TextFilename(a *types.Analysis) string {
	return sanitizeName(a.Record.EquipmentType) + "_health_report.txt"
}

var nameSanitizer = strings.NewReplacer("/", "_", " ", "_")

func sanitizeName(equipmentType string) string {
	if equipmentType == "" {
		return "Equipment"
	}
	return nameSanitizer.Replace(equipmentType)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func damageList(damages []string) string {
	if len(damages) == 0 {
		return "None"
	}
	return strings.Join(damages, ", ")
}

func writeSpec(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}
