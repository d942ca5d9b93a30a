package analysis

import (
	"regexp"
	"strings"

	"github.com/nitin85058/VEYA/internal/types"
)

// Nameplate patterns applied to uppercased OCR lines. First hit wins per
// field.
var (
	modelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`MODEL\s*[#:]*\s*([A-Z0-9\-]+)`),
		regexp.MustCompile(`#([A-Z0-9\-]+)`),
		regexp.MustCompile(`MDL\s*([A-Z0-9\-]+)`),
	}
	serialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`SERIAL\s*[#:]*\s*([A-Z0-9\-]+)`),
		regexp.MustCompile(`SN\s*[#:]*\s*([A-Z0-9\-]+)`),
		regexp.MustCompile(`S/N\s*[#:]*\s*([A-Z0-9\-]+)`),
	}
	voltagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+(\.\d+)?)\s*V(OLTS?)?`),
		regexp.MustCompile(`(\d+(\.\d+)?)\s*VAC`),
		regexp.MustCompile(`(\d+(\.\d+)?)\s*VDC`),
	}
	currentPattern   = regexp.MustCompile(`(\d+(\.\d+)?)\s*A(MPS?)?`)
	frequencyPattern = regexp.MustCompile(`(\d+(\.\d+)?)\s*HZ`)
	powerPattern     = regexp.MustCompile(`(\d+(\.\d+)?)\s*(W|KW|MW)(ATTS?)?`)
	tempPattern      = regexp.MustCompile(`(-?\d+)\s*(TO|[-~])\s*(-?\d+)\s*°?C`)
)

// knownManufacturers maps uppercased brand names seen on industrial
// nameplates to their display form.
var knownManufacturers = []struct {
	match   string
	display string
}{
	{"SIEMENS", "Siemens"},
	{"ABB", "ABB"},
	{"GE", "GE"},
	{"ROCKWELL", "Rockwell"},
	{"HONEYWELL", "Honeywell"},
	{"SCHNEIDER", "Schneider"},
	{"MITSUBISHI", "Mitsubishi"},
	{"FUJI", "Fuji"},
	{"DELTA", "Delta"},
	{"TOSHIBA", "Toshiba"},
}

// ExtractFromText builds an equipment record from OCR text alone, without
// the vision model. It backs the structured parse step as its degradation
// path and fills fields the model left empty.
func ExtractFromText(ocrText string) types.EquipmentRecord {
	record := types.EquipmentRecord{ExtractedText: ocrText}
	if strings.TrimSpace(ocrText) == "" {
		return record
	}

	upper := strings.ToUpper(ocrText)

	for _, line := range strings.Split(upper, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if record.Manufacturer == "" {
			for _, m := range knownManufacturers {
				if strings.Contains(line, m.match) {
					record.Manufacturer = m.display
					break
				}
			}
		}

		if record.ModelNumber == "" {
			for _, p := range modelPatterns {
				if m := p.FindStringSubmatch(line); m != nil {
					record.ModelNumber = m[1]
					break
				}
			}
		}

		if record.SerialNumber == "" {
			for _, p := range serialPatterns {
				if m := p.FindStringSubmatch(line); m != nil {
					record.SerialNumber = m[1]
					break
				}
			}
		}

		if record.Specifications.Voltage == "" {
			for _, p := range voltagePatterns {
				if m := p.FindStringSubmatch(line); m != nil {
					record.Specifications.Voltage = m[1] + "V"
					break
				}
			}
		}
	}

	if m := currentPattern.FindStringSubmatch(upper); m != nil {
		record.Specifications.Current = m[1] + "A"
	}
	if m := frequencyPattern.FindStringSubmatch(upper); m != nil {
		record.Specifications.Frequency = m[1] + "Hz"
	}
	if m := powerPattern.FindStringSubmatch(upper); m != nil {
		record.Specifications.PowerRating = m[1] + m[3]
	}
	if m := tempPattern.FindStringSubmatch(upper); m != nil {
		record.Specifications.TemperatureRange = m[1] + "°C to " + m[3] + "°C"
	}

	record.ComplianceMarks = complianceMarks(upper)
	record.AgeEstimate = estimateAge(upper)
	assessCondition(&record, ocrText)

	return record
}
