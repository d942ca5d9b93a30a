package analysis

import (
	"testing"
)

func TestExtractFromText_Nameplate(t *testing.T) {
	ocr := "SCHNEIDER ELECTRIC\nMODEL # ATV-320\nS/N: 2021-0456\n400V 50HZ\n7.5 KW\n-10 TO 50 °C"

	record := ExtractFromText(ocr)

	if record.Manufacturer != "Schneider" {
		t.Errorf("manufacturer = %q, want Schneider", record.Manufacturer)
	}
	if record.ModelNumber != "ATV-320" {
		t.Errorf("model = %q, want ATV-320", record.ModelNumber)
	}
	if record.SerialNumber != "2021-0456" {
		t.Errorf("serial = %q, want 2021-0456", record.SerialNumber)
	}
	if record.Specifications.Voltage != "400V" {
		t.Errorf("voltage = %q, want 400V", record.Specifications.Voltage)
	}
	if record.Specifications.Frequency != "50Hz" {
		t.Errorf("frequency = %q, want 50Hz", record.Specifications.Frequency)
	}
	if record.Specifications.PowerRating != "7.5KW" {
		t.Errorf("power = %q, want 7.5KW", record.Specifications.PowerRating)
	}
	if record.Specifications.TemperatureRange != "-10°C to 50°C" {
		t.Errorf("temperature = %q, want -10°C to 50°C", record.Specifications.TemperatureRange)
	}
	if record.ExtractedText != ocr {
		t.Error("extracted text not preserved")
	}
}

func TestExtractFromText_FieldVariants(t *testing.T) {
	tests := []struct {
		name  string
		ocr   string
		check func(t *testing.T, r recordFields)
	}{
		{
			name: "MDL and SN forms",
			ocr:  "MDL PQR88\nSN 445-B",
			check: func(t *testing.T, r recordFields) {
				if r.model != "PQR88" {
					t.Errorf("model = %q, want PQR88", r.model)
				}
				if r.serial != "445-B" {
					t.Errorf("serial = %q, want 445-B", r.serial)
				}
			},
		},
		{
			name: "Voltage with unit words",
			ocr:  "INPUT 24 VOLTS",
			check: func(t *testing.T, r recordFields) {
				if r.voltage != "24V" {
					t.Errorf("voltage = %q, want 24V", r.voltage)
				}
			},
		},
		{
			name: "Decimal current with AMPS",
			ocr:  "RATED 3.15 AMPS",
			check: func(t *testing.T, r recordFields) {
				if r.current != "3.15A" {
					t.Errorf("current = %q, want 3.15A", r.current)
				}
			},
		},
		{
			name: "Megawatt rating",
			ocr:  "OUTPUT 2 MW",
			check: func(t *testing.T, r recordFields) {
				if r.power != "2MW" {
					t.Errorf("power = %q, want 2MW", r.power)
				}
			},
		},
		{
			name: "Temperature with tilde",
			ocr:  "OPERATING 0~40C",
			check: func(t *testing.T, r recordFields) {
				if r.temp != "0°C to 40°C" {
					t.Errorf("temperature = %q, want 0°C to 40°C", r.temp)
				}
			},
		},
		{
			name: "Lowercase text is normalized",
			ocr:  "toshiba\nmodel: tx-100",
			check: func(t *testing.T, r recordFields) {
				if r.manufacturer != "Toshiba" {
					t.Errorf("manufacturer = %q, want Toshiba", r.manufacturer)
				}
				if r.model != "TX-100" {
					t.Errorf("model = %q, want TX-100", r.model)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := ExtractFromText(tt.ocr)
			tt.check(t, recordFields{
				manufacturer: record.Manufacturer,
				model:        record.ModelNumber,
				serial:       record.SerialNumber,
				voltage:      record.Specifications.Voltage,
				current:      record.Specifications.Current,
				power:        record.Specifications.PowerRating,
				temp:         record.Specifications.TemperatureRange,
			})
		})
	}
}

// recordFields flattens the nested record for the variant table.
type recordFields struct {
	manufacturer, model, serial   string
	voltage, current, power, temp string
}

func TestExtractFromText_ConditionBranches(t *testing.T) {
	tests := []struct {
		name      string
		ocr       string
		condition string
		status    string
	}{
		{"New equipment", "FACTORY SEALED NEVER USED", "Good", "Fully functional - New equipment"},
		{"Worn equipment", "LAST SERVICE 2019", "Fair", "Limited functionality - May need maintenance"},
		{"Faulty equipment", "HOUSING DAMAGED", "Poor", "Non-functional - Requires repair"},
		{"Readable specs only", "VOLTAGE RATING PLATE", "Good", "Functional - Based on available specs"},
		{"Nothing to go on", "XYZZY", "Unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := ExtractFromText(tt.ocr)
			if record.Condition != tt.condition {
				t.Errorf("condition = %q, want %q", record.Condition, tt.condition)
			}
			if record.OperationalStatus != tt.status {
				t.Errorf("status = %q, want %q", record.OperationalStatus, tt.status)
			}
		})
	}
}

func TestExtractFromText_ComplianceAndAge(t *testing.T) {
	record := ExtractFromText("ROHS COMPLIANT\nBIS REGISTERED\nANALOG METER")

	foundRoHS, foundBIS := false, false
	for _, mark := range record.ComplianceMarks {
		switch mark {
		case "RoHS":
			foundRoHS = true
		case "BIS":
			foundBIS = true
		}
	}
	if !foundRoHS || !foundBIS {
		t.Errorf("compliance marks = %v, want RoHS and BIS", record.ComplianceMarks)
	}
	if record.AgeEstimate != "Intermediate (5-15 years)" {
		t.Errorf("age = %q, want Intermediate (5-15 years)", record.AgeEstimate)
	}
}

func TestExtractFromText_Empty(t *testing.T) {
	record := ExtractFromText("   \n  ")
	if record.Manufacturer != "" || record.ModelNumber != "" || !record.Specifications.Empty() {
		t.Errorf("expected empty record, got %+v", record)
	}
	if record.Condition != "" {
		t.Errorf("empty text should not be assessed, got condition %q", record.Condition)
	}
}
