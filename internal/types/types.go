// Package types provides shared type definitions used across the analyzer
// packages. This package exists to break import cycles between analysis,
// health, and the server layers. Types here are foundational data
// structures with no complex dependencies.
package types

import "time"

// Specifications holds the electrical ratings read off a nameplate.
// Values stay as display strings ("230 V", "50 Hz") because the sources
// are free-form OCR and model output, not sensor readings.
type Specifications struct {
	Voltage          string `json:"voltage,omitempty" yaml:"voltage,omitempty"`
	Current          string `json:"current,omitempty" yaml:"current,omitempty"`
	Frequency        string `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	TemperatureRange string `json:"temperature_range,omitempty" yaml:"temperature_range,omitempty"`
	PowerRating      string `json:"power_rating,omitempty" yaml:"power_rating,omitempty"`
}

// Empty reports whether no specification field was filled.
func (s Specifications) Empty() bool {
	return s.Voltage == "" && s.Current == "" && s.Frequency == "" &&
		s.TemperatureRange == "" && s.PowerRating == ""
}

// EquipmentRecord is the structured result of field extraction for one
// image: the vision-model parse merged with regex extraction over the
// OCR text.
type EquipmentRecord struct {
	EquipmentType     string         `json:"equipment_type"`
	Manufacturer      string         `json:"manufacturer,omitempty"`
	ModelNumber       string         `json:"model_number,omitempty"`
	SerialNumber      string         `json:"serial_number,omitempty"`
	Specifications    Specifications `json:"specifications"`
	Condition         string         `json:"condition,omitempty"`
	ConditionNotes    string         `json:"condition_notes,omitempty"`
	OperationalStatus string         `json:"operational_status,omitempty"`
	ComplianceMarks   []string       `json:"compliance_marks,omitempty"`
	AgeEstimate       string         `json:"age_estimate,omitempty"`
	ExtractedText     string         `json:"extracted_text,omitempty"`
	Confidence        float64        `json:"confidence,omitempty"`
}

// Deduction is one applied penalty in a health score breakdown.
type Deduction struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// TrendPoint is one month of the simulated degradation series.
type TrendPoint struct {
	Month string `json:"month"`
	Score int    `json:"score"`
}

// HealthEvaluation is the scored assessment for one analysis.
type HealthEvaluation struct {
	Score               int          `json:"score"`
	Status              string       `json:"status"`
	RiskLevel           string       `json:"risk_level"`
	Action              string       `json:"action"`
	Breakdown           []Deduction  `json:"breakdown,omitempty"`
	MaintenanceSchedule string       `json:"maintenance_schedule"`
	EstimatedLifespan   string       `json:"estimated_lifespan"`
	CostBand            string       `json:"cost_band"`
	Recommendations     []string     `json:"recommendations,omitempty"`
	Trend               []TrendPoint `json:"trend,omitempty"`
}

// ImageMeta describes the uploaded image itself.
type ImageMeta struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Bytes  int    `json:"bytes"`
}

// Analysis is the complete result for one uploaded image. Instances are
// treated as immutable once stored; the session store hands the same
// pointer to every reader.
type Analysis struct {
	ID         string           `json:"id"`
	Filename   string           `json:"filename"`
	CapturedAt time.Time        `json:"captured_at"`
	Image      ImageMeta        `json:"image"`
	Category   string           `json:"category"`
	Damages    []string         `json:"damages,omitempty"`
	OCRText    string           `json:"ocr_text,omitempty"`
	Record     EquipmentRecord  `json:"equipment"`
	Health     HealthEvaluation `json:"health"`
}

// Summary is the list-view projection of an Analysis.
type Summary struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	CapturedAt time.Time `json:"captured_at"`
	Category   string    `json:"category"`
	Score      int       `json:"score"`
	Status     string    `json:"status"`
}

// Summarize projects an Analysis into its list form.
func (a *Analysis) Summarize() Summary {
	return Summary{
		ID:         a.ID,
		Filename:   a.Filename,
		CapturedAt: a.CapturedAt,
		Category:   a.Category,
		Score:      a.Health.Score,
		Status:     a.Health.Status,
	}
}
