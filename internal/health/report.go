package health

import (
	"github.com/nitin85058/VEYA/internal/types"
)

// Report maps a score to its status, risk level, and recommended action
// band. Bounds are inclusive from above: 80 is still Excellent.
func Report(score int) (status, risk, action string) {
	switch {
	case score >= 80:
		return "Excellent", "Low", "Continue routine maintenance"
	case score >= 60:
		return "Good", "Low-Medium", "Schedule routine inspection"
	case score >= 40:
		return "Fair", "Medium", "Schedule maintenance soon"
	case score >= 20:
		return "Poor", "High", "Immediate attention required"
	default:
		return "Critical", "Critical", "Immediate shutdown and inspection recommended"
	}
}

// MaintenanceSchedule estimates the time window for the next service.
func MaintenanceSchedule(score int) string {
	switch {
	case score < 40:
		return "Immediate - Within 1 week"
	case score < 60:
		return "Urgent - Within 2 weeks"
	case score < 80:
		return "Scheduled - Within 1 month"
	default:
		return "Routine - Within 6 months"
	}
}

// Lifespan estimates the remaining useful life.
func Lifespan(score int) string {
	switch {
	case score >= 80:
		return "5+ years (excellent condition)"
	case score >= 60:
		return "2-5 years (good condition)"
	case score >= 40:
		return "1-2 years (needs attention)"
	case score >= 20:
		return "6-12 months (critical)"
	default:
		return "< 6 months (replacement recommended)"
	}
}

// CostBand estimates the likely service or replacement cost.
func CostBand(score int) string {
	switch {
	case score < 40:
		return "$1,500 - $3,000 (replacement advised)"
	case score < 60:
		return "$500 - $1,500"
	case score < 80:
		return "$100 - $500"
	default:
		return "$50 - $150"
	}
}

// Evaluate runs the full assessment for one analysis: score, bands,
// recommendations, and the degradation trend. analysisID seeds the trend
// so repeated evaluations of the same analysis draw the same curve.
func Evaluate(analysisID string, record types.EquipmentRecord, damages []string, rules Rules) types.HealthEvaluation {
	score, breakdown := Score(record, damages, rules)
	status, risk, action := Report(score)

	return types.HealthEvaluation{
		Score:               score,
		Status:              status,
		RiskLevel:           risk,
		Action:              action,
		Breakdown:           breakdown,
		MaintenanceSchedule: MaintenanceSchedule(score),
		EstimatedLifespan:   Lifespan(score),
		CostBand:            CostBand(score),
		Recommendations:     Recommendations(record, damages, score),
		Trend:               Trend(analysisID, score),
	}
}
