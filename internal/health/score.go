package health

import (
	"strings"

	"github.com/nitin85058/VEYA/internal/types"
)

// Score computes the 0-100 health score for one equipment record and its
// damage observations, returning the applied deductions for the dashboard
// breakdown chart. Each observation pays the penalty of the first rule
// keyword it contains; observations matching no keyword pay the
// unknown-damage penalty.
func Score(record types.EquipmentRecord, damages []string, rules Rules) (int, []types.Deduction) {
	score := 100
	var breakdown []types.Deduction

	deduct := func(label string, points int) {
		if points == 0 {
			return
		}
		score -= points
		breakdown = append(breakdown, types.Deduction{Label: label, Points: points})
	}

	for _, damage := range damages {
		lower := strings.ToLower(damage)
		matched := false
		for _, p := range rules.DamagePenalties {
			if strings.Contains(lower, strings.ToLower(p.Keyword)) {
				deduct(damage, p.Points)
				matched = true
				break
			}
		}
		if !matched {
			deduct(damage, rules.UnknownDamagePenalty)
		}
	}

	condition := strings.ToLower(record.Condition)
	if strings.Contains(condition, "poor") {
		deduct("poor condition", rules.PoorConditionPenalty)
	} else if strings.Contains(condition, "fair") {
		deduct("fair condition", rules.FairConditionPenalty)
	}

	operational := strings.ToLower(record.OperationalStatus)
	if strings.Contains(operational, "non-functional") || strings.Contains(operational, "malfunctioning") {
		deduct("non-functional status", rules.NonFunctionalPenalty)
	} else if strings.Contains(operational, "limited") || strings.Contains(operational, "intermittent") {
		deduct("limited functionality", rules.LimitedPenalty)
	}

	age := record.AgeEstimate
	if strings.Contains(strings.ToLower(age), "old") && strings.Contains(age, "> 15") {
		deduct("age-related wear", rules.OldAgePenalty)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, breakdown
}
