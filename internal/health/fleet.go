package health

import (
	"sort"

	"github.com/nitin85058/VEYA/internal/types"
)

// FleetEntry is one analysis in the fleet ranking.
type FleetEntry struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Category    string `json:"category"`
	Score       int    `json:"score"`
	Status      string `json:"status"`
	DamageCount int    `json:"damage_count"`
}

// FleetSummary aggregates the fleet's health buckets.
type FleetSummary struct {
	Count               int     `json:"count"`
	AverageScore        float64 `json:"average_score"`
	HealthyCount        int     `json:"healthy_count"`
	NeedsAttentionCount int     `json:"needs_attention_count"`
	CriticalCount       int     `json:"critical_count"`
}

// FleetComparison ranks every stored analysis by health.
type FleetComparison struct {
	Ranking []FleetEntry `json:"ranking"`
	Summary FleetSummary `json:"summary"`
}

// Fleet compares the analyses of the current session: ranking sorted by
// score descending, bucket counts (healthy >= 80, needs attention 40-79,
// critical < 40), and the average score. Empty input yields a zero-value
// comparison.
func Fleet(analyses []*types.Analysis) FleetComparison {
	if len(analyses) == 0 {
		return FleetComparison{}
	}

	ranking := make([]FleetEntry, 0, len(analyses))
	var total int
	var summary FleetSummary

	for _, a := range analyses {
		score := a.Health.Score
		ranking = append(ranking, FleetEntry{
			ID:          a.ID,
			Filename:    a.Filename,
			Category:    a.Category,
			Score:       score,
			Status:      a.Health.Status,
			DamageCount: len(a.Damages),
		})

		total += score
		switch {
		case score >= 80:
			summary.HealthyCount++
		case score >= 40:
			summary.NeedsAttentionCount++
		default:
			summary.CriticalCount++
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})

	summary.Count = len(analyses)
	summary.AverageScore = float64(total) / float64(len(analyses))

	return FleetComparison{Ranking: ranking, Summary: summary}
}
