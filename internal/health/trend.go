package health

import (
	"hash/fnv"
	"math/rand"

	"github.com/nitin85058/VEYA/internal/types"
)

var trendMonths = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Trend simulates twelve months of degradation history ending at the
// current score. No real history exists for a one-shot photo analysis, so
// the series walks down from a plausibly healthier past. The analysis ID
// seeds the walk: reloading the dashboard redraws the identical curve.
func Trend(analysisID string, score int) []types.TrendPoint {
	h := fnv.New64a()
	h.Write([]byte(analysisID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	base := score + 5 + rng.Intn(11)
	if base > 95 {
		base = 95
	}

	points := make([]types.TrendPoint, 0, len(trendMonths)+1)
	for i, month := range trendMonths {
		var s int
		if i < 9 {
			// Gradual decline through the first nine months
			s = base - rng.Intn(6) - i
		} else {
			// Last quarter hovers around the current level
			s = score + rng.Intn(7) - 3
		}
		points = append(points, types.TrendPoint{Month: month, Score: clampScore(s)})
	}

	return append(points, types.TrendPoint{Month: "Current", Score: clampScore(score)})
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
