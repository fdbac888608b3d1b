package scoring

import (
	"math"

	"github.com/omnifolio/influence-indexer/internal/domain"
)

// Influence model weights. The four single-quarter factors cover 0.70 of the
// full model; consistency and trend adjustments cover the rest.
const (
	weightSpendMagnitude = 0.30
	weightIssueBreadth   = 0.15
	weightGovReach       = 0.15
	weightLobbyistCount  = 0.10
	weightBaseTotal      = weightSpendMagnitude + weightIssueBreadth + weightGovReach + weightLobbyistCount

	// consistencyPerQuarter is awarded per consecutive active preceding quarter
	consistencyPerQuarter = 3.0
	consistencyLookback   = 6
	consistencyCap        = 15.0
)

// scoreQuarters runs the two scoring passes over metrics ordered oldest first:
// the per-quarter weighted composite, then the time-series adjustments that
// need the preceding quarters.
func scoreQuarters(metrics []domain.QuarterlyMetric) {
	for i := range metrics {
		metric := &metrics[i]
		if metric.FilingCount == 0 {
			metric.Score = 0
			metric.Label = ScoreLabel(0)
			continue
		}

		score := baseScore(metric) + consistencyBonus(metrics, i) + trendAdjustment(metrics, i)
		metric.Score = clamp(score, 0, 100)
		metric.Label = ScoreLabel(metric.Score)
	}
}

// baseScore is the weighted composite of the four single-quarter sub-scores,
// normalized back to a 0-100 scale
func baseScore(metric *domain.QuarterlyMetric) float64 {
	weighted := weightSpendMagnitude*spendMagnitude(metric.TotalSpend) +
		weightIssueBreadth*clamp(float64(metric.IssueCount)*12, 0, 100) +
		weightGovReach*clamp(float64(metric.EntityCount)*13, 0, 100) +
		weightLobbyistCount*clamp(float64(metric.LobbyistCount)*10, 0, 100)
	return weighted / weightBaseTotal
}

// spendMagnitude scales spend logarithmically: $100K ~ 25, $1M = 50, $10M = 75
func spendMagnitude(spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	return clamp((math.Log10(spend)-4)*25, 0, 100)
}

// consistencyBonus awards sustained activity: +3 per consecutive immediately
// preceding active quarter, looking back at most 6 quarters, capped at +15
func consistencyBonus(metrics []domain.QuarterlyMetric, i int) float64 {
	streak := 0
	for j := i - 1; j >= 0 && j >= i-consistencyLookback; j-- {
		if metrics[j].FilingCount == 0 {
			break
		}
		streak++
	}
	return math.Min(consistencyPerQuarter*float64(streak), consistencyCap)
}

// trendAdjustment compares this quarter's spend to the immediately preceding
// quarter's. Undefined ratios (no prior quarter, or no prior spend) score 0.
func trendAdjustment(metrics []domain.QuarterlyMetric, i int) float64 {
	if i == 0 {
		return 0
	}
	prior := metrics[i-1].TotalSpend
	if prior <= 0 {
		return 0
	}

	ratio := metrics[i].TotalSpend / prior
	switch {
	case ratio > 1.5:
		return 10
	case ratio > 1.1:
		return 5
	case ratio < 0.5:
		return -5
	case ratio < 0.9:
		return -3
	default:
		return 0
	}
}

// ScoreLabel buckets a 0-100 influence score
func ScoreLabel(score float64) domain.InfluenceLabel {
	switch {
	case score >= 80:
		return domain.LabelVeryHigh
	case score >= 60:
		return domain.LabelHigh
	case score >= 40:
		return domain.LabelModerate
	case score >= 20:
		return domain.LabelLow
	default:
		return domain.LabelMinimal
	}
}

// CurrentScore selects the score of the most recent quarter that has at least
// one filing. Metrics are expected most recent first. A key with no active
// quarter scores 0.
func CurrentScore(metrics []domain.QuarterlyMetric) (float64, domain.InfluenceLabel) {
	for _, metric := range metrics {
		if metric.FilingCount > 0 {
			return metric.Score, metric.Label
		}
	}
	return 0, domain.LabelMinimal
}

// ClassifyTrend compares the average spend of the two most recent active
// quarters against the average of the two before them. Metrics are expected
// most recent first. Fewer than two active quarters on either side is stable.
func ClassifyTrend(metrics []domain.QuarterlyMetric) domain.Trend {
	var activeSpend []float64
	for _, metric := range metrics {
		if metric.FilingCount > 0 {
			activeSpend = append(activeSpend, metric.TotalSpend)
		}
	}
	if len(activeSpend) < 4 {
		return domain.TrendStable
	}

	recent := (activeSpend[0] + activeSpend[1]) / 2
	older := (activeSpend[2] + activeSpend[3]) / 2
	if older <= 0 {
		return domain.TrendStable
	}

	ratio := recent / older
	switch {
	case ratio > 1.2:
		return domain.TrendIncreasing
	case ratio < 0.8:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
