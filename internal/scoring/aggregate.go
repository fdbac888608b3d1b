package scoring

import (
	"sort"
	"time"

	"github.com/omnifolio/influence-indexer/internal/domain"
)

// topNPerQuarter bounds the per-quarter issue and registrant breakdowns
const topNPerQuarter = 5

// quarterKey identifies one (year, quarter) bucket
type quarterKey struct {
	year    int
	quarter int
}

func (q quarterKey) before(other quarterKey) bool {
	if q.year != other.year {
		return q.year < other.year
	}
	return q.quarter < other.quarter
}

func (q quarterKey) prev() quarterKey {
	if q.quarter == 1 {
		return quarterKey{year: q.year - 1, quarter: 4}
	}
	return quarterKey{year: q.year, quarter: q.quarter - 1}
}

// quarterOf returns the bucket a point in time falls into
func quarterOf(t time.Time) quarterKey {
	return quarterKey{year: t.Year(), quarter: int(t.Month()-1)/3 + 1}
}

// BuildQuarterlyMetrics groups activity records into (year, quarter) buckets,
// synthesizes empty buckets across the requested history window so gaps are
// explicit, scores every quarter, and returns the metrics most recent first.
func BuildQuarterlyMetrics(records []domain.ActivityRecord, now time.Time, yearsOfHistory int) []domain.QuarterlyMetric {
	buckets := make(map[quarterKey][]domain.ActivityRecord)
	for _, record := range records {
		if record.FilingQuarter < 1 || record.FilingQuarter > 4 {
			continue
		}
		key := quarterKey{year: record.FilingYear, quarter: record.FilingQuarter}
		buckets[key] = append(buckets[key], record)
	}

	// Every quarter in the window exists, populated or not
	if yearsOfHistory > 0 {
		cursor := quarterOf(now.UTC())
		for range 4 * yearsOfHistory {
			if _, ok := buckets[cursor]; !ok {
				buckets[cursor] = nil
			}
			cursor = cursor.prev()
		}
	}

	keys := make([]quarterKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// Oldest first for the time-series scoring pass
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	metrics := make([]domain.QuarterlyMetric, 0, len(keys))
	for _, key := range keys {
		metrics = append(metrics, aggregateQuarter(key, buckets[key]))
	}

	scoreQuarters(metrics)

	// Most recent first for callers
	sort.Slice(metrics, func(i, j int) bool {
		if metrics[i].Year != metrics[j].Year {
			return metrics[i].Year > metrics[j].Year
		}
		return metrics[i].Quarter > metrics[j].Quarter
	})

	return metrics
}

// aggregateQuarter computes the raw per-quarter metrics for one bucket
func aggregateQuarter(key quarterKey, records []domain.ActivityRecord) domain.QuarterlyMetric {
	metric := domain.QuarterlyMetric{
		Year:           key.year,
		Quarter:        key.quarter,
		FilingCount:    len(records),
		TopIssues:      []domain.IssueBreakdown{},
		TopRegistrants: []domain.RegistrantBreakdown{},
	}

	lobbyists := make(map[string]struct{})
	issues := make(map[string]*domain.IssueBreakdown)
	entities := make(map[string]struct{})
	registrants := make(map[string]*domain.RegistrantBreakdown)

	for _, record := range records {
		amount := 0.0
		if record.Amount != nil {
			amount = *record.Amount
		}
		metric.TotalSpend += amount

		if metric.LatestFiling == nil || record.FilingDate.After(*metric.LatestFiling) {
			filingDate := record.FilingDate
			metric.LatestFiling = &filingDate
		}

		for _, name := range record.Lobbyists {
			lobbyists[name] = struct{}{}
		}
		for _, name := range record.GovernmentEntities {
			entities[name] = struct{}{}
		}
		for _, code := range record.IssueCodes {
			breakdown, ok := issues[code]
			if !ok {
				breakdown = &domain.IssueBreakdown{IssueCode: code}
				issues[code] = breakdown
			}
			breakdown.FilingCount++
			breakdown.TotalSpend += amount
		}

		if record.Registrant != "" {
			breakdown, ok := registrants[record.Registrant]
			if !ok {
				breakdown = &domain.RegistrantBreakdown{Registrant: record.Registrant}
				registrants[record.Registrant] = breakdown
			}
			breakdown.FilingCount++
			breakdown.TotalSpend += amount
		}
	}

	metric.LobbyistCount = len(lobbyists)
	metric.IssueCount = len(issues)
	metric.EntityCount = len(entities)
	metric.TopIssues = topIssues(issues, topNPerQuarter)
	metric.TopRegistrants = topRegistrants(registrants, topNPerQuarter)

	return metric
}

// topIssues ranks issue breakdowns by spend, then filing count, then code
func topIssues(issues map[string]*domain.IssueBreakdown, n int) []domain.IssueBreakdown {
	ranked := make([]domain.IssueBreakdown, 0, len(issues))
	for _, breakdown := range issues {
		ranked = append(ranked, *breakdown)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalSpend != ranked[j].TotalSpend {
			return ranked[i].TotalSpend > ranked[j].TotalSpend
		}
		if ranked[i].FilingCount != ranked[j].FilingCount {
			return ranked[i].FilingCount > ranked[j].FilingCount
		}
		return ranked[i].IssueCode < ranked[j].IssueCode
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// topRegistrants ranks registrant breakdowns by spend, then filing count, then name
func topRegistrants(registrants map[string]*domain.RegistrantBreakdown, n int) []domain.RegistrantBreakdown {
	ranked := make([]domain.RegistrantBreakdown, 0, len(registrants))
	for _, breakdown := range registrants {
		ranked = append(ranked, *breakdown)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalSpend != ranked[j].TotalSpend {
			return ranked[i].TotalSpend > ranked[j].TotalSpend
		}
		if ranked[i].FilingCount != ranked[j].FilingCount {
			return ranked[i].FilingCount > ranked[j].FilingCount
		}
		return ranked[i].Registrant < ranked[j].Registrant
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
