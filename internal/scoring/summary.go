package scoring

import (
	"sort"

	"github.com/omnifolio/influence-indexer/internal/domain"
)

// topNSummary bounds the cross-quarter breakdowns
const topNSummary = 10

// BuildSummary computes the cross-quarter rollup over all activity records in
// a single pass, independent of quarter boundaries.
func BuildSummary(records []domain.ActivityRecord) domain.Summary {
	summary := domain.Summary{
		TotalFilings:   len(records),
		TopIssues:      []domain.IssueBreakdown{},
		TopRegistrants: []domain.RegistrantBreakdown{},
		TopLobbyists:   []domain.LobbyistBreakdown{},
		SpendByYear:    []domain.YearSpend{},
	}

	quarters := make(map[quarterKey]struct{})
	lobbyists := make(map[string]*domain.LobbyistBreakdown)
	issues := make(map[string]*domain.IssueBreakdown)
	entities := make(map[string]struct{})
	registrants := make(map[string]*domain.RegistrantBreakdown)
	spendByYear := make(map[int]float64)

	for _, record := range records {
		amount := 0.0
		if record.Amount != nil {
			amount = *record.Amount
		}
		summary.TotalSpend += amount
		spendByYear[record.FilingYear] += amount
		quarters[quarterKey{year: record.FilingYear, quarter: record.FilingQuarter}] = struct{}{}

		for _, name := range record.GovernmentEntities {
			entities[name] = struct{}{}
		}
		for _, name := range record.Lobbyists {
			breakdown, ok := lobbyists[name]
			if !ok {
				breakdown = &domain.LobbyistBreakdown{Name: name}
				lobbyists[name] = breakdown
			}
			breakdown.FilingCount++
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

	summary.ActiveQuarters = len(quarters)
	if summary.ActiveQuarters > 0 {
		summary.AvgQuarterlySpend = summary.TotalSpend / float64(summary.ActiveQuarters)
	}
	summary.LobbyistCount = len(lobbyists)
	summary.IssueCount = len(issues)
	summary.EntityCount = len(entities)
	summary.RegistrantCount = len(registrants)

	// Top issues by filing count
	for _, breakdown := range issues {
		summary.TopIssues = append(summary.TopIssues, *breakdown)
	}
	sort.Slice(summary.TopIssues, func(i, j int) bool {
		if summary.TopIssues[i].FilingCount != summary.TopIssues[j].FilingCount {
			return summary.TopIssues[i].FilingCount > summary.TopIssues[j].FilingCount
		}
		return summary.TopIssues[i].IssueCode < summary.TopIssues[j].IssueCode
	})
	if len(summary.TopIssues) > topNSummary {
		summary.TopIssues = summary.TopIssues[:topNSummary]
	}

	// Top registrants by total spend
	summary.TopRegistrants = topRegistrants(registrants, topNSummary)

	// Top lobbyists by filing count
	for _, breakdown := range lobbyists {
		summary.TopLobbyists = append(summary.TopLobbyists, *breakdown)
	}
	sort.Slice(summary.TopLobbyists, func(i, j int) bool {
		if summary.TopLobbyists[i].FilingCount != summary.TopLobbyists[j].FilingCount {
			return summary.TopLobbyists[i].FilingCount > summary.TopLobbyists[j].FilingCount
		}
		return summary.TopLobbyists[i].Name < summary.TopLobbyists[j].Name
	})
	if len(summary.TopLobbyists) > topNSummary {
		summary.TopLobbyists = summary.TopLobbyists[:topNSummary]
	}

	// Spend by year, most recent first
	for year, spend := range spendByYear {
		summary.SpendByYear = append(summary.SpendByYear, domain.YearSpend{Year: year, Spend: spend})
	}
	sort.Slice(summary.SpendByYear, func(i, j int) bool {
		return summary.SpendByYear[i].Year > summary.SpendByYear[j].Year
	})

	return summary
}
