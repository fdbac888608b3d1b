package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnifolio/influence-indexer/internal/domain"
	"github.com/omnifolio/influence-indexer/internal/scoring"
)

func TestBuildSummary(t *testing.T) {
	records := []domain.ActivityRecord{
		makeRecord(2025, 2, 2_000_000),
		makeRecord(2025, 1, 1_000_000),
		makeRecord(2024, 4, 500_000),
		makeRecord(2024, 4, 500_000), // same quarter, counted once for activity
	}

	summary := scoring.BuildSummary(records)

	assert.Equal(t, 4_000_000.0, summary.TotalSpend)
	assert.Equal(t, 4, summary.TotalFilings)
	assert.Equal(t, 3, summary.ActiveQuarters)
	assert.InDelta(t, 4_000_000.0/3, summary.AvgQuarterlySpend, 0.001)

	assert.Equal(t, 2, summary.LobbyistCount)
	assert.Equal(t, 4, summary.IssueCount)
	assert.Equal(t, 3, summary.EntityCount)
	assert.Equal(t, 1, summary.RegistrantCount)

	require.NotEmpty(t, summary.TopRegistrants)
	assert.Equal(t, "Capitol Advocates LLC", summary.TopRegistrants[0].Registrant)
	assert.Equal(t, 4_000_000.0, summary.TopRegistrants[0].TotalSpend)

	// Every lobbyist appears on every filing, so ties rank alphabetically
	require.Len(t, summary.TopLobbyists, 2)
	assert.Equal(t, "Jane Roe", summary.TopLobbyists[0].Name)
	assert.Equal(t, 4, summary.TopLobbyists[0].FilingCount)

	require.Len(t, summary.SpendByYear, 2)
	assert.Equal(t, domain.YearSpend{Year: 2025, Spend: 3_000_000}, summary.SpendByYear[0])
	assert.Equal(t, domain.YearSpend{Year: 2024, Spend: 1_000_000}, summary.SpendByYear[1])
}

func TestBuildSummaryEmpty(t *testing.T) {
	summary := scoring.BuildSummary(nil)

	assert.Zero(t, summary.TotalSpend)
	assert.Zero(t, summary.TotalFilings)
	assert.Zero(t, summary.ActiveQuarters)
	assert.Zero(t, summary.AvgQuarterlySpend)
	assert.Empty(t, summary.TopIssues)
	assert.Empty(t, summary.TopRegistrants)
	assert.Empty(t, summary.TopLobbyists)
	assert.Empty(t, summary.SpendByYear)
}
