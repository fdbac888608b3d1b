package lda_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnifolio/influence-indexer/internal/logger"
	"github.com/omnifolio/influence-indexer/internal/providers/lda"
)

func strPtr(s string) *string { return &s }

func validFiling() lda.Filing {
	return lda.Filing{
		FilingUUID:        "f-1",
		FilingYear:        2025,
		FilingPeriod:      "first_quarter",
		FilingDocumentURL: strPtr("https://lda.senate.gov/filings/f-1.pdf"),
		Income:            strPtr("250000.00"),
		DtPosted:          "2025-04-20T14:30:00Z",
		Registrant:        lda.Registrant{Name: " Capitol Advocates LLC "},
		Client: lda.FilingClient{
			Name:               "ACME Corporation",
			GeneralDescription: strPtr("Industrial manufacturing"),
		},
		Activities: []lda.LobbyingActivity{
			{
				GeneralIssueCode:   "TAX",
				GovernmentEntities: []lda.GovernmentEntity{{Name: "U.S. Senate"}, {Name: "U.S. House"}},
				Lobbyists: []lda.Lobbyist{
					{Lobbyist: lda.LobbyistName{FirstName: "Jane", LastName: "Roe"}},
					{Lobbyist: lda.LobbyistName{FirstName: "John", LastName: "Doe"}},
				},
			},
			{
				GeneralIssueCode:   "TEC",
				GovernmentEntities: []lda.GovernmentEntity{{Name: "U.S. Senate"}}, // duplicate across activities
				Lobbyists: []lda.Lobbyist{
					{Lobbyist: lda.LobbyistName{FirstName: "Jane", LastName: "Roe"}},
				},
			},
		},
	}
}

func TestToActivityRecords(t *testing.T) {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	records := lda.ToActivityRecords("ACME", []lda.Filing{validFiling()})
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "ACME", record.Key)
	assert.Equal(t, "f-1", record.FilingUUID)
	assert.Equal(t, time.Date(2025, 4, 20, 14, 30, 0, 0, time.UTC), record.FilingDate)
	assert.Equal(t, 2025, record.FilingYear)
	assert.Equal(t, 1, record.FilingQuarter)
	assert.Equal(t, "Capitol Advocates LLC", record.Registrant)
	assert.Equal(t, "Industrial manufacturing", record.ClientDescription)
	assert.Equal(t, "https://lda.senate.gov/filings/f-1.pdf", record.DocumentURL)
	require.NotNil(t, record.Amount)
	assert.Equal(t, 250000.0, *record.Amount)

	// Deduplicated across activities and sorted
	assert.Equal(t, []string{"Jane Roe", "John Doe"}, record.Lobbyists)
	assert.Equal(t, []string{"TAX", "TEC"}, record.IssueCodes)
	assert.Equal(t, []string{"U.S. House", "U.S. Senate"}, record.GovernmentEntities)
}

func TestToActivityRecordsSkipsMalformed(t *testing.T) {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	missingUUID := validFiling()
	missingUUID.FilingUUID = ""

	unknownPeriod := validFiling()
	unknownPeriod.FilingUUID = "f-2"
	unknownPeriod.FilingPeriod = "thirteenth_month"

	badDate := validFiling()
	badDate.FilingUUID = "f-3"
	badDate.DtPosted = "not a date"

	keeper := validFiling()
	keeper.FilingUUID = "f-4"

	records := lda.ToActivityRecords("ACME", []lda.Filing{missingUUID, unknownPeriod, badDate, keeper})
	require.Len(t, records, 1, "malformed filings are dropped, not fatal")
	assert.Equal(t, "f-4", records[0].FilingUUID)
}

func TestFilingPeriodMapping(t *testing.T) {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	tests := []struct {
		period  string
		quarter int
	}{
		{"first_quarter", 1},
		{"second_quarter", 2},
		{"third_quarter", 3},
		{"fourth_quarter", 4},
		{"mid_year", 2},
		{"year_end", 4},
	}

	for _, tt := range tests {
		filing := validFiling()
		filing.FilingPeriod = tt.period
		records := lda.ToActivityRecords("ACME", []lda.Filing{filing})
		require.Len(t, records, 1, "period %s", tt.period)
		assert.Equal(t, tt.quarter, records[0].FilingQuarter, "period %s", tt.period)
	}
}

func TestFilingAmountPrefersLarger(t *testing.T) {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	t.Run("expenses exceed income", func(t *testing.T) {
		filing := validFiling()
		filing.Income = strPtr("100000.00")
		filing.Expenses = strPtr("300000.00")
		records := lda.ToActivityRecords("ACME", []lda.Filing{filing})
		require.Len(t, records, 1)
		require.NotNil(t, records[0].Amount)
		assert.Equal(t, 300000.0, *records[0].Amount)
	})

	t.Run("only expenses reported", func(t *testing.T) {
		filing := validFiling()
		filing.Income = nil
		filing.Expenses = strPtr("50000.00")
		records := lda.ToActivityRecords("ACME", []lda.Filing{filing})
		require.Len(t, records, 1)
		require.NotNil(t, records[0].Amount)
		assert.Equal(t, 50000.0, *records[0].Amount)
	})

	t.Run("no amount reported", func(t *testing.T) {
		filing := validFiling()
		filing.Income = nil
		filing.Expenses = nil
		records := lda.ToActivityRecords("ACME", []lda.Filing{filing})
		require.Len(t, records, 1)
		assert.Nil(t, records[0].Amount)
	})
}
