package lda

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/omnifolio/influence-indexer/internal/domain"
	"github.com/omnifolio/influence-indexer/internal/logger"
)

// filingPeriodQuarter maps LDA filing periods to reporting quarters.
// Pre-2008 registrants filed semi-annually; those periods map onto the
// quarter that closes them.
var filingPeriodQuarter = map[string]int{
	"first_quarter":  1,
	"second_quarter": 2,
	"third_quarter":  3,
	"fourth_quarter": 4,
	"mid_year":       2,
	"year_end":       4,
}

// ToActivityRecords converts raw LDA filings into normalized activity records
// for a key. The transform is total per batch: a filing that cannot be
// normalized is dropped with a warning, it never fails the batch.
func ToActivityRecords(key string, filings []Filing) []domain.ActivityRecord {
	records := make([]domain.ActivityRecord, 0, len(filings))
	for _, filing := range filings {
		record, ok := toActivityRecord(key, filing)
		if !ok {
			logger.Warn("skipping malformed filing",
				zap.String("key", key),
				zap.String("filing_uuid", filing.FilingUUID),
				zap.String("filing_period", filing.FilingPeriod),
			)
			continue
		}
		records = append(records, record)
	}
	return records
}

// toActivityRecord normalizes a single filing. Returns false when required
// fields are missing or unparseable.
func toActivityRecord(key string, filing Filing) (domain.ActivityRecord, bool) {
	if filing.FilingUUID == "" || filing.FilingYear == 0 {
		return domain.ActivityRecord{}, false
	}

	quarter, ok := filingPeriodQuarter[filing.FilingPeriod]
	if !ok {
		return domain.ActivityRecord{}, false
	}

	filingDate, err := time.Parse(time.RFC3339, filing.DtPosted)
	if err != nil {
		return domain.ActivityRecord{}, false
	}

	record := domain.ActivityRecord{
		Key:           key,
		FilingUUID:    filing.FilingUUID,
		FilingDate:    filingDate.UTC(),
		FilingYear:    filing.FilingYear,
		FilingQuarter: quarter,
		Registrant:    strings.TrimSpace(filing.Registrant.Name),
		Amount:        filingAmount(filing),
	}
	if filing.Client.GeneralDescription != nil {
		record.ClientDescription = strings.TrimSpace(*filing.Client.GeneralDescription)
	}
	if filing.FilingDocumentURL != nil {
		record.DocumentURL = *filing.FilingDocumentURL
	}

	lobbyists := make(map[string]struct{})
	issueCodes := make(map[string]struct{})
	entities := make(map[string]struct{})
	for _, activity := range filing.Activities {
		if activity.GeneralIssueCode != "" {
			issueCodes[activity.GeneralIssueCode] = struct{}{}
		}
		for _, entity := range activity.GovernmentEntities {
			if entity.Name != "" {
				entities[entity.Name] = struct{}{}
			}
		}
		for _, lobbyist := range activity.Lobbyists {
			name := strings.TrimSpace(lobbyist.Lobbyist.FirstName + " " + lobbyist.Lobbyist.LastName)
			if name != "" {
				lobbyists[name] = struct{}{}
			}
		}
	}
	record.Lobbyists = sortedKeys(lobbyists)
	record.IssueCodes = sortedKeys(issueCodes)
	record.GovernmentEntities = sortedKeys(entities)

	return record, true
}

// filingAmount resolves the reported spend for a filing. Registrant filings
// report income, in-house filings report expenses; either counts as spend, and
// when both appear the larger wins.
func filingAmount(filing Filing) *float64 {
	income := parseAmount(filing.Income)
	expenses := parseAmount(filing.Expenses)

	if income == nil && expenses == nil {
		return nil
	}
	if income == nil {
		return expenses
	}
	if expenses == nil || *income >= *expenses {
		return income
	}
	return expenses
}

// parseAmount parses the decimal-string amounts the LDA API returns
func parseAmount(value *string) *float64 {
	if value == nil {
		return nil
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(*value), 64)
	if err != nil {
		return nil
	}
	return &amount
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
