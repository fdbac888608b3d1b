package domain

import (
	"time"
)

// Freshness classifies how usable the durable cache is for a key
type Freshness string

const (
	// FreshnessFresh means the cached data is well within its TTL and can be served as-is
	FreshnessFresh Freshness = "fresh"
	// FreshnessStale means the cached data is still servable but should be refreshed in the background
	FreshnessStale Freshness = "stale"
	// FreshnessExpired means the cached data is past its TTL or no successful refresh exists
	FreshnessExpired Freshness = "expired"
)

// Trend classifies the overall spend direction across recent quarters
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Provenance indicates which tier produced a ScoreResult
type Provenance string

const (
	// ProvenanceCache means the result was built from the durable store or memory cache
	ProvenanceCache Provenance = "cache"
	// ProvenanceFresh means the result was built from a live upstream fetch
	ProvenanceFresh Provenance = "fresh"
)

// InfluenceLabel buckets a 0-100 influence score
type InfluenceLabel string

const (
	LabelVeryHigh InfluenceLabel = "Very High"
	LabelHigh     InfluenceLabel = "High"
	LabelModerate InfluenceLabel = "Moderate"
	LabelLow      InfluenceLabel = "Low"
	LabelMinimal  InfluenceLabel = "Minimal"
)

// ActivityRecord is one normalized lobbying disclosure filing.
// Records are immutable once created and uniquely identified by (Key, FilingUUID).
// The full set for a key is replaced wholesale on every refresh, never upserted.
type ActivityRecord struct {
	// Key is the ticker-like identifier the record is partitioned under
	Key string `json:"key"`
	// FilingUUID is the upstream filing identifier
	FilingUUID string `json:"filing_uuid"`
	// FilingDate is when the filing was posted upstream
	FilingDate time.Time `json:"filing_date"`
	// FilingYear is the reporting year of the filing
	FilingYear int `json:"filing_year"`
	// FilingQuarter is the reporting quarter (1-4)
	FilingQuarter int `json:"filing_quarter"`
	// Registrant is the lobbying firm that submitted the filing
	Registrant string `json:"registrant"`
	// ClientDescription is the client's self-reported business description
	ClientDescription string `json:"client_description,omitempty"`
	// Amount is the reported spend in USD; nil when the filing reports no amount
	Amount *float64 `json:"amount"`
	// Lobbyists are the named individuals on the filing
	Lobbyists []string `json:"lobbyists"`
	// IssueCodes are the general issue area codes covered by the filing
	IssueCodes []string `json:"issue_codes"`
	// GovernmentEntities are the government bodies contacted
	GovernmentEntities []string `json:"government_entities"`
	// DocumentURL points at the upstream filing document
	DocumentURL string `json:"document_url,omitempty"`
}

// IssueBreakdown aggregates filings and spend for one issue code
type IssueBreakdown struct {
	IssueCode   string  `json:"issue_code"`
	FilingCount int     `json:"filing_count"`
	TotalSpend  float64 `json:"total_spend"`
}

// RegistrantBreakdown aggregates spend for one lobbying firm
type RegistrantBreakdown struct {
	Registrant  string  `json:"registrant"`
	FilingCount int     `json:"filing_count"`
	TotalSpend  float64 `json:"total_spend"`
}

// LobbyistBreakdown counts filings for one named individual
type LobbyistBreakdown struct {
	Name        string `json:"name"`
	FilingCount int    `json:"filing_count"`
}

// YearSpend is the total spend for one calendar year
type YearSpend struct {
	Year  int     `json:"year"`
	Spend float64 `json:"spend"`
}

// QuarterlyMetric is the derived aggregation of all activity records for one
// (key, year, quarter). It is recomputed on every aggregation pass and never
// persisted independently.
type QuarterlyMetric struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
	// TotalSpend is the sum of reported amounts in the quarter
	TotalSpend float64 `json:"total_spend"`
	// FilingCount is the number of filings in the quarter
	FilingCount int `json:"filing_count"`
	// LobbyistCount is the number of distinct named individuals
	LobbyistCount int `json:"lobbyist_count"`
	// IssueCount is the number of distinct issue codes
	IssueCount int `json:"issue_count"`
	// EntityCount is the number of distinct government entities
	EntityCount int `json:"entity_count"`
	// TopIssues are the highest-spend issue codes in the quarter
	TopIssues []IssueBreakdown `json:"top_issues"`
	// TopRegistrants are the highest-spend lobbying firms in the quarter
	TopRegistrants []RegistrantBreakdown `json:"top_registrants"`
	// Score is the influence score for the quarter (0-100)
	Score float64 `json:"score"`
	// Label buckets the score
	Label InfluenceLabel `json:"label"`
	// LatestFiling is the most recent filing date in the quarter, nil when empty
	LatestFiling *time.Time `json:"latest_filing,omitempty"`
}

// Summary is the cross-quarter rollup over all activity records for a key
type Summary struct {
	TotalSpend     float64 `json:"total_spend"`
	TotalFilings   int     `json:"total_filings"`
	ActiveQuarters int     `json:"active_quarters"`
	// AvgQuarterlySpend is TotalSpend divided by ActiveQuarters
	AvgQuarterlySpend float64               `json:"avg_quarterly_spend"`
	LobbyistCount     int                   `json:"lobbyist_count"`
	IssueCount        int                   `json:"issue_count"`
	EntityCount       int                   `json:"entity_count"`
	RegistrantCount   int                   `json:"registrant_count"`
	TopIssues         []IssueBreakdown      `json:"top_issues"`
	TopRegistrants    []RegistrantBreakdown `json:"top_registrants"`
	TopLobbyists      []LobbyistBreakdown   `json:"top_lobbyists"`
	SpendByYear       []YearSpend           `json:"spend_by_year"`
}

// ScoreResult is the externally visible influence payload for a key
type ScoreResult struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	// Quarters are ordered most recent first
	Quarters []QuarterlyMetric `json:"quarters"`
	// Activities are the flattened activity records, omitted unless requested
	Activities []ActivityRecord `json:"activities,omitempty"`
	Summary    Summary          `json:"summary"`
	// CurrentScore is taken from the most recent quarter with at least one filing
	CurrentScore float64        `json:"current_score"`
	CurrentLabel InfluenceLabel `json:"current_label"`
	Trend        Trend          `json:"trend"`
	Provenance   Provenance     `json:"provenance"`
	CachedAt     time.Time      `json:"cached_at"`
	ExpiresAt    time.Time      `json:"expires_at"`
}

// ResolveOptions controls a score resolution
type ResolveOptions struct {
	// YearsOfHistory bounds how far back filings are considered
	YearsOfHistory int
	// ForceRefresh bypasses the memory cache and durable freshness check
	ForceRefresh bool
	// IncludeActivities includes the flattened activity records in the result
	IncludeActivities bool
}
