package schema

import (
	"time"

	"gorm.io/datatypes"
)

// LobbyingActivity represents the lobbying_activities table - one normalized
// disclosure filing for a key. Rows are only ever replaced wholesale per key,
// never updated in place.
type LobbyingActivity struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Key is the ticker-like identifier the record is partitioned under
	Key string `gorm:"column:key;not null;type:text;uniqueIndex:idx_lobbying_activities_key_filing,priority:1;index:idx_lobbying_activities_key_year,priority:1"`
	// FilingUUID is the upstream filing identifier
	FilingUUID string `gorm:"column:filing_uuid;not null;type:text;uniqueIndex:idx_lobbying_activities_key_filing,priority:2"`
	// FilingDate is when the filing was posted upstream
	FilingDate time.Time `gorm:"column:filing_date;not null;type:timestamptz"`
	// FilingYear is the reporting year of the filing
	FilingYear int `gorm:"column:filing_year;not null;index:idx_lobbying_activities_key_year,priority:2"`
	// FilingQuarter is the reporting quarter (1-4)
	FilingQuarter int `gorm:"column:filing_quarter;not null"`
	// Registrant is the lobbying firm that submitted the filing
	Registrant string `gorm:"column:registrant;not null;type:text"`
	// ClientDescription is the client's self-reported business description
	ClientDescription *string `gorm:"column:client_description;type:text"`
	// Amount is the reported spend in USD
	Amount *float64 `gorm:"column:amount"`
	// Lobbyists is a JSON array of named individuals on the filing
	Lobbyists datatypes.JSON `gorm:"column:lobbyists;type:jsonb"`
	// IssueCodes is a JSON array of general issue area codes
	IssueCodes datatypes.JSON `gorm:"column:issue_codes;type:jsonb"`
	// GovernmentEntities is a JSON array of government bodies contacted
	GovernmentEntities datatypes.JSON `gorm:"column:government_entities;type:jsonb"`
	// DocumentURL points at the upstream filing document
	DocumentURL *string `gorm:"column:document_url;type:text"`
	// CreatedAt is the timestamp when this row was persisted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LobbyingActivity model
func (LobbyingActivity) TableName() string {
	return "lobbying_activities"
}
