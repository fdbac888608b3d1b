package schema

import (
	"time"

	"github.com/google/uuid"
)

// RefreshStatus is the lifecycle state of one upstream fetch attempt
type RefreshStatus string

const (
	// RefreshStatusRunning marks an attempt that has started but not completed
	RefreshStatusRunning RefreshStatus = "running"
	// RefreshStatusSuccess marks an attempt that fetched and persisted records
	RefreshStatusSuccess RefreshStatus = "success"
	// RefreshStatusFailed marks an attempt that errored at any stage
	RefreshStatusFailed RefreshStatus = "failed"
)

// RefreshAudit represents the refresh_audit_log table - one append-only row per
// upstream fetch attempt. Freshness classification reads only this table.
type RefreshAudit struct {
	// ID is the attempt identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// Key is the ticker-like identifier the attempt refreshed
	Key string `gorm:"column:key;not null;type:text;index:idx_refresh_audit_log_key_status"`
	// Status is the attempt lifecycle state
	Status RefreshStatus `gorm:"column:status;not null;type:text;index:idx_refresh_audit_log_key_status"`
	// StartedAt is when the attempt began
	StartedAt time.Time `gorm:"column:started_at;not null;type:timestamptz"`
	// CompletedAt is when the attempt finished, nil while running
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz"`
	// RecordCount is the number of records parsed on success
	RecordCount *int `gorm:"column:record_count"`
	// TTLSeconds is the TTL resolved for the refreshed data
	TTLSeconds *int `gorm:"column:ttl_seconds"`
	// ErrorMessage contains the failure reason when Status is failed
	ErrorMessage *string `gorm:"column:error_message;type:text"`
}

// TableName specifies the table name for the RefreshAudit model
func (RefreshAudit) TableName() string {
	return "refresh_audit_log"
}
