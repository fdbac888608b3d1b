package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnifolio/influence-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	// database/sql treats MaxIdleConns > MaxOpenConns as wasteful
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays
// under PostgreSQL's 65535-parameter limit for the extended protocol.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000 // headroom for GORM bookkeeping and batch overhead

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// GetActivityRecords retrieves the persisted activity records for a key,
// limited to filings from minYear onward
func (s *pgStore) GetActivityRecords(ctx context.Context, key string, minYear int) ([]schema.LobbyingActivity, error) {
	query := s.db.WithContext(ctx).Where("key = ?", key)
	if minYear > 0 {
		query = query.Where("filing_year >= ?", minYear)
	}

	var records []schema.LobbyingActivity
	if err := query.Order("filing_date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get activity records: %w", err)
	}

	return records, nil
}

// ReplaceActivityRecords atomically replaces all persisted records for a key.
// Delete-then-insert inside one transaction: a failed delete aborts the whole
// replacement so stale rows are never mixed with new ones.
func (s *pgStore) ReplaceActivityRecords(ctx context.Context, key string, records []schema.LobbyingActivity) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("key = ?", key).Delete(&schema.LobbyingActivity{}).Error; err != nil {
			return fmt.Errorf("failed to delete existing records for key %s: %w", key, err)
		}

		if len(records) == 0 {
			return nil
		}

		// 12 insertable fields per LobbyingActivity row
		batchSize := calculateSafeBatchSize(len(records), 12)
		if err := tx.CreateInBatches(records, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert records for key %s: %w", key, err)
		}

		return nil
	})
}

// BeginRefreshAudit appends a running audit entry for an upstream fetch attempt
func (s *pgStore) BeginRefreshAudit(ctx context.Context, key string) (uuid.UUID, error) {
	entry := schema.RefreshAudit{
		ID:        uuid.New(),
		Key:       key,
		Status:    schema.RefreshStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create refresh audit entry: %w", err)
	}

	return entry.ID, nil
}

// CompleteRefreshAudit marks an audit entry success or failed
func (s *pgStore) CompleteRefreshAudit(ctx context.Context, id uuid.UUID, status schema.RefreshStatus, recordCount int, ttlSeconds int, errMsg string) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       status,
		"completed_at": &now,
		"record_count": recordCount,
		"ttl_seconds":  ttlSeconds,
	}
	if errMsg != "" {
		updates["error_message"] = errMsg
	}

	err := s.db.WithContext(ctx).
		Model(&schema.RefreshAudit{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to complete refresh audit entry: %w", err)
	}

	return nil
}

// GetLastSuccessfulRefresh retrieves the most recent successful audit entry for a key
func (s *pgStore) GetLastSuccessfulRefresh(ctx context.Context, key string) (*schema.RefreshAudit, error) {
	var entry schema.RefreshAudit
	err := s.db.WithContext(ctx).
		Where("key = ? AND status = ?", key, schema.RefreshStatusSuccess).
		Order("completed_at DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last successful refresh: %w", err)
	}

	return &entry, nil
}

// GetLatestRecordTime retrieves the persistence time of the most recent
// activity record for a key
func (s *pgStore) GetLatestRecordTime(ctx context.Context, key string) (*time.Time, error) {
	var record schema.LobbyingActivity
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest record time: %w", err)
	}

	return &record.CreatedAt, nil
}

// ListKeys retrieves every key that has persisted activity records
func (s *pgStore) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&schema.LobbyingActivity{}).
		Distinct("key").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	return keys, nil
}
