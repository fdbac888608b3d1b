package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/omnifolio/influence-indexer/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetActivityRecords retrieves the persisted activity records for a key,
	// limited to filings from minYear onward (0 means no lower bound)
	GetActivityRecords(ctx context.Context, key string, minYear int) ([]schema.LobbyingActivity, error)

	// ReplaceActivityRecords atomically replaces all persisted records for a key.
	// If the delete step fails the insert is skipped entirely.
	ReplaceActivityRecords(ctx context.Context, key string, records []schema.LobbyingActivity) error

	// BeginRefreshAudit appends a running audit entry for an upstream fetch attempt
	BeginRefreshAudit(ctx context.Context, key string) (uuid.UUID, error)

	// CompleteRefreshAudit marks an audit entry success or failed
	CompleteRefreshAudit(ctx context.Context, id uuid.UUID, status schema.RefreshStatus, recordCount int, ttlSeconds int, errMsg string) error

	// GetLastSuccessfulRefresh retrieves the most recent successful audit entry
	// for a key, or nil if none exists
	GetLastSuccessfulRefresh(ctx context.Context, key string) (*schema.RefreshAudit, error)

	// GetLatestRecordTime retrieves the persistence time of the most recent
	// activity record for a key, or nil if no rows exist
	GetLatestRecordTime(ctx context.Context, key string) (*time.Time, error)

	// ListKeys retrieves every key that has persisted activity records
	ListKeys(ctx context.Context) ([]string, error)
}
