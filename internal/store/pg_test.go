package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/omnifolio/influence-indexer/internal/domain"
	"github.com/omnifolio/influence-indexer/internal/store/schema"
	"github.com/omnifolio/influence-indexer/internal/types"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		// Use external database
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	// Connect to the database
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Initialize the database schema
	err = testDB.AutoMigrate(&schema.LobbyingActivity{}, &schema.RefreshAudit{})
	if err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	// Cleanup
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	os.Exit(code)
}

// testRows builds rows for a key, one per (year, quarter) pair
func testRows(t *testing.T, key string, periods ...[2]int) []schema.LobbyingActivity {
	t.Helper()

	records := make([]domain.ActivityRecord, 0, len(periods))
	for i, period := range periods {
		amount := float64((i + 1) * 100_000)
		records = append(records, domain.ActivityRecord{
			Key:                key,
			FilingUUID:         fmt.Sprintf("%s-%d", key, i),
			FilingDate:         time.Date(period[0], time.Month(period[1]*3), 1, 0, 0, 0, 0, time.UTC),
			FilingYear:         period[0],
			FilingQuarter:      period[1],
			Registrant:         "Capitol Advocates LLC",
			Amount:             &amount,
			Lobbyists:          []string{"Jane Roe"},
			IssueCodes:         []string{"TAX"},
			GovernmentEntities: []string{"U.S. Senate"},
		})
	}

	rows, err := types.ActivitiesToSchema(records)
	require.NoError(t, err)
	return rows
}

func TestReplaceAndGetActivityRecords(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB)
	key := "RT-" + uuid.NewString()[:8]

	rows := testRows(t, key, [2]int{2024, 4}, [2]int{2025, 1})
	require.NoError(t, s.ReplaceActivityRecords(ctx, key, rows))

	got, err := s.GetActivityRecords(ctx, key, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by filing date, most recent first
	assert.Equal(t, key+"-1", got[0].FilingUUID)
	assert.Equal(t, key+"-0", got[1].FilingUUID)

	// The JSON list columns survive the round trip
	records, err := types.ActivitiesToDomain(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Roe"}, records[0].Lobbyists)
	assert.Equal(t, []string{"TAX"}, records[0].IssueCodes)
	assert.Equal(t, []string{"U.S. Senate"}, records[0].GovernmentEntities)
}

func TestReplaceActivityRecordsIsWholesale(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB)
	key := "WS-" + uuid.NewString()[:8]

	require.NoError(t, s.ReplaceActivityRecords(ctx, key, testRows(t, key, [2]int{2024, 1}, [2]int{2024, 2}, [2]int{2024, 3})))

	// Replace with a smaller, different set: old rows must be gone
	replacement := testRows(t, key+"-new", [2]int{2025, 1})
	for i := range replacement {
		replacement[i].Key = key
	}
	require.NoError(t, s.ReplaceActivityRecords(ctx, key, replacement))

	got, err := s.GetActivityRecords(ctx, key, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2025, got[0].FilingYear)
}

func TestReplaceActivityRecordsEmptyClears(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB)
	key := "CL-" + uuid.NewString()[:8]

	require.NoError(t, s.ReplaceActivityRecords(ctx, key, testRows(t, key, [2]int{2024, 1})))
	require.NoError(t, s.ReplaceActivityRecords(ctx, key, nil))

	got, err := s.GetActivityRecords(ctx, key, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetActivityRecordsMinYear(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB)
	key := "MY-" + uuid.NewString()[:8]

	require.NoError(t, s.ReplaceActivityRecords(ctx, key, testRows(t, key, [2]int{2022, 4}, [2]int{2024, 1}, [2]int{2025, 1})))

	got, err := s.GetActivityRecords(ctx, key, 2024)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, row := range got {
		assert.GreaterOrEqual(t, row.FilingYear, 2024)
	}
}

func TestRefreshAuditLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB)
	key := "AU-" + uuid.NewString()[:8]

	// Nothing yet
	last, err := s.GetLastSuccessfulRefresh(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, last)

	// A failed attempt never becomes the last successful refresh
	failedID, err := s.BeginRefreshAudit(ctx, key)
	require.NoError(t, err)
	require.NoError(t, s.CompleteRefreshAudit(ctx, failedID, schema.RefreshStatusFailed, 0, 43200, "upstream down"))

	last, err = s.GetLastSuccessfulRefresh(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, last)

	// A successful attempt does
	successID, err := s.BeginRefreshAudit(ctx, key)
	require.NoError(t, err)
	require.NoError(t, s.CompleteRefreshAudit(ctx, successID, schema.RefreshStatusSuccess, 7, 43200, ""))

	last, err = s.GetLastSuccessfulRefresh(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, successID, last.ID)
	assert.Equal(t, schema.RefreshStatusSuccess, last.Status)
	require.NotNil(t, last.CompletedAt)
	require.NotNil(t, last.RecordCount)
	assert.Equal(t, 7, *last.RecordCount)
	require.NotNil(t, last.TTLSeconds)
	assert.Equal(t, 43200, *last.TTLSeconds)
	assert.Nil(t, last.ErrorMessage)
}

func TestGetLatestRecordTime(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB)
	key := "LT-" + uuid.NewString()[:8]

	latest, err := s.GetLatestRecordTime(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, s.ReplaceActivityRecords(ctx, key, testRows(t, key, [2]int{2025, 1})))

	latest, err = s.GetLatestRecordTime(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.WithinDuration(t, time.Now().UTC(), *latest, time.Minute)
}

func TestListKeys(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB)
	keyA := "LK-A-" + uuid.NewString()[:8]
	keyB := "LK-B-" + uuid.NewString()[:8]

	require.NoError(t, s.ReplaceActivityRecords(ctx, keyA, testRows(t, keyA, [2]int{2025, 1}, [2]int{2025, 2})))
	require.NoError(t, s.ReplaceActivityRecords(ctx, keyB, testRows(t, keyB, [2]int{2025, 1})))

	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, keyA)
	assert.Contains(t, keys, keyB)

	// Distinct: keyA has two rows but appears once
	seen := 0
	for _, key := range keys {
		if key == keyA {
			seen++
		}
	}
	assert.Equal(t, 1, seen)
}
