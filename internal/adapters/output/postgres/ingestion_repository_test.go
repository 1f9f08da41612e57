package postgres

import (
	"testing"
	"time"

	"line-knowledge-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *IngestionRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return NewIngestionRepository(db)
}

func seed(t *testing.T, repo *IngestionRepository, logicalID string, outcome domain.IngestionOutcome, at time.Time) {
	t.Helper()
	_, err := repo.CreateRecord(&domain.IngestionRecord{
		LogicalID:   logicalID,
		DisplayName: "doc-" + at.Format("150405") + ".pdf",
		SourceExt:   ".pdf",
		Outcome:     outcome,
		CreatedAt:   &at,
	})
	require.NoError(t, err)
}

func TestCreateRecordAssignsID(t *testing.T) {
	repo := newTestRepository(t)

	resp, err := repo.CreateRecord(&domain.IngestionRecord{
		LogicalID:   "user_U1",
		DisplayName: "report.pdf",
		SourceExt:   ".pdf",
		Outcome:     domain.IngestionOutcomeSucceeded,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ID)
	require.NotNil(t, resp.CreatedAt)
	assert.Equal(t, "report.pdf", resp.DisplayName)
	assert.NoError(t, repo.Ping())
}

func TestGetRecordsFiltersAndPaginates(t *testing.T) {
	repo := newTestRepository(t)
	base := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)

	seed(t, repo, "user_U1", domain.IngestionOutcomeSucceeded, base)
	seed(t, repo, "user_U1", domain.IngestionOutcomeRejected, base.Add(time.Minute))
	seed(t, repo, "user_U1", domain.IngestionOutcomeSucceeded, base.Add(2*time.Minute))
	seed(t, repo, "group_G1", domain.IngestionOutcomeSucceeded, base.Add(3*time.Minute))

	logicalID := "user_U1"
	page := 1
	result, err := repo.GetRecords(domain.QueryIngestionRequest{
		LogicalID:  &logicalID,
		Page:       &page,
		Pagination: &domain.Pagination{Limit: 2, Offset: 0},
		SortMethod: &domain.SortMethod{OrderBy: "created_at", Asc: false},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), *result.TotalItem)
	require.Len(t, result.Records, 2)
	assert.True(t, result.Records[0].CreatedAt.After(*result.Records[1].CreatedAt), "expected newest first")
	assert.Equal(t, 2, *result.PerPage)

	outcome := string(domain.IngestionOutcomeRejected)
	rejected, err := repo.GetRecords(domain.QueryIngestionRequest{Outcome: &outcome})
	require.NoError(t, err)
	require.Len(t, rejected.Records, 1)
	assert.Equal(t, domain.IngestionOutcomeRejected, rejected.Records[0].Outcome)
}

func TestGetRecordsIgnoresUnknownSortColumn(t *testing.T) {
	repo := newTestRepository(t)
	base := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	seed(t, repo, "user_U1", domain.IngestionOutcomeSucceeded, base)
	seed(t, repo, "user_U1", domain.IngestionOutcomeSucceeded, base.Add(time.Minute))

	result, err := repo.GetRecords(domain.QueryIngestionRequest{
		SortMethod: &domain.SortMethod{OrderBy: "id; DROP TABLE ingestion_records", Asc: true},
		Pagination: &domain.Pagination{Limit: 10},
	})

	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.True(t, result.Records[0].CreatedAt.Before(*result.Records[1].CreatedAt))
}
