package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/neis-dashboard/internal/config"
	"github.com/schooldesk/neis-dashboard/internal/database"
	"github.com/schooldesk/neis-dashboard/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.NewSQLite(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator, err := database.NewMigrator(db)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())

	return db
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	first := &models.Assessment{Subject: "수학", Title: "수행평가 1", DueDate: "2025-09-10", CreatedAt: "2025-09-01T09:00:00+09:00"}
	second := &models.Assessment{Subject: "영어", Title: "수행평가 2", DueDate: "2025-09-12", CreatedAt: "2025-09-01T09:05:00+09:00"}

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreateThenGetAllRoundTrip(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	created := &models.Assessment{
		Subject:   "국어",
		Title:     "독서 감상문",
		DueDate:   "2025-10-01",
		Detail:    "소설 한 편을 읽고 감상문 제출",
		CreatedAt: "2025-09-01T09:00:00+09:00",
	}
	require.NoError(t, repo.Create(ctx, created))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Subject, got.Subject)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.DueDate, got.DueDate)
	assert.Equal(t, created.Detail, got.Detail)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestGetAllOrdersByDueDateString(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	// Bytewise string ordering: empty first, digits before letters.
	dueDates := []string{"2025-12-01", "abc", "", "2025-03-02"}
	for _, due := range dueDates {
		require.NoError(t, repo.Create(ctx, &models.Assessment{Title: "t", DueDate: due, CreatedAt: "2025-09-01T09:00:00+09:00"}))
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)

	got := make([]string, 0, len(all))
	for _, a := range all {
		got = append(got, a.DueDate)
	}
	assert.Equal(t, []string{"", "2025-03-02", "2025-12-01", "abc"}, got)
}

func TestGetAllEmpty(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t), zerolog.Nop())

	all, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMigrationsIdempotent(t *testing.T) {
	db := newTestDB(t)

	migrator, err := database.NewMigrator(db)
	require.NoError(t, err)
	assert.NoError(t, migrator.Up())
}
