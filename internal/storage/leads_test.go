package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raph13009/notion-blogs/internal/domain"
	"github.com/Raph13009/notion-blogs/internal/logger"
)

func newMockStore(t *testing.T) (*LeadStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewLeadStore(sqlx.NewDb(db, "postgres"), logger.NewNop()), mock
}

func TestLeadStoreInsert(t *testing.T) {
	store, mock := newMockStore(t)

	submittedAt := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO leads`).
		WithArgs("lead-1", domain.LeadSourceEstimator, "jean@exemple.fr", "Jean",
			2300, 4100, 12.5, "Ambition: Base scalable", submittedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Insert(context.Background(), domain.LeadRecord{
		ID:          "lead-1",
		Source:      domain.LeadSourceEstimator,
		Email:       "jean@exemple.fr",
		FirstName:   "Jean",
		EstimateMin: 2300,
		EstimateMax: 4100,
		Score:       12.5,
		Context:     "Ambition: Base scalable",
		SubmittedAt: submittedAt,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadStoreInsertFillsIDAndTimestamp(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO leads`).
		WithArgs(sqlmock.AnyArg(), domain.LeadSourceBlogCTA, "jean@exemple.fr", "",
			0, 0, 0.0, "Titre: X | Slug: y", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Insert(context.Background(), domain.LeadRecord{
		Source:  domain.LeadSourceBlogCTA,
		Email:   "jean@exemple.fr",
		Context: "Titre: X | Slug: y",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadStoreCountBySource(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT source, COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"source", "total"}).
			AddRow(domain.LeadSourceEstimator, 7).
			AddRow(domain.LeadSourceBlogCTA, 3))

	counts, err := store.CountBySource(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, counts[domain.LeadSourceEstimator])
	assert.Equal(t, 3, counts[domain.LeadSourceBlogCTA])
}
