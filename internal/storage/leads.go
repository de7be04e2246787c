// Package storage persists the lead audit trail in PostgreSQL. The audit
// table is a local record of every accepted submission, independent of the
// CMS and email downstreams.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/Raph13009/notion-blogs/internal/domain"
	"github.com/Raph13009/notion-blogs/internal/logger"
)

const connectTimeout = 5 * time.Second

// Connect opens and pings a PostgreSQL connection.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// LeadStore writes lead audit rows.
type LeadStore struct {
	db     *sqlx.DB
	logger logger.Logger
}

func NewLeadStore(db *sqlx.DB, log logger.Logger) *LeadStore {
	return &LeadStore{db: db, logger: log}
}

const insertLeadQuery = `
	INSERT INTO leads (id, source, email, first_name, estimate_min, estimate_max, score, context, submitted_at)
	VALUES (:id, :source, :email, :first_name, :estimate_min, :estimate_max, :score, :context, :submitted_at)`

// Insert persists one audit row. A missing id or timestamp is filled in.
func (s *LeadStore) Insert(ctx context.Context, record domain.LeadRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = time.Now().UTC()
	}

	if _, err := s.db.NamedExecContext(ctx, insertLeadQuery, record); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	s.logger.Debug("Lead audit row written",
		logger.String("lead_id", record.ID),
		logger.String("source", record.Source),
	)
	return nil
}

// CountBySource reports the number of audited leads per source.
func (s *LeadStore) CountBySource(ctx context.Context) (map[string]int, error) {
	rows := []struct {
		Source string `db:"source"`
		Total  int    `db:"total"`
	}{}

	err := s.db.SelectContext(ctx, &rows,
		`SELECT source, COUNT(*) AS total FROM leads GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Source] = row.Total
	}
	return counts, nil
}
