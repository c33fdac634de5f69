// Package history records assessment runs in Postgres so operators can
// track how a subnet's health and scan rate evolve over time.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/netgauge/netgauge/pkg/assess"
)

// Service provides assessment persistence backed by Postgres.
type Service struct {
	db *sql.DB
}

// Run is one stored assessment record. Result carries the full serialized
// assess.Result; the other columns are denormalized for listing queries.
type Run struct {
	ID           uuid.UUID
	Subnet       string
	Outcome      string
	OverallScore float64
	RateLevel    string
	DeviceCount  int
	Message      string
	Result       json.RawMessage
	AssessedAt   time.Time
	CreatedAt    time.Time
}

// NewService creates a new history Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// RecordRun stores one assessment result.
func (s *Service) RecordRun(ctx context.Context, res *assess.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments
		   (id, subnet, outcome, overall_score, rate_level, device_count, message, result, assessed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID, res.Subnet, string(res.Outcome), res.OverallScore,
		res.RateLevel, res.DeviceCount, res.Message, payload, res.AssessedAt,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", res.ID, err)
	}
	return nil
}

// GetRun retrieves a single run by ID.
func (s *Service) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	r := &Run{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, subnet, outcome, overall_score, rate_level, device_count,
		        message, result, assessed_at, created_at
		 FROM assessments WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Subnet, &r.Outcome, &r.OverallScore, &r.RateLevel,
		&r.DeviceCount, &r.Message, &r.Result, &r.AssessedAt, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// ListRuns returns the most recent runs for a subnet, newest first.
func (s *Service) ListRuns(ctx context.Context, subnet string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subnet, outcome, overall_score, rate_level, device_count,
		        message, result, assessed_at, created_at
		 FROM assessments WHERE subnet = $1
		 ORDER BY assessed_at DESC LIMIT $2`,
		subnet, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs for %s: %w", subnet, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Subnet, &r.Outcome, &r.OverallScore,
			&r.RateLevel, &r.DeviceCount, &r.Message, &r.Result,
			&r.AssessedAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
