package db

import (
	"context"
	"time"

	"github.com/build-pulse/backend/internal/model"
)

// EnsureInsightSchema - insights 테이블 생성
func (db *Postgres) EnsureInsightSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS insights (
			id VARCHAR(255) PRIMARY KEY,
			branch VARCHAR(255),
			duration INT,
			created_at TIMESTAMPTZ,
			stopped_at TIMESTAMPTZ NULL,
			credits_used INT,
			status VARCHAR(255),
			is_approval BOOLEAN
		)
		`,
		`CREATE INDEX IF NOT EXISTS insights_created_at_idx ON insights(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// UpsertInsight - workflow run을 id 기준으로 insert-or-replace
// 같은 id가 다시 들어오면 모든 non-key 필드를 새 값으로 덮어씀
func (db *Postgres) UpsertInsight(ctx context.Context, in model.Insight) error {
	query := `
		INSERT INTO insights (id, branch, duration, created_at, stopped_at, credits_used, status, is_approval)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			branch = EXCLUDED.branch,
			duration = EXCLUDED.duration,
			created_at = EXCLUDED.created_at,
			stopped_at = EXCLUDED.stopped_at,
			credits_used = EXCLUDED.credits_used,
			status = EXCLUDED.status,
			is_approval = EXCLUDED.is_approval
	`

	_, err := db.Pool.Exec(ctx, query,
		in.ID,
		in.Branch,
		in.Duration,
		in.CreatedAt,
		in.StoppedAt,
		in.CreditsUsed,
		in.Status,
		in.IsApproval,
	)
	return err
}

// GetInsightsBetween - created_at이 [from, to] 구간에 있는 run 조회
// 구간 경계는 항상 바인드 파라미터로 전달 (문자열 조립 금지)
func (db *Postgres) GetInsightsBetween(ctx context.Context, from, to time.Time) ([]model.Insight, error) {
	query := `
		SELECT id, branch, duration, created_at, stopped_at, credits_used, status, is_approval
		FROM insights
		WHERE created_at >= $1 AND created_at <= $2`

	rows, err := db.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Insight
	for rows.Next() {
		var in model.Insight
		if err := rows.Scan(&in.ID, &in.Branch, &in.Duration, &in.CreatedAt, &in.StoppedAt, &in.CreditsUsed, &in.Status, &in.IsApproval); err != nil {
			return nil, err
		}
		list = append(list, in)
	}

	if list == nil {
		list = []model.Insight{}
	}
	return list, rows.Err()
}
