package db

import (
	"context"

	"github.com/build-pulse/backend/internal/model"
)

// EnsureEstimateSchema - 예측 시계열 테이블 2개 생성 (avg_durations, avg_time_between_runs)
func (db *Postgres) EnsureEstimateSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS avg_durations (
			start_time TIMESTAMPTZ PRIMARY KEY,
			avg_duration INT
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS avg_time_between_runs (
			start_time TIMESTAMPTZ PRIMARY KEY,
			avg_time_between INT
		)
		`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// UpsertAvgDuration - 평균 소요 시간 예측값을 start_time 기준으로 insert-or-replace
func (db *Postgres) UpsertAvgDuration(ctx context.Context, p model.EstimatePoint) error {
	query := `
		INSERT INTO avg_durations (start_time, avg_duration)
		VALUES ($1, $2)
		ON CONFLICT (start_time) DO UPDATE SET
			avg_duration = EXCLUDED.avg_duration
	`

	_, err := db.Pool.Exec(ctx, query, p.StartTime, p.Value)
	return err
}

// UpsertAvgRunGap - 평균 실행 간격 예측값을 start_time 기준으로 insert-or-replace
func (db *Postgres) UpsertAvgRunGap(ctx context.Context, p model.EstimatePoint) error {
	query := `
		INSERT INTO avg_time_between_runs (start_time, avg_time_between)
		VALUES ($1, $2)
		ON CONFLICT (start_time) DO UPDATE SET
			avg_time_between = EXCLUDED.avg_time_between
	`

	_, err := db.Pool.Exec(ctx, query, p.StartTime, p.Value)
	return err
}
