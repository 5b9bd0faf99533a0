package db

import (
	"context"

	"github.com/build-pulse/backend/internal/model"
)

// EnsureAlertSchema - alerts 테이블 생성
// 자유 텍스트 컬럼은 전부 VARCHAR(255): 정규화 단계에서 미리 잘라서 들어옴
func (db *Postgres) EnsureAlertSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS alerts (
			id BIGINT PRIMARY KEY,
			context VARCHAR(255),
			severity VARCHAR(255),
			security_severity VARCHAR(255),
			created_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ,
			url VARCHAR(255),
			html_url VARCHAR(255),
			state VARCHAR(255),
			fixed_by VARCHAR(255) NULL,
			dismissed_by VARCHAR(255) NULL,
			dismissed_at TIMESTAMPTZ NULL,
			dismissed_reason VARCHAR(255) NULL,
			dismissed_comment VARCHAR(255) NULL,
			rule VARCHAR(255),
			tool VARCHAR(255)
		)
		`,
		`CREATE INDEX IF NOT EXISTS alerts_state_idx ON alerts(state)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// UpsertAlert - code scanning alert를 number 기준으로 insert-or-replace
func (db *Postgres) UpsertAlert(ctx context.Context, a model.CodeAlert) error {
	query := `
		INSERT INTO alerts (
			id, context, severity, security_severity, created_at, updated_at,
			url, html_url, state, fixed_by, dismissed_by, dismissed_at,
			dismissed_reason, dismissed_comment, rule, tool
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			context = EXCLUDED.context,
			severity = EXCLUDED.severity,
			security_severity = EXCLUDED.security_severity,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at,
			url = EXCLUDED.url,
			html_url = EXCLUDED.html_url,
			state = EXCLUDED.state,
			fixed_by = EXCLUDED.fixed_by,
			dismissed_by = EXCLUDED.dismissed_by,
			dismissed_at = EXCLUDED.dismissed_at,
			dismissed_reason = EXCLUDED.dismissed_reason,
			dismissed_comment = EXCLUDED.dismissed_comment,
			rule = EXCLUDED.rule,
			tool = EXCLUDED.tool
	`

	_, err := db.Pool.Exec(ctx, query,
		a.Number,
		a.Context,
		a.Severity,
		a.SecuritySeverity,
		a.CreatedAt,
		a.UpdatedAt,
		a.URL,
		a.HTMLURL,
		a.State,
		a.FixedBy,
		a.DismissedBy,
		a.DismissedAt,
		a.DismissedReason,
		a.DismissedComment,
		a.Rule,
		a.Tool,
	)
	return err
}
