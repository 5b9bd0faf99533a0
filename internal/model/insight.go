// CircleCI Insights API의 workflow run 레코드 정의
// client, service, db 레이어에서 공통으로 사용하기 때문에 model 레이어에 별도로 정의

package model

import "time"

// Insight - workflow run 1건
// id 기준으로 upsert되므로 같은 run이 재수집되어도 중복 저장되지 않음
type Insight struct {
	ID     string `json:"id"`
	Branch string `json:"branch"`

	// Duration: run 소요 시간 (초)
	Duration int64 `json:"duration"`

	// CreatedAt: run 생성 시각 (UTC)
	// 수집 주기마다 최대값을 추적하여 예측 시계열의 기준 시각으로 사용
	CreatedAt time.Time `json:"created_at"`

	// StoppedAt: run 종료 시각, 실행 중이면 null
	StoppedAt *time.Time `json:"stopped_at"`

	CreditsUsed int64  `json:"credits_used"`
	Status      string `json:"status"`
	IsApproval  bool   `json:"is_approval"`
}

// InsightPage - Insights API 응답 페이지
type InsightPage struct {
	Items         []Insight `json:"items"`
	NextPageToken string    `json:"next_page_token"`
}
