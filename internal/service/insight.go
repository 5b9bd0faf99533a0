// Insight 수집 비즈니스 로직 정의
// client에서 workflow run 1페이지를 받아 정규화 후 DB에 upsert
//
// 처리 흐름:
//  1. CircleCI Insights API에서 1페이지 조회 (실패하면 주기 전체 중단)
//  2. 빈 페이지는 에러가 아님: 로그만 남기고 종료
//  3. 순회하면서 최대 created_at 추적 (strict greater-than, 동률이면 먼저 본 값 유지)
//  4. 각 run을 정규화 후 id 기준 upsert
//  5. 저장 건수와 최대 시각 반환 (없으면 nil)

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/build-pulse/backend/internal/model"
)

// insightFetcher - client 인터페이스
type insightFetcher interface {
	FetchWorkflowInsights(ctx context.Context) (*model.InsightPage, error)
}

// insightRepo - DB 인터페이스 (insight 쓰기 전용)
type insightRepo interface {
	UpsertInsight(ctx context.Context, in model.Insight) error
}

// InsightService 구조체 정의
type InsightService struct {
	fetcher insightFetcher
	repo    insightRepo
}

// InsightService 객체 생성
func NewInsightService(fetcher insightFetcher, repo insightRepo) *InsightService {
	return &InsightService{
		fetcher: fetcher,
		repo:    repo,
	}
}

// Ingest - 수집 1주기 실행
// 반환값: 저장 건수, 이번 페이지의 최대 created_at (빈 페이지면 nil)
//
// 개별 row의 upsert 실패는 로그만 남기고 다음 row로 넘어갑니다.
// row 하나 때문에 주기 전체가 죽는 것을 막기 위한 의도된 동작
func (s *InsightService) Ingest(ctx context.Context) (int, *time.Time, error) {
	page, err := s.fetcher.FetchWorkflowInsights(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to fetch insights: %w", err)
	}

	if page == nil || len(page.Items) == 0 {
		log.Printf("No insights found.")
		return 0, nil, nil
	}

	var lastSeen *time.Time
	saved := 0
	for _, item := range page.Items {
		if lastSeen == nil || item.CreatedAt.After(*lastSeen) {
			ts := item.CreatedAt
			lastSeen = &ts
		}

		if err := s.repo.UpsertInsight(ctx, normalizeInsight(item)); err != nil {
			log.Printf("Failed to save insight %s: %v", item.ID, err)
			continue
		}
		saved++
	}

	log.Printf("Inserted %d insights.", saved)
	return saved, lastSeen, nil
}
