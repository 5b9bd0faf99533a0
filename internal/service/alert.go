// Alert 수집 비즈니스 로직 정의
// client에서 code scanning alert 목록을 받아 정규화 후 DB에 upsert
//
// 처리 흐름:
//  1. GitHub API에서 alert 전체 조회 (실패하면 주기 전체 중단)
//  2. 빈 목록은 에러가 아님: 로그만 남기고 종료
//  3. 각 alert를 normalizeAlert로 정규화 (null 처리 → truncation 순서)
//  4. number 기준 upsert, 개별 실패는 로그 후 계속

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/build-pulse/backend/internal/model"
)

// alertFetcher - client 인터페이스
type alertFetcher interface {
	FetchCodeScanningAlerts(ctx context.Context) ([]model.AlertPayload, error)
}

// alertRepo - DB 인터페이스 (alert 쓰기 전용)
type alertRepo interface {
	UpsertAlert(ctx context.Context, a model.CodeAlert) error
}

// AlertService 구조체 정의
type AlertService struct {
	fetcher alertFetcher
	repo    alertRepo
}

// AlertService 객체 생성
func NewAlertService(fetcher alertFetcher, repo alertRepo) *AlertService {
	return &AlertService{
		fetcher: fetcher,
		repo:    repo,
	}
}

// Ingest - 수집 1주기 실행, 저장 건수 반환
func (s *AlertService) Ingest(ctx context.Context) (int, error) {
	alerts, err := s.fetcher.FetchCodeScanningAlerts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch alerts: %w", err)
	}

	if len(alerts) == 0 {
		log.Printf("No alerts found.")
		return 0, nil
	}

	saved := 0
	for _, payload := range alerts {
		if err := s.repo.UpsertAlert(ctx, normalizeAlert(payload)); err != nil {
			log.Printf("Failed to save alert %d: %v", payload.Number, err)
			continue
		}
		saved++
	}

	log.Printf("Inserted %d alerts.", saved)
	return saved, nil
}
