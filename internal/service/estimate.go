// 예측 시계열 계산 로직 정의
//
// insight 수집이 성공할 때마다 최근 3일 구간으로 두 가지 추정치를 다시 계산:
//   - 평균 빌드 소요 시간 (초)
//   - 평균 실행 간격 (시간)
//
// 두 값 모두 마지막으로 관측된 run 시각 기준 +3일/+6일/+9일 지점에 그대로
// 찍는 flat projection입니다. 대시보드 추세선 용도라 이 정도면 충분하고,
// 실제 시계열 모델로 바꾸려면 이 서비스만 교체하면 됨

package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/build-pulse/backend/internal/model"
)

const (
	// trailingWindow - 추정치 계산에 사용하는 구간 길이
	trailingWindow = 3 * 24 * time.Hour

	// projectionStep / projectionCount - 예측 지점 간격과 개수 (+3d, +6d, +9d)
	projectionStep  = 3
	projectionCount = 3
)

// insightWindowReader - DB 인터페이스 (구간 조회 전용)
type insightWindowReader interface {
	GetInsightsBetween(ctx context.Context, from, to time.Time) ([]model.Insight, error)
}

// estimateRepo - DB 인터페이스 (예측값 쓰기 전용)
type estimateRepo interface {
	UpsertAvgDuration(ctx context.Context, p model.EstimatePoint) error
	UpsertAvgRunGap(ctx context.Context, p model.EstimatePoint) error
}

// EstimateService 구조체 정의
type EstimateService struct {
	reader insightWindowReader
	repo   estimateRepo
	now    func() time.Time // 테스트에서 주입
}

// EstimateService 객체 생성
func NewEstimateService(reader insightWindowReader, repo estimateRepo) *EstimateService {
	return &EstimateService{
		reader: reader,
		repo:   repo,
		now:    time.Now,
	}
}

// Recompute - 최근 3일 구간의 추정치를 다시 계산해서 예측 지점에 upsert
// lastSeen은 직전 수집 주기에서 관측된 최대 created_at
// nil이면 (새 run이 없었으면) 계산할 근거가 없으므로 전체를 건너뜀
func (s *EstimateService) Recompute(ctx context.Context, lastSeen *time.Time) error {
	if lastSeen == nil {
		log.Printf("Skipping estimates: no insights observed this cycle.")
		return nil
	}

	to := s.now()
	from := to.Add(-trailingWindow)
	rows, err := s.reader.GetInsightsBetween(ctx, from, to)
	if err != nil {
		return err
	}

	anchors := projectionAnchors(*lastSeen)

	// 빈 구간 가드: 0으로 나누는 대신 로그 후 skip
	if avg, ok := meanDuration(rows); ok {
		log.Printf("Average duration for the last 3 days: %d seconds.", avg)
		for _, anchor := range anchors {
			if err := s.repo.UpsertAvgDuration(ctx, model.EstimatePoint{StartTime: anchor, Value: avg}); err != nil {
				return err
			}
		}
	} else {
		log.Printf("Skipping average duration estimate: no insights in window.")
	}

	// row가 2개 미만이면 간격 자체가 정의되지 않으므로 skip
	if gap, ok := meanGapHours(rows); ok {
		log.Printf("Average time between runs for the last 3 days: %d hours.", gap)
		for _, anchor := range anchors {
			if err := s.repo.UpsertAvgRunGap(ctx, model.EstimatePoint{StartTime: anchor, Value: gap}); err != nil {
				return err
			}
		}
	} else {
		log.Printf("Skipping average run gap estimate: fewer than two insights in window.")
	}

	return nil
}

// meanDuration - 구간 내 run들의 산술 평균 소요 시간 (초, 반올림)
func meanDuration(rows []model.Insight) (int64, bool) {
	if len(rows) == 0 {
		return 0, false
	}

	var sum int64
	for _, r := range rows {
		sum += r.Duration
	}
	return int64(math.Round(float64(sum) / float64(len(rows)))), true
}

// meanGapHours - 조회 순서 기준 연속 쌍의 created_at 간격 평균 (시간, 반올림)
// 조회 순서가 시간순이라는 보장이 없어서 절대값을 취함
func meanGapHours(rows []model.Insight) (int64, bool) {
	if len(rows) < 2 {
		return 0, false
	}

	var total float64
	for i := 1; i < len(rows); i++ {
		total += rows[i].CreatedAt.Sub(rows[i-1].CreatedAt).Seconds()
	}

	meanSecs := math.Abs(total / float64(len(rows)-1))
	return int64(math.Round(meanSecs / 3600)), true
}

// projectionAnchors - lastSeen 기준 +3일/+6일/+9일 예측 지점
func projectionAnchors(lastSeen time.Time) []time.Time {
	anchors := make([]time.Time, 0, projectionCount)
	for i := 1; i <= projectionCount; i++ {
		anchors = append(anchors, lastSeen.AddDate(0, 0, i*projectionStep))
	}
	return anchors
}
