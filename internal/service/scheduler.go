// 주기 수집 스케줄러 정의
//
// 동작 방식:
//  - 시작 직후 각 스트림을 1회 즉시 실행 (fire-and-forget)
//  - 이후 insight 30초 / alert 180초 독립 타이머로 반복
//  - 같은 스트림의 이전 주기가 아직 실행 중이면 해당 tick은 건너뜀
//    (upsert가 멱등이라 겹쳐도 데이터는 안전하지만, 업스트림이 느릴 때
//    주기가 무한히 쌓이는 것을 막음)
//  - 주기 결과는 report 채널로 모아서 sink 고루틴 한 곳에서 로깅

package service

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/build-pulse/backend/internal/config"
)

// CycleReport - 수집 주기 1회의 실행 결과
type CycleReport struct {
	Stream  string
	CycleID string
	Count   int
	Elapsed time.Duration
	Err     error
}

// cycleRunner - 스트림 1주기 실행 함수
type cycleRunner func(ctx context.Context) (int, error)

// insightIngestor / alertIngestor / estimator - 서비스 인터페이스
type insightIngestor interface {
	Ingest(ctx context.Context) (int, *time.Time, error)
}

type alertIngestor interface {
	Ingest(ctx context.Context) (int, error)
}

type estimator interface {
	Recompute(ctx context.Context, lastSeen *time.Time) error
}

// Scheduler 구조체 정의
type Scheduler struct {
	insights  insightIngestor
	alerts    alertIngestor
	estimates estimator

	insightInterval time.Duration
	alertInterval   time.Duration

	insightBusy atomic.Bool
	alertBusy   atomic.Bool

	reports chan CycleReport
}

// Scheduler 객체 생성
func NewScheduler(cfg config.PollConfig, insights insightIngestor, alerts alertIngestor, estimates estimator) *Scheduler {
	insightInterval := cfg.InsightInterval
	if insightInterval <= 0 {
		insightInterval = 30 * time.Second
	}
	alertInterval := cfg.AlertInterval
	if alertInterval <= 0 {
		alertInterval = 180 * time.Second
	}

	return &Scheduler{
		insights:        insights,
		alerts:          alerts,
		estimates:       estimates,
		insightInterval: insightInterval,
		alertInterval:   alertInterval,
		reports:         make(chan CycleReport, 16),
	}
}

// Start - 타이머 루프와 report sink를 고루틴으로 기동
// ctx 취소로 전체가 종료됨
func (s *Scheduler) Start(ctx context.Context) {
	go s.reportLoop(ctx)
	go s.runLoop(ctx, "insights", s.insightInterval, &s.insightBusy, s.insightCycle)
	go s.runLoop(ctx, "alerts", s.alertInterval, &s.alertBusy, s.alertCycle)
}

// insightCycle - 수집 성공 시에만 예측 재계산까지 이어서 실행
func (s *Scheduler) insightCycle(ctx context.Context) (int, error) {
	count, lastSeen, err := s.insights.Ingest(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.estimates.Recompute(ctx, lastSeen); err != nil {
		return count, err
	}
	return count, nil
}

func (s *Scheduler) alertCycle(ctx context.Context) (int, error) {
	return s.alerts.Ingest(ctx)
}

func (s *Scheduler) runLoop(ctx context.Context, stream string, interval time.Duration, busy *atomic.Bool, run cycleRunner) {
	// 시작 즉시 1회 실행
	s.dispatch(ctx, stream, busy, run)

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.dispatch(ctx, stream, busy, run)
		}
	}
}

// dispatch - 주기를 고루틴으로 실행 (완료를 기다리지 않음)
// 이전 주기가 실행 중이면 tick을 건너뜀
func (s *Scheduler) dispatch(ctx context.Context, stream string, busy *atomic.Bool, run cycleRunner) {
	if !busy.CompareAndSwap(false, true) {
		log.Printf("Skipping %s cycle: previous cycle still running", stream)
		return
	}

	go func() {
		defer busy.Store(false)

		cycleID := uuid.NewString()
		start := time.Now()
		count, err := run(ctx)

		select {
		case s.reports <- CycleReport{
			Stream:  stream,
			CycleID: cycleID,
			Count:   count,
			Elapsed: time.Since(start),
			Err:     err,
		}:
		case <-ctx.Done():
		}
	}()
}

// reportLoop - 주기 결과를 한 곳에서 로깅하는 sink
func (s *Scheduler) reportLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-s.reports:
			if r.Err != nil {
				log.Printf("[%s] cycle %s failed after %s: %v", r.Stream, r.CycleID, r.Elapsed.Round(time.Millisecond), r.Err)
				continue
			}
			log.Printf("[%s] cycle %s done: %d rows in %s", r.Stream, r.CycleID, r.Count, r.Elapsed.Round(time.Millisecond))
		}
	}
}
