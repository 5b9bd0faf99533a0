package service

import (
	"context"
	"testing"
	"time"

	"github.com/build-pulse/backend/internal/model"
)

type fakeWindowReader struct {
	rows    []model.Insight
	queried bool
}

func (f *fakeWindowReader) GetInsightsBetween(ctx context.Context, from, to time.Time) ([]model.Insight, error) {
	f.queried = true
	return f.rows, nil
}

type fakeEstimateRepo struct {
	durations []model.EstimatePoint
	gaps      []model.EstimatePoint
}

func (f *fakeEstimateRepo) UpsertAvgDuration(ctx context.Context, p model.EstimatePoint) error {
	f.durations = append(f.durations, p)
	return nil
}

func (f *fakeEstimateRepo) UpsertAvgRunGap(ctx context.Context, p model.EstimatePoint) error {
	f.gaps = append(f.gaps, p)
	return nil
}

func newTestEstimateService(reader *fakeWindowReader, repo *fakeEstimateRepo) *EstimateService {
	svc := NewEstimateService(reader, repo)
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestMeanDuration(t *testing.T) {
	tests := []struct {
		name      string
		durations []int64
		want      int64
		wantOK    bool
	}{
		{name: "simple-mean", durations: []int64{10, 20, 30}, want: 20, wantOK: true},
		{name: "rounded-up", durations: []int64{1, 2}, want: 2, wantOK: true},
		{name: "single-row", durations: []int64{42}, want: 42, wantOK: true},
		{name: "empty-window-guarded", durations: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]model.Insight, 0, len(tt.durations))
			for _, d := range tt.durations {
				rows = append(rows, model.Insight{Duration: d})
			}

			got, ok := meanDuration(rows)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("meanDuration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeanGapHours(t *testing.T) {
	epoch := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	at := func(secs int) model.Insight {
		return model.Insight{CreatedAt: epoch.Add(time.Duration(secs) * time.Second)}
	}

	tests := []struct {
		name   string
		rows   []model.Insight
		want   int64
		wantOK bool
	}{
		// (3600 + 7200) / 2 = 5400초 → 1.5시간 → 반올림 2시간
		{name: "mixed-gaps", rows: []model.Insight{at(0), at(3600), at(10800)}, want: 2, wantOK: true},
		{name: "uniform-gap", rows: []model.Insight{at(0), at(3600)}, want: 1, wantOK: true},
		// 조회 순서가 역순이어도 절대값이라 결과 동일
		{name: "reversed-order", rows: []model.Insight{at(10800), at(3600), at(0)}, want: 2, wantOK: true},
		{name: "single-row-guarded", rows: []model.Insight{at(0)}, wantOK: false},
		{name: "empty-window-guarded", rows: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := meanGapHours(tt.rows)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("meanGapHours() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProjectionAnchors(t *testing.T) {
	last := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	anchors := projectionAnchors(last)

	if len(anchors) != 3 {
		t.Fatalf("expected 3 anchors, got %d", len(anchors))
	}
	for i, days := range []int{3, 6, 9} {
		want := last.AddDate(0, 0, days)
		if !anchors[i].Equal(want) {
			t.Fatalf("anchor %d = %v, want %v", i, anchors[i], want)
		}
	}
}

func TestRecomputeWritesThreePointsPerSeries(t *testing.T) {
	epoch := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	reader := &fakeWindowReader{rows: []model.Insight{
		{Duration: 10, CreatedAt: epoch},
		{Duration: 20, CreatedAt: epoch.Add(time.Hour)},
		{Duration: 30, CreatedAt: epoch.Add(3 * time.Hour)},
	}}
	repo := &fakeEstimateRepo{}
	svc := newTestEstimateService(reader, repo)

	lastSeen := epoch.Add(3 * time.Hour)
	if err := svc.Recompute(context.Background(), &lastSeen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.durations) != 3 || len(repo.gaps) != 3 {
		t.Fatalf("expected 3 points per series, got %d/%d", len(repo.durations), len(repo.gaps))
	}
	for i, days := range []int{3, 6, 9} {
		want := lastSeen.AddDate(0, 0, days)
		if !repo.durations[i].StartTime.Equal(want) {
			t.Fatalf("duration anchor %d = %v, want %v", i, repo.durations[i].StartTime, want)
		}
		if repo.durations[i].Value != 20 {
			t.Fatalf("duration value = %d, want 20", repo.durations[i].Value)
		}
	}
}

func TestRecomputeEmptyWindowWritesNothing(t *testing.T) {
	reader := &fakeWindowReader{}
	repo := &fakeEstimateRepo{}
	svc := newTestEstimateService(reader, repo)

	lastSeen := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	if err := svc.Recompute(context.Background(), &lastSeen); err != nil {
		t.Fatalf("expected empty window to be guarded, got %v", err)
	}
	if len(repo.durations) != 0 || len(repo.gaps) != 0 {
		t.Fatalf("expected no writes for empty window")
	}
}

func TestRecomputeSkipsWithoutLastSeen(t *testing.T) {
	reader := &fakeWindowReader{rows: []model.Insight{{Duration: 10}}}
	repo := &fakeEstimateRepo{}
	svc := newTestEstimateService(reader, repo)

	if err := svc.Recompute(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reader.queried {
		t.Fatalf("expected no window query when nothing was observed")
	}
	if len(repo.durations) != 0 || len(repo.gaps) != 0 {
		t.Fatalf("expected no writes without an anchor timestamp")
	}
}

func TestRecomputeSingleRowSkipsGapOnly(t *testing.T) {
	epoch := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	reader := &fakeWindowReader{rows: []model.Insight{{Duration: 50, CreatedAt: epoch}}}
	repo := &fakeEstimateRepo{}
	svc := newTestEstimateService(reader, repo)

	lastSeen := epoch
	if err := svc.Recompute(context.Background(), &lastSeen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.durations) != 3 {
		t.Fatalf("expected duration series written, got %d", len(repo.durations))
	}
	if len(repo.gaps) != 0 {
		t.Fatalf("expected gap series skipped for single row, got %d", len(repo.gaps))
	}
}
