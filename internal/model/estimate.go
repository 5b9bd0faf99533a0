package model

import "time"

// EstimatePoint - 예측 시계열 1개 지점 (start_time이 기본키, 같은 지점은 덮어씀)
type EstimatePoint struct {
	StartTime time.Time `json:"start_time"`
	Value     int64     `json:"value"`
}
