// Insight 수집 트리거 핸들러
// 스케줄러와 동일한 주기를 HTTP로 수동 실행하는 엔드포인트 (멱등, 재실행 가능)

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/build-pulse/backend/internal/model"
)

// insightService - 서비스 인터페이스
type insightService interface {
	Ingest(ctx context.Context) (int, *time.Time, error)
}

// estimateService - 예측 재계산 인터페이스
type estimateService interface {
	Recompute(ctx context.Context, lastSeen *time.Time) error
}

// InsightHandler 구조체 정의
type InsightHandler struct {
	svc       insightService
	estimates estimateService
}

func NewInsightHandler(svc insightService, estimates estimateService) *InsightHandler {
	return &InsightHandler{svc: svc, estimates: estimates}
}

// Ingest godoc
// @Summary Run one insight ingestion cycle followed by an estimate pass
// @Tags ingest
// @Produce json
// @Success 200 {object} model.IngestResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /insights [get]
func (h *InsightHandler) Ingest(c *gin.Context) {
	count, lastSeen, err := h.svc.Ingest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "An error occurred while retrieving insights."})
		return
	}

	// 수집이 성공한 주기에만 예측 재계산 (새 run이 없으면 내부에서 skip)
	if err := h.estimates.Recompute(c.Request.Context(), lastSeen); err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "An error occurred while retrieving insights."})
		return
	}

	c.JSON(http.StatusOK, model.IngestResponse{Status: "success", Inserted: count})
}
