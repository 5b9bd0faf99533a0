// Alert 수집 트리거 핸들러

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/build-pulse/backend/internal/model"
)

// alertService - 서비스 인터페이스
type alertService interface {
	Ingest(ctx context.Context) (int, error)
}

// AlertHandler 구조체 정의
type AlertHandler struct {
	svc alertService
}

func NewAlertHandler(svc alertService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// Ingest godoc
// @Summary Run one code scanning alert ingestion cycle
// @Tags ingest
// @Produce json
// @Success 200 {object} model.IngestResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) Ingest(c *gin.Context) {
	count, err := h.svc.Ingest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "An error occurred while retrieving alerts."})
		return
	}

	c.JSON(http.StatusOK, model.IngestResponse{Status: "success", Inserted: count})
}
