package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/build-pulse/backend/internal/config"
)

// Ping godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} model.PingResponse
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Root - Grafana 대시보드로 리다이렉트
// 첫 수집이 DB를 채울 시간을 주기 위해 설정된 지연(기본 5초) 후 이동
func Root(cfg config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.RedirectDelay > 0 {
			select {
			case <-time.After(cfg.RedirectDelay):
			case <-c.Request.Context().Done():
				return
			}
		}
		c.Redirect(http.StatusFound, cfg.DashboardURL)
	}
}
