// build-pulse backend 진입점
//
// 기동 순서:
//  1. .env 로드 (없으면 프로세스 환경변수만 사용)
//  2. 설정 로드, Postgres 풀 생성
//  3. 스키마 보장 (실패하면 기동 중단)
//  4. client/service 조립, 주기 수집 스케줄러 기동
//  5. gin 라우터로 HTTP 서버 시작

package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/build-pulse/backend/internal/client"
	"github.com/build-pulse/backend/internal/config"
	"github.com/build-pulse/backend/internal/db"
	"github.com/build-pulse/backend/internal/handler"
	"github.com/build-pulse/backend/internal/service"
)

// @title build-pulse backend API
// @version 1.0
// @description Collects CircleCI workflow insights and GitHub code scanning alerts into PostgreSQL and derives forecast series for the dashboard.
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using process environment")
	}

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	database := &db.Postgres{Pool: pool}

	// 스키마 없이는 수집을 시작할 수 없으므로 실패는 치명적
	if err := database.EnsureInsightSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure insight schema: %v", err)
	}
	if err := database.EnsureAlertSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure alert schema: %v", err)
	}
	if err := database.EnsureEstimateSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure estimate schema: %v", err)
	}

	circleClient := client.NewCircleCIClient(cfg.CircleCI)
	githubClient := client.NewGitHubClient(cfg.GitHub)

	insightSvc := service.NewInsightService(circleClient, database)
	alertSvc := service.NewAlertService(githubClient, database)
	estimateSvc := service.NewEstimateService(database, database)

	scheduler := service.NewScheduler(cfg.Poll, insightSvc, alertSvc, estimateSvc)
	scheduler.Start(ctx)

	router := gin.Default()
	router.GET("/", handler.Root(cfg.Server))
	router.GET("/ping", handler.Ping)
	router.GET("/openapi.json", handler.OpenAPIDoc)
	router.GET("/insights", handler.NewInsightHandler(insightSvc, estimateSvc).Ingest)
	router.GET("/alerts", handler.NewAlertHandler(alertSvc).Ingest)

	log.Printf("App started at http://localhost:%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
