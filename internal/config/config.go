package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	CircleCI CircleCIConfig
	GitHub   GitHubConfig
	Postgres PostgresConfig
	Server   ServerConfig
	Poll     PollConfig
}

// CircleCIConfig - Insights API 호출 대상 (vcs/username/project 조합이 project slug)
type CircleCIConfig struct {
	BaseURL  string
	VCS      string
	Username string
	Project  string
	Workflow string
	Token    string
}

// GitHubConfig - code scanning alert 조회 대상 저장소
type GitHubConfig struct {
	BaseURL string
	Owner   string
	Repo    string
	Token   string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type ServerConfig struct {
	Port          string
	DashboardURL  string
	RedirectDelay time.Duration
}

// PollConfig - 수집 주기 (insight 30초, alert 180초 기본값)
type PollConfig struct {
	InsightInterval time.Duration
	AlertInterval   time.Duration
}

func Load() Config {
	return Config{
		CircleCI: CircleCIConfig{
			BaseURL:  getenv("CIRCLECI_BASE_URL", "https://circleci.com/api/v2"),
			VCS:      getenv("CIRCLECI_VCS", "gh"),
			Username: os.Getenv("CIRCLECI_USERNAME"),
			Project:  os.Getenv("CIRCLECI_PROJECT"),
			Workflow: os.Getenv("CIRCLECI_WORKFLOW"),
			Token:    os.Getenv("CIRCLECI_TOKEN"),
		},
		GitHub: GitHubConfig{
			BaseURL: getenv("GITHUB_BASE_URL", "https://api.github.com"),
			Owner:   os.Getenv("GITHUB_REPO_OWNER"),
			Repo:    os.Getenv("GITHUB_REPO"),
			Token:   os.Getenv("GITHUB_TOKEN"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port:          getenv("PORT", "3080"),
			DashboardURL:  getenv("DASHBOARD_URL", "http://localhost:3000"),
			RedirectDelay: getenvDuration("DASHBOARD_REDIRECT_DELAY", 5*time.Second),
		},
		Poll: PollConfig{
			InsightInterval: getenvDuration("INSIGHT_POLL_INTERVAL", 30*time.Second),
			AlertInterval:   getenvDuration("ALERT_POLL_INTERVAL", 180*time.Second),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getenvDuration - "45s" 같은 duration 문자열 또는 초 단위 정수 허용
func getenvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
