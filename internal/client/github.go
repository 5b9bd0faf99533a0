// GitHub REST API와 통신하는 클라이언트 정의
//
// 환경변수:
//   - GITHUB_TOKEN: repo 권한이 있는 토큰 (code scanning alert 조회용)
//   - GITHUB_REPO_OWNER / GITHUB_REPO: 조회할 저장소
//
// 인증은 oauth2.StaticTokenSource로 처리: 토큰 헤더 부착을 transport에
// 맡겨서 요청 코드에는 인증 로직이 섞이지 않음

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/build-pulse/backend/internal/config"
	"github.com/build-pulse/backend/internal/model"
)

const githubAPIVersion = "2022-11-28"

// GitHubClient 구조체 정의
type GitHubClient struct {
	baseURL    string
	owner      string
	repo       string
	httpClient *http.Client
}

// GitHubClient 객체 생성
func NewGitHubClient(cfg config.GitHubConfig) *GitHubClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = 30 * time.Second
	}

	return &GitHubClient{
		baseURL:    baseURL,
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		httpClient: httpClient,
	}
}

// GET /repos/{owner}/{repo}/code-scanning/alerts - alert 전체 조회 (1페이지 가정)
func (c *GitHubClient) FetchCodeScanningAlerts(ctx context.Context) ([]model.AlertPayload, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/code-scanning/alerts?per_page=100",
		c.baseURL, c.owner, c.repo)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/vnd.github+json")
	httpReq.Header.Set("X-GitHub-Api-Version", githubAPIVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to github: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github returned status %d: %s", resp.StatusCode, string(body))
	}

	var alerts []model.AlertPayload
	if err := json.Unmarshal(body, &alerts); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return alerts, nil
}
