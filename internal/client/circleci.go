// CircleCI Insights API와 통신하는 클라이언트 정의
//
// 환경변수:
//   - CIRCLECI_TOKEN: CircleCI Personal API Token
//   - CIRCLECI_VCS / CIRCLECI_USERNAME / CIRCLECI_PROJECT: project slug 구성 요소
//   - CIRCLECI_WORKFLOW: 조회할 workflow 이름
//
// 한 번에 1페이지만 조회합니다. 수집 주기(30초)가 짧아서 새 run은
// 다음 주기에 자연스럽게 따라잡히고, 같은 run은 id upsert로 중복 저장되지 않음

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/build-pulse/backend/internal/config"
	"github.com/build-pulse/backend/internal/model"
)

// CircleCIClient 구조체 정의
type CircleCIClient struct {
	baseURL     string
	projectSlug string // "{vcs}/{username}/{project}"
	workflow    string
	token       string
	httpClient  *http.Client
}

// CircleCIClient 객체 생성
func NewCircleCIClient(cfg config.CircleCIConfig) *CircleCIClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://circleci.com/api/v2"
	}

	return &CircleCIClient{
		baseURL:     baseURL,
		projectSlug: fmt.Sprintf("%s/%s/%s", cfg.VCS, cfg.Username, cfg.Project),
		workflow:    cfg.Workflow,
		token:       cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GET /insights/{project-slug}/workflows/{workflow} - workflow run 1페이지 조회
func (c *CircleCIClient) FetchWorkflowInsights(ctx context.Context) (*model.InsightPage, error) {
	endpoint := fmt.Sprintf("%s/insights/%s/workflows/%s",
		c.baseURL, c.projectSlug, url.PathEscape(c.workflow))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Circle-Token", c.token)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to circleci: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("circleci returned status %d: %s", resp.StatusCode, string(body))
	}

	var page model.InsightPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &page, nil
}
