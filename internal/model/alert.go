// GitHub code scanning alert의 저장용 레코드 정의
//
// 원본 페이로드의 optional 필드 처리 규칙:
//  1. 페이로드에 없는 필드는 먼저 null로 정규화
//  2. null이 아닌 자유 텍스트 필드만 255자로 잘라서 저장

package model

import "time"

// CodeAlert - 정규화가 끝난 code scanning alert 1건
// Number 기준으로 upsert되며 모든 non-key 필드는 last-write-wins
type CodeAlert struct {
	Number int64 `json:"number"`

	// Context/Severity/SecuritySeverity: rule 객체가 있으면 rule에서,
	// 없으면 최상위 필드에서 가져옴
	Context          *string `json:"context"`
	Severity         *string `json:"severity"`
	SecuritySeverity *string `json:"security_severity"`

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	URL     *string `json:"url"`
	HTMLURL *string `json:"html_url"`
	State   *string `json:"state"`
	FixedBy *string `json:"fixed_by"`

	// DismissedBy: alert를 dismiss한 사용자의 login, dismiss된 적 없으면 null
	DismissedBy      *string    `json:"dismissed_by"`
	DismissedAt      *time.Time `json:"dismissed_at"`
	DismissedReason  *string    `json:"dismissed_reason"`
	DismissedComment *string    `json:"dismissed_comment"`

	Rule *string `json:"rule"`
	Tool *string `json:"tool"`
}

// AlertPayload - GitHub API가 반환하는 원본 alert 객체
// 정규화 전이므로 optional 필드는 전부 포인터로 받음
type AlertPayload struct {
	Number           int64           `json:"number"`
	Context          *string         `json:"context"`
	Severity         *string         `json:"severity"`
	SecuritySeverity *string         `json:"security_severity"`
	CreatedAt        *time.Time      `json:"created_at"`
	UpdatedAt        *time.Time      `json:"updated_at"`
	URL              *string         `json:"url"`
	HTMLURL          *string         `json:"html_url"`
	State            *string         `json:"state"`
	FixedBy          *string         `json:"fixed_by"`
	DismissedBy      *AlertActor     `json:"dismissed_by"`
	DismissedAt      *time.Time      `json:"dismissed_at"`
	DismissedReason  *string         `json:"dismissed_reason"`
	DismissedComment *string         `json:"dismissed_comment"`
	Rule             *AlertRule      `json:"rule"`
	Tool             *AlertTool      `json:"tool"`
	Instances        []AlertInstance `json:"instances"`
}

// AlertActor - dismiss한 사용자 (login만 사용)
type AlertActor struct {
	Login string `json:"login"`
}

// AlertRule - alert에 중첩된 rule 객체
type AlertRule struct {
	ID               *string `json:"id"`
	Name             *string `json:"name"`
	Severity         *string `json:"severity"`
	SecuritySeverity *string `json:"security_severity_level"`
	Description      *string `json:"description"`
}

// AlertTool - alert를 생성한 분석 도구
type AlertTool struct {
	Name    *string `json:"name"`
	Version *string `json:"version"`
}

// AlertInstance - alert 발생 위치 (현재는 저장하지 않음)
type AlertInstance struct {
	Ref   *string `json:"ref"`
	State *string `json:"state"`
}
