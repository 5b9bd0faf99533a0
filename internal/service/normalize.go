// 수집 레코드 정규화 규칙 정의
//
// alert 정규화 순서 (순서가 중요함):
//  1. 소스 경로 해석: context/severity/security_severity는 rule 객체 우선,
//     rule이 없으면 최상위 필드 사용. dismissed_by는 actor의 login으로 변환
//  2. 페이로드에 없는 optional 필드는 null 유지
//  3. null이 아닌 자유 텍스트 필드만 255자로 자름 (null에는 truncation 미적용)

package service

import "github.com/build-pulse/backend/internal/model"

// maxTextLen - 자유 텍스트 컬럼의 최대 길이 (VARCHAR(255)와 일치)
const maxTextLen = 255

// truncateText - null이 아닌 값만 rune 단위로 자름
// byte 단위로 자르면 멀티바이트 문자가 깨져서 Postgres가 거부할 수 있음
func truncateText(s *string, max int) *string {
	if s == nil {
		return nil
	}
	r := []rune(*s)
	if len(r) <= max {
		return s
	}
	t := string(r[:max])
	return &t
}

func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// normalizeInsight - workflow run의 텍스트 필드를 저장 가능한 길이로 정리
func normalizeInsight(in model.Insight) model.Insight {
	in.ID = truncateString(in.ID, maxTextLen)
	in.Branch = truncateString(in.Branch, maxTextLen)
	in.Status = truncateString(in.Status, maxTextLen)
	return in
}

// normalizeAlert - 원본 alert 페이로드를 저장용 레코드로 변환
func normalizeAlert(p model.AlertPayload) model.CodeAlert {
	a := model.CodeAlert{
		Number:           p.Number,
		Context:          p.Context,
		Severity:         p.Severity,
		SecuritySeverity: p.SecuritySeverity,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		URL:              p.URL,
		HTMLURL:          p.HTMLURL,
		State:            p.State,
		FixedBy:          p.FixedBy,
		DismissedAt:      p.DismissedAt,
		DismissedReason:  p.DismissedReason,
		DismissedComment: p.DismissedComment,
	}

	// rule 객체가 있으면 context/severity/security_severity를 rule에서 가져옴
	if p.Rule != nil {
		a.Context = p.Rule.Name
		a.Severity = p.Rule.Severity
		a.SecuritySeverity = p.Rule.SecuritySeverity

		// 저장용 rule 컬럼은 식별자 우선, 없으면 이름
		if p.Rule.ID != nil {
			a.Rule = p.Rule.ID
		} else {
			a.Rule = p.Rule.Name
		}
	}

	// dismiss된 적 없으면 null 유지
	if p.DismissedBy != nil {
		login := p.DismissedBy.Login
		a.DismissedBy = &login
	}

	if p.Tool != nil {
		a.Tool = p.Tool.Name
	}

	// 자유 텍스트 필드 전체에 같은 truncation 규칙 적용
	for _, f := range []**string{
		&a.Context, &a.Severity, &a.SecuritySeverity, &a.URL, &a.HTMLURL,
		&a.State, &a.FixedBy, &a.DismissedBy, &a.DismissedReason,
		&a.DismissedComment, &a.Rule, &a.Tool,
	} {
		*f = truncateText(*f, maxTextLen)
	}

	return a
}
