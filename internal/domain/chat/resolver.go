package chat

import (
	"regexp"
	"strings"
)

// 서수 참조 패턴. 한국어/영어 서수형을 허용한다.
var ordinalPatterns = []struct {
	pattern *regexp.Regexp
	index   int
}{
	{regexp.MustCompile(`첫\s*번째|첫번|\bfirst\b`), 0},
	{regexp.MustCompile(`두\s*번째|둘째|\bsecond\b`), 1},
	{regexp.MustCompile(`세\s*번째|셋째|\bthird\b`), 2},
	{regexp.MustCompile(`네\s*번째|넷째|\bfourth\b`), 3},
	{regexp.MustCompile(`다섯\s*번째|\bfifth\b`), 4},
}

// lastPattern 마지막 항목 참조
var lastPattern = regexp.MustCompile(`마지막|\blast\b`)

// 지시형 참조 마커
var demonstrativeMarkers = []string{
	"그 레시피", "이 레시피", "저 레시피",
	"그거", "이거", "저거", "그걸로", "이걸로",
	"that one", "this one", "that recipe", "this recipe",
}

// ResolveReference 서수/지시형 참조를 세션의 후보 레시피로 해석한다.
// 후보가 비어 있으면 패턴과 무관하게 항상 nil 을 반환하며,
// 성공 시 해당 참조의 mentioned 플래그를 세우고 세션의 선택 레시피로 만든다.
// 어떤 입력에도 오류를 내지 않는다.
func ResolveReference(message string, session *Session) *RecipeReference {
	if session == nil || len(session.CandidateRecipes) == 0 {
		return nil
	}

	normalized := strings.ToLower(message)

	// 전략 1: 서수 참조
	if idx, ok := resolveOrdinal(normalized, len(session.CandidateRecipes)); ok {
		if idx < 0 || idx >= len(session.CandidateRecipes) {
			// 범위 밖 서수는 실패이지 오류가 아니다
			return nil
		}
		return session.selectCandidate(idx)
	}

	// 전략 2: 지시형 참조
	if isDemonstrativeReference(normalized) {
		if session.SelectedRecipe != nil {
			return session.selectByID(session.SelectedRecipe.ID)
		}
		return session.selectCandidate(0)
	}

	return nil
}

// resolveOrdinal 서수 표현을 0 기반 인덱스로 변환
func resolveOrdinal(message string, candidateCount int) (int, bool) {
	for _, op := range ordinalPatterns {
		if op.pattern.MatchString(message) {
			return op.index, true
		}
	}
	if lastPattern.MatchString(message) {
		return candidateCount - 1, true
	}
	return 0, false
}

// isDemonstrativeReference 지시형 참조 여부
func isDemonstrativeReference(message string) bool {
	for _, marker := range demonstrativeMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

// selectCandidate 인덱스의 후보를 선택 레시피로 만든다
func (s *Session) selectCandidate(idx int) *RecipeReference {
	s.CandidateRecipes[idx].Mentioned = true
	selected := s.CandidateRecipes[idx]
	s.SelectedRecipe = &selected
	return s.SelectedRecipe
}

// selectByID ID 로 후보를 찾아 선택. 후보 목록에 없으면 현재 선택을 유지한다.
func (s *Session) selectByID(id string) *RecipeReference {
	for i := range s.CandidateRecipes {
		if s.CandidateRecipes[i].ID == id {
			return s.selectCandidate(i)
		}
	}
	return s.SelectedRecipe
}
