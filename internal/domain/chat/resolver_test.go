package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionWithCandidates(t *testing.T, n int) *Session {
	t.Helper()
	session := NewSession("s1", "u1", time.Now())
	recipes := make([]RecipeReference, n)
	ids := []string{"r1", "r2", "r3", "r4", "r5"}
	titles := []string{"김치찌개", "된장찌개", "제육볶음", "비빔밥", "불고기"}
	for i := 0; i < n; i++ {
		recipes[i] = RecipeReference{ID: ids[i], Title: titles[i]}
	}
	session.ReplaceCandidates(recipes)
	return session
}

func TestResolveReference_Ordinals(t *testing.T) {
	tests := []struct {
		message string
		wantID  string
	}{
		{"첫 번째 레시피 자세히 알려줘", "r1"},
		{"첫번째로 할게", "r1"},
		{"두 번째는 어때?", "r2"},
		{"세 번째 재료 알려줘", "r3"},
		{"the first one please", "r1"},
		{"tell me about the second recipe", "r2"},
		{"마지막 거 보여줘", "r3"},
		{"show me the last one", "r3"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			session := newSessionWithCandidates(t, 3)
			ref := ResolveReference(tt.message, session)
			require.NotNil(t, ref)
			assert.Equal(t, tt.wantID, ref.ID)
			assert.True(t, ref.Mentioned, "해석된 참조는 mentioned 가 된다")
			require.NotNil(t, session.SelectedRecipe)
			assert.Equal(t, tt.wantID, session.SelectedRecipe.ID, "해석 성공 시 선택 레시피가 된다")
		})
	}
}

func TestResolveReference_OrdinalIndexCorrectness(t *testing.T) {
	// 후보 3개에서 첫/두 번째는 순번 1/2, 범위 밖 서수는 nil
	session := newSessionWithCandidates(t, 3)
	ref := ResolveReference("첫 번째", session)
	require.NotNil(t, ref)
	assert.Equal(t, 1, ref.Position)

	session = newSessionWithCandidates(t, 3)
	ref = ResolveReference("두 번째", session)
	require.NotNil(t, ref)
	assert.Equal(t, 2, ref.Position)

	session = newSessionWithCandidates(t, 3)
	assert.Nil(t, ResolveReference("네 번째 알려줘", session))
	assert.Nil(t, ResolveReference("the fourth one", session))
	assert.Nil(t, session.SelectedRecipe)
}

func TestResolveReference_Demonstrative(t *testing.T) {
	// 선택된 레시피가 없으면 첫 번째 후보로
	session := newSessionWithCandidates(t, 3)
	ref := ResolveReference("그거 만들래", session)
	require.NotNil(t, ref)
	assert.Equal(t, "r1", ref.ID)

	// 선택된 레시피가 있으면 그것을 유지
	session = newSessionWithCandidates(t, 3)
	ResolveReference("두 번째", session)
	ref = ResolveReference("이 레시피 재료 알려줘", session)
	require.NotNil(t, ref)
	assert.Equal(t, "r2", ref.ID)
}

func TestResolveReference_EmptyCandidatesAlwaysNil(t *testing.T) {
	// 후보가 비면 패턴 매칭 여부와 무관하게 항상 nil
	messages := []string{
		"첫 번째 레시피",
		"마지막 거",
		"그거 자세히",
		"the first one",
		"아무 말",
	}
	for _, msg := range messages {
		session := NewSession("s1", "u1", time.Now())
		assert.Nil(t, ResolveReference(msg, session), "message=%s", msg)
	}

	assert.Nil(t, ResolveReference("첫 번째", nil))
}

func TestResolveReference_NoPatternMatch(t *testing.T) {
	session := newSessionWithCandidates(t, 3)
	assert.Nil(t, ResolveReference("김치찌개 먹고 싶다", session))
	assert.Nil(t, session.SelectedRecipe)
}
