package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_RecipeSearch(t *testing.T) {
	c := NewClassifier()

	messages := []string{
		"추천해줘",
		"김치찌개 레시피 알려줘",
		"오늘 저녁 뭐 먹을까",
		"간단한 요리 추천해줘",
	}
	for _, msg := range messages {
		t.Run(msg, func(t *testing.T) {
			result := c.Classify(msg, nil)
			assert.Equal(t, TypeRecipeSearch, result.Type)
			assert.GreaterOrEqual(t, result.Confidence, 0.3)
		})
	}
}

func TestClassify_DetailBeatsSearch(t *testing.T) {
	c := NewClassifier()

	// 상세 요청 패턴이 매칭되면 넓은 검색 의도에 흡수되지 않아야 한다
	messages := []string{
		"첫 번째 레시피 자세히 알려줘",
		"두 번째 재료 알려줘",
		"어떻게 만들어?",
		"자세히 설명해줘",
	}
	for _, msg := range messages {
		t.Run(msg, func(t *testing.T) {
			result := c.Classify(msg, nil)
			assert.Equal(t, TypeRecipeDetail, result.Type)
		})
	}
}

func TestClassify_OtherIntents(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		message string
		want    Type
	}{
		{"양파가 없는데 뭘로 대체하죠", TypeIngredientSubstitute},
		{"국이 너무 짜요 어떻게 해야 하죠", TypeCookingAdvice},
		{"이 음식 칼로리가 얼마나 되나요", TypeNutritionalInfo},
		{"안녕하세요", TypeGeneralChat},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			result := c.Classify(tt.message, nil)
			assert.Equal(t, tt.want, result.Type)
		})
	}
}

func TestClassify_FallbackNeverFails(t *testing.T) {
	c := NewClassifier()

	// 어떤 패턴도 맞지 않는 발화는 general_chat 고정 신뢰도로 폴백
	for _, msg := range []string{"", "asdf qwer", "ㅁㄴㅇㄹ", "42"} {
		result := c.Classify(msg, nil)
		assert.Equal(t, TypeGeneralChat, result.Type, "message=%q", msg)
		assert.GreaterOrEqual(t, result.Confidence, 0.1)
		assert.LessOrEqual(t, result.Confidence, 0.5)
	}
}

func TestClassify_AlternatesSortedDescending(t *testing.T) {
	c := NewClassifier()

	// 여러 의도가 동시에 매칭되는 발화
	result := c.Classify("레시피 추천해줘, 재료도 자세히 알려줘", nil)

	require.NotEmpty(t, result.Alternates)
	prev := result.Confidence
	for _, alt := range result.Alternates {
		assert.LessOrEqual(t, alt.Confidence, prev)
		prev = alt.Confidence
	}
}

func TestClassify_DemonstrativeFollowUpBoost(t *testing.T) {
	c := NewClassifier()

	history := []string{"김치찌개 추천해줘"}
	withHistory := c.Classify("그거 자세히", history)
	assert.Equal(t, TypeRecipeDetail, withHistory.Type)
}

func TestSetPatterns_InvalidRegexKeepsOld(t *testing.T) {
	c := NewClassifier()

	err := c.SetPatterns(map[Type]PatternSpec{
		TypeRecipeSearch: {Regexes: []string{"("}, Weight: 1.0},
	})
	require.Error(t, err)

	// 기존 패턴으로 계속 분류 가능
	result := c.Classify("레시피 추천해줘", nil)
	assert.Equal(t, TypeRecipeSearch, result.Type)
}

func TestSetPatterns_Override(t *testing.T) {
	c := NewClassifier()

	// 패턴을 통째로 교체하면 기본 패턴은 더 이상 적용되지 않는다
	require.NoError(t, c.SetPatterns(map[Type]PatternSpec{
		TypeNutritionalInfo: {
			Keywords: []string{"단백질왕"},
			Regexes:  []string{`단백질왕`},
			Weight:   1.0,
		},
	}))

	result := c.Classify("단백질왕 정보 줘", nil)
	assert.Equal(t, TypeNutritionalInfo, result.Type)

	result = c.Classify("레시피 추천해줘", nil)
	assert.Equal(t, TypeGeneralChat, result.Type, "교체 후 기본 패턴은 매칭되지 않음")
}
