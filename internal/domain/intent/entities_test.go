package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findEntity(entities []Entity, entityType EntityType) *Entity {
	for i := range entities {
		if entities[i].Type == entityType {
			return &entities[i]
		}
	}
	return nil
}

func TestExtractEntities(t *testing.T) {
	entities := ExtractEntities("김치찌개에 두부 넣고 10분 끓여줘")

	recipe := findEntity(entities, EntityRecipeName)
	require.NotNil(t, recipe)
	assert.Equal(t, "김치찌개", recipe.Value)
	// 정규 목록에 있는 레시피명은 보너스 신뢰도
	assert.InDelta(t, 0.8, recipe.Confidence, 0.0001)

	ingredient := findEntity(entities, EntityIngredient)
	require.NotNil(t, ingredient)

	duration := findEntity(entities, EntityDuration)
	require.NotNil(t, duration)
	assert.Equal(t, "10분", duration.Value)
}

func TestExtractEntities_Allergen(t *testing.T) {
	entities := ExtractEntities("땅콩 알레르기가 있어요")
	allergen := findEntity(entities, EntityAllergen)
	require.NotNil(t, allergen)
	assert.Equal(t, "땅콩", allergen.Value)
}

func TestExtractEntities_NoDuplicates(t *testing.T) {
	entities := ExtractEntities("양파 양파 양파")
	count := 0
	for _, e := range entities {
		if e.Type == EntityIngredient && e.Value == "양파" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractEntities_Empty(t *testing.T) {
	assert.Empty(t, ExtractEntities(""))
	assert.Empty(t, ExtractEntities("hello there"))
}

func TestDetectSentiment(t *testing.T) {
	assert.Equal(t, SentimentPositive, DetectSentiment("정말 맛있었어요 감사합니다"))
	assert.Equal(t, SentimentNegative, DetectSentiment("너무 맛없고 별로였어"))
	assert.Equal(t, SentimentNeutral, DetectSentiment("내일 뭐 먹지"))
	assert.Equal(t, SentimentNeutral, DetectSentiment("맛있는데 너무 짜서 별로"), "동률이면 중립")
}

func TestDetectUrgency(t *testing.T) {
	assert.Equal(t, UrgencyHigh, DetectUrgency("지금 당장 알려줘"))
	assert.Equal(t, UrgencyMedium, DetectUrgency("오늘 저녁에 만들 거야"))
	assert.Equal(t, UrgencyMedium, DetectUrgency("알려줘!!"), "문장부호 밀도 폴백")
	assert.Equal(t, UrgencyLow, DetectUrgency("나중에 한번 해볼게"))
}
