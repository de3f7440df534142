package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/intent"
)

func TestNextStage_TransitionTable(t *testing.T) {
	tests := []struct {
		name          string
		current       Stage
		intentType    intent.Type
		hasCandidates bool
		want          Stage
	}{
		{"검색은 어디서든 exploring", StageGreeting, intent.TypeRecipeSearch, false, StageExploring},
		{"검색은 cooking 에서도 exploring", StageCooking, intent.TypeRecipeSearch, true, StageExploring},
		{"후보가 있는 상세 요청은 focused", StageExploring, intent.TypeRecipeDetail, true, StageFocused},
		{"후보가 없는 상세 요청은 clarifying", StageGreeting, intent.TypeRecipeDetail, false, StageClarifying},
		{"조리 조언은 cooking", StageFocused, intent.TypeCookingAdvice, true, StageCooking},
		{"재료 대체는 cooking", StageFocused, intent.TypeIngredientSubstitute, true, StageCooking},
		{"일반 대화는 greeting", StageExploring, intent.TypeGeneralChat, true, StageGreeting},
		{"영양 문의는 항등 전이", StageFocused, intent.TypeNutritionalInfo, true, StageFocused},
		{"영양 문의는 cooking 유지", StageCooking, intent.TypeNutritionalInfo, false, StageCooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStage(tt.current, tt.intentType, tt.hasCandidates)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyTransition_ExploringReplacesCandidates(t *testing.T) {
	session := NewSession("s1", "u1", time.Now())
	session.CandidateRecipes = []RecipeReference{{ID: "old", Position: 1}}

	results := []RecipeReference{
		{ID: "r1", Title: "김치찌개"},
		{ID: "r2", Title: "된장찌개"},
	}
	stage := session.ApplyTransition(intent.TypeRecipeSearch, results)

	assert.Equal(t, StageExploring, stage)
	assert.Len(t, session.CandidateRecipes, 2)
	assert.Equal(t, 1, session.CandidateRecipes[0].Position, "순번은 1부터 재부여")
	assert.Equal(t, 2, session.CandidateRecipes[1].Position)
	assert.Nil(t, session.SelectedRecipe, "검색만으로는 선택되지 않음")
}

func TestApplyTransition_FocusedKeepsSelection(t *testing.T) {
	session := NewSession("s1", "u1", time.Now())
	session.ReplaceCandidates([]RecipeReference{{ID: "r1"}, {ID: "r2"}})
	selected := ResolveReference("첫 번째", session)
	assert.NotNil(t, selected)

	session.ApplyTransition(intent.TypeRecipeDetail, nil)
	assert.Equal(t, StageFocused, session.Stage)
	assert.Equal(t, "r1", session.SelectedRecipe.ID, "선택은 자동으로 해제되지 않음")

	session.ApplyTransition(intent.TypeCookingAdvice, nil)
	assert.Equal(t, StageCooking, session.Stage)
	assert.Equal(t, "r1", session.SelectedRecipe.ID)
}

func TestAppendTurn_TrimsToMax(t *testing.T) {
	session := NewSession("s1", "u1", time.Now())

	for i := 0; i < 25; i++ {
		session.AppendTurn(Turn{
			UserMessage: fmt.Sprintf("메시지 %d", i),
			AIResponse:  "응답",
			Timestamp:   time.Now(),
		})
		assert.LessOrEqual(t, len(session.TurnHistory), MaxTurnHistory)
	}

	assert.Len(t, session.TurnHistory, MaxTurnHistory)
	// 가장 오래된 턴부터 제거 (FIFO)
	assert.Equal(t, "메시지 15", session.TurnHistory[0].UserMessage)
	assert.Equal(t, "메시지 24", session.TurnHistory[MaxTurnHistory-1].UserMessage)
}

func TestRecentTurns(t *testing.T) {
	session := NewSession("s1", "u1", time.Now())
	for i := 0; i < 7; i++ {
		session.AppendTurn(Turn{UserMessage: fmt.Sprintf("m%d", i)})
	}

	recent := session.RecentTurns(5)
	assert.Len(t, recent, 5)
	assert.Equal(t, "m2", recent[0].UserMessage)
	assert.Equal(t, "m6", recent[4].UserMessage)

	assert.Len(t, session.RecentTurns(100), 7)
	assert.Nil(t, session.RecentTurns(0))
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	session := NewSession("s1", "u1", now)

	assert.False(t, session.IsExpired(now.Add(29*time.Minute), 30*time.Minute))
	assert.True(t, session.IsExpired(now.Add(31*time.Minute), 30*time.Minute))
}
