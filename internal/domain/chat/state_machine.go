package chat

import (
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/intent"
)

// NextStage 의도에 따른 단계 전이 함수.
// Mealy 방식: 출력(조립 컨텍스트)은 상태와 의도 모두에 의존하며,
// 표에 없는 의도는 항등 전이한다. 종료 상태는 없다.
//
//	recipe_search                     -> exploring
//	recipe_detail (후보 비어있지 않음)   -> focused
//	cooking_advice / substitute       -> cooking
//	general_chat                      -> greeting
//	그 외                              -> 유지
func NextStage(current Stage, intentType intent.Type, hasCandidates bool) Stage {
	switch intentType {
	case intent.TypeRecipeSearch:
		return StageExploring
	case intent.TypeRecipeDetail:
		if hasCandidates {
			return StageFocused
		}
		// 후보가 없는 상세 요청은 확인 단계로 유도
		return StageClarifying
	case intent.TypeCookingAdvice, intent.TypeIngredientSubstitute:
		return StageCooking
	case intent.TypeGeneralChat:
		return StageGreeting
	default:
		return current
	}
}

// ApplyTransition 전이와 단계별 부수효과를 세션에 적용한다.
// exploring 진입 시에만 후보가 교체되고, selectedRecipe 는 명시적 세션 초기화
// 외에는 자동으로 해제되지 않는다.
func (s *Session) ApplyTransition(intentType intent.Type, searchResults []RecipeReference) Stage {
	next := NextStage(s.Stage, intentType, len(s.CandidateRecipes) > 0)

	if next == StageExploring && searchResults != nil {
		s.ReplaceCandidates(searchResults)
	}

	s.Stage = next
	return next
}
