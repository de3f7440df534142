package intent

import (
	"fmt"
	"regexp"
)

// PatternSpec 의도 하나의 패턴 정의 (데이터, 오버라이드 가능)
type PatternSpec struct {
	Keywords []string `yaml:"keywords"`
	Regexes  []string `yaml:"regexes"`
	Semantic []string `yaml:"semantic"`
	Weight   float64  `yaml:"weight"`
}

// patternSet 컴파일된 패턴 집합
type patternSet struct {
	keywords []string
	regexes  []*regexp.Regexp
	semantic []string
	weight   float64
}

// compile PatternSpec 을 컴파일된 집합으로 변환
func compile(spec PatternSpec) (*patternSet, error) {
	ps := &patternSet{
		keywords: spec.Keywords,
		semantic: spec.Semantic,
		weight:   spec.Weight,
	}
	for _, expr := range spec.Regexes {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid intent pattern %q: %w", expr, err)
		}
		ps.regexes = append(ps.regexes, re)
	}
	return ps, nil
}

// DefaultPatterns 기본 의도 패턴
func DefaultPatterns() map[Type]PatternSpec {
	return map[Type]PatternSpec{
		TypeRecipeSearch: {
			Keywords: []string{"레시피", "요리", "추천", "메뉴", "음식", "recipe", "recommend", "menu"},
			Regexes: []string{
				`추천해`,
				`뭐.*(먹|만들)`,
				`(만들|해)\s*먹`,
				`레시피.*(알려|찾|줘)`,
				`(요리|음식).*(알려|찾아)`,
			},
			Semantic: []string{"먹고싶", "간단한", "아침", "점심", "저녁", "야식", "오늘"},
			Weight:   1.0,
		},
		TypeRecipeDetail: {
			Keywords: []string{"자세히", "상세", "재료", "순서", "조리법", "만드는법", "detail", "ingredients", "steps"},
			Regexes: []string{
				`(첫|두|세|네)\s*번째`,
				`(first|second|third|fourth|last)\b`,
				`자세히\s*(알려|설명)`,
				`어떻게\s*만들`,
				`(재료|만드는\s*(법|방법)).*(알려|뭐|필요)`,
			},
			Semantic: []string{"단계", "과정", "분량", "마지막", "그거", "이거"},
			Weight:   1.2,
		},
		TypeIngredientSubstitute: {
			Keywords: []string{"대신", "대체", "없는데", "바꿔", "substitute", "replace", "instead"},
			Regexes: []string{
				`없(어|는데|어요|습니다)`,
				`대신.*(넣|사용|써)`,
				`(뭘|뭐)(로|를)?\s*대체`,
			},
			Semantic: []string{"재료", "알레르기", "빼고", "다른"},
			Weight:   1.1,
		},
		TypeCookingAdvice: {
			Keywords: []string{"팁", "조언", "실패", "도와줘", "advice", "tip", "help"},
			Regexes: []string{
				`(어떻게|왜)\s*(해야|하면|하죠)`,
				`(짜|싱거|태웠|눌어|설익)`,
				`불\s*조절`,
			},
			Semantic: []string{"간", "온도", "시간", "화력", "덜", "너무"},
			Weight:   1.0,
		},
		TypeNutritionalInfo: {
			Keywords: []string{"칼로리", "영양", "단백질", "탄수화물", "지방", "calories", "nutrition", "protein"},
			Regexes: []string{
				`칼로리.*(얼마|몇)`,
				`영양\s*(성분|정보)`,
				`살\s*(찌|빠지)`,
			},
			Semantic: []string{"다이어트", "건강", "저염", "저칼로리"},
			Weight:   1.1,
		},
		TypeGeneralChat: {
			Keywords: []string{"안녕", "고마워", "감사", "반가워", "hello", "hi", "thanks", "bye"},
			Regexes: []string{
				`^(안녕|하이|헬로)`,
				`(고마워|감사합니다|감사해)`,
				`잘\s*(지냈|있었)`,
			},
			Semantic: []string{"날씨", "기분", "심심"},
			Weight:   0.7,
		},
	}
}

// tieBreakOrder 동점 시 우선순위. 상세 요청이 넓은 검색 의도에 흡수되지 않도록
// recipe_detail 을 recipe_search 보다 앞에 둔다.
var tieBreakOrder = map[Type]int{
	TypeRecipeDetail:         0,
	TypeRecipeSearch:         1,
	TypeIngredientSubstitute: 2,
	TypeCookingAdvice:        3,
	TypeNutritionalInfo:      4,
	TypeGeneralChat:          5,
}
