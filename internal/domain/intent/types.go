package intent

// Type 발화 의도 분류
type Type string

const (
	// TypeRecipeSearch 레시피 검색
	TypeRecipeSearch Type = "recipe_search"
	// TypeRecipeDetail 레시피 상세 요청
	TypeRecipeDetail Type = "recipe_detail"
	// TypeIngredientSubstitute 재료 대체 문의
	TypeIngredientSubstitute Type = "ingredient_substitute"
	// TypeCookingAdvice 조리 조언
	TypeCookingAdvice Type = "cooking_advice"
	// TypeNutritionalInfo 영양 정보 문의
	TypeNutritionalInfo Type = "nutritional_info"
	// TypeGeneralChat 일반 대화
	TypeGeneralChat Type = "general_chat"
)

// Sentiment 발화 감정
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Urgency 발화 긴급도
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// EntityType 추출 개체 유형
type EntityType string

const (
	EntityRecipeName    EntityType = "recipe_name"
	EntityIngredient    EntityType = "ingredient"
	EntityCookingMethod EntityType = "cooking_method"
	EntityDuration      EntityType = "duration"
	EntityAllergen      EntityType = "allergen"
	EntityCuisine       EntityType = "cuisine"
)

// Entity 발화에서 추출한 개체
type Entity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
}

// Candidate 보조 의도 후보
type Candidate struct {
	Type       Type    `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Classification 분류 결과
type Classification struct {
	Type       Type        `json:"type"`
	Confidence float64     `json:"confidence"`
	Keywords   []string    `json:"keywords"`
	Entities   []Entity    `json:"entities"`
	Sentiment  Sentiment   `json:"sentiment"`
	Urgency    Urgency     `json:"urgency"`
	Alternates []Candidate `json:"alternates"`
}
