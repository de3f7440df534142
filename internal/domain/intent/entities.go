package intent

import "regexp"

// entityFamily 유형별 정규식 패밀리
type entityFamily struct {
	entityType EntityType
	pattern    *regexp.Regexp
	// canonical 정규 목록에 있는 값이면 신뢰도 보너스
	canonical map[string]bool
}

// 개체 신뢰도 상수
const (
	entityBaseConfidence      = 0.5
	entityLengthBonus         = 0.1 // 3자 이상 매칭
	entityCanonicalBonus      = 0.2
	entityLengthBonusMinRunes = 3
)

var entityFamilies = []entityFamily{
	{
		entityType: EntityRecipeName,
		pattern:    regexp.MustCompile(`([가-힣a-z]+)(찌개|볶음밥|볶음|구이|조림|튀김|무침|전골|탕|국수|국|덮밥|파스타|샐러드|스튜)`),
		canonical:  map[string]bool{"김치찌개": true, "된장찌개": true, "불고기": true, "비빔밥": true},
	},
	{
		entityType: EntityIngredient,
		pattern:    regexp.MustCompile(`(감자|양파|당근|돼지고기|소고기|닭고기|달걀|계란|두부|김치|마늘|대파|버섯|고추|설탕|소금|간장|고추장|된장|참기름)`),
		canonical:  map[string]bool{"감자": true, "양파": true, "달걀": true, "두부": true, "김치": true},
	},
	{
		entityType: EntityCookingMethod,
		pattern:    regexp.MustCompile(`(볶아|볶는|구워|굽는|삶아|삶는|쪄서|찌는|튀겨|튀기는|끓여|끓이는|조려|무쳐)`),
	},
	{
		entityType: EntityDuration,
		pattern:    regexp.MustCompile(`(\d+)\s*(분|시간|min|minutes?|hours?)`),
	},
	{
		entityType: EntityAllergen,
		pattern:    regexp.MustCompile(`(우유|유제품|계란|달걀|땅콩|견과|밀가루|밀|새우|갑각류|게|대두|콩|milk|egg|peanut|wheat|shrimp|soy)`),
		canonical:  map[string]bool{"우유": true, "계란": true, "땅콩": true, "밀": true, "새우": true, "대두": true},
	},
	{
		entityType: EntityCuisine,
		pattern:    regexp.MustCompile(`(한식|중식|일식|양식|분식|이탈리아|프랑스|멕시코|korean|chinese|japanese|italian|french|mexican)`),
	},
}

// ExtractEntities 발화에서 유형별 개체 추출.
// 의도 점수 계산과 독립적으로 동작하며 실패하지 않는다.
func ExtractEntities(message string) []Entity {
	var entities []Entity
	seen := map[string]bool{}

	for _, family := range entityFamilies {
		matches := family.pattern.FindAllString(message, -1)
		for _, match := range matches {
			key := string(family.entityType) + ":" + match
			if seen[key] {
				continue
			}
			seen[key] = true

			confidence := entityBaseConfidence
			if len([]rune(match)) >= entityLengthBonusMinRunes {
				confidence += entityLengthBonus
			}
			if family.canonical != nil && family.canonical[match] {
				confidence += entityCanonicalBonus
			}

			entities = append(entities, Entity{
				Type:       family.entityType,
				Value:      match,
				Confidence: confidence,
			})
		}
	}

	return entities
}
