package intent

import (
	"sort"
	"strings"
	"sync"
)

// 분류 상수
const (
	// confidenceFloor 이 점수 미만의 후보는 버린다
	confidenceFloor = 0.3
	// fallbackConfidence 어떤 패턴도 floor 를 넘지 못했을 때의 기본 신뢰도
	fallbackConfidence = 0.3

	// 서브 스코어 가중치: 키워드 / 정규식 / 시맨틱
	keywordWeight  = 0.5
	regexWeight    = 0.3
	semanticWeight = 0.2

	// followUpBoost 직전 대화가 있는 지시형 짧은 발화에 대한 상세 의도 가산점
	followUpBoost = 0.1
)

// Classifier 다중 신호 의도 분류기.
// 패턴은 런타임에 교체 가능하다 (infrastructure/patterns 의 핫 리로드).
type Classifier struct {
	mu       sync.RWMutex
	patterns map[Type]*patternSet
}

// NewClassifier 기본 패턴으로 분류기 생성
func NewClassifier() *Classifier {
	c := &Classifier{
		patterns: map[Type]*patternSet{},
	}
	// 기본 패턴은 항상 컴파일 가능해야 한다
	if err := c.SetPatterns(DefaultPatterns()); err != nil {
		panic("intent: default patterns failed to compile: " + err.Error())
	}
	return c
}

// SetPatterns 패턴 전체 교체. 컴파일 실패 시 기존 패턴을 유지한다.
func (c *Classifier) SetPatterns(specs map[Type]PatternSpec) error {
	compiled := make(map[Type]*patternSet, len(specs))
	for intentType, spec := range specs {
		ps, err := compile(spec)
		if err != nil {
			return err
		}
		compiled[intentType] = ps
	}

	c.mu.Lock()
	c.patterns = compiled
	c.mu.Unlock()
	return nil
}

// Classify 발화를 의도로 분류한다. 실패 정책: 절대 오류를 내지 않고
// floor 미달 시 general_chat 으로 폴백한다.
func (c *Classifier) Classify(message string, recentHistory []string) Classification {
	normalized := strings.ToLower(strings.TrimSpace(message))

	c.mu.RLock()
	patterns := c.patterns
	c.mu.RUnlock()

	var candidates []Candidate
	var matchedKeywords []string

	for intentType, ps := range patterns {
		score, keywords := c.score(normalized, ps)

		// 직전 대화가 있는 지시형 발화는 상세 요청일 가능성이 높다
		if intentType == TypeRecipeDetail && len(recentHistory) > 0 && isDemonstrative(normalized) {
			score += followUpBoost
		}
		if score > 1.0 {
			score = 1.0
		}

		if score >= confidenceFloor {
			candidates = append(candidates, Candidate{Type: intentType, Confidence: score})
			matchedKeywords = append(matchedKeywords, keywords...)
		}
	}

	// 점수 내림차순, 동점 시 고정 우선순위 (상세 > 검색)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return tieBreakOrder[candidates[i].Type] < tieBreakOrder[candidates[j].Type]
	})

	result := Classification{
		Type:       TypeGeneralChat,
		Confidence: fallbackConfidence,
		Keywords:   matchedKeywords,
		Entities:   ExtractEntities(message),
		Sentiment:  DetectSentiment(normalized),
		Urgency:    DetectUrgency(normalized),
	}

	if len(candidates) > 0 {
		result.Type = candidates[0].Type
		result.Confidence = candidates[0].Confidence
		result.Alternates = candidates[1:]
	}

	return result
}

// score 패턴 집합에 대한 점수와 매칭된 키워드 목록
// 서브 스코어는 포화형 비율: 키워드/시맨틱은 2개 매칭에서, 정규식은 1개 매칭에서 1.0 이 된다.
func (c *Classifier) score(message string, ps *patternSet) (float64, []string) {
	var matched []string
	for _, kw := range ps.keywords {
		if strings.Contains(message, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	kwScore := saturate(len(matched), 2)

	regexHits := 0
	for _, re := range ps.regexes {
		if re.MatchString(message) {
			regexHits++
		}
	}
	reScore := saturate(regexHits, 1)

	semHits := 0
	for _, sem := range ps.semantic {
		if strings.Contains(message, strings.ToLower(sem)) {
			semHits++
		}
	}
	semScore := saturate(semHits, 2)

	score := (keywordWeight*kwScore + regexWeight*reScore + semanticWeight*semScore) * ps.weight
	return score, matched
}

// saturate n/limit 비율, 1.0 상한
func saturate(n, limit int) float64 {
	if n >= limit {
		return 1.0
	}
	return float64(n) / float64(limit)
}

// isDemonstrative 지시 대명사형 발화 여부
func isDemonstrative(message string) bool {
	for _, marker := range []string{"그거", "이거", "저거", "그 레시피", "이 레시피", "that one", "this one", "that recipe", "this recipe"} {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
