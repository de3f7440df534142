package intent

import "strings"

// 감정 키워드
var (
	positiveWords = []string{"좋아", "좋은", "맛있", "감사", "고마워", "최고", "훌륭", "기대", "great", "good", "love", "thanks", "nice"}
	negativeWords = []string{"싫어", "맛없", "별로", "실패", "최악", "짜증", "어려워", "bad", "hate", "awful", "terrible"}
)

// 긴급도 키워드
var (
	highUrgencyWords   = []string{"지금", "빨리", "급해", "당장", "바로", "now", "urgent", "quickly", "asap"}
	mediumUrgencyWords = []string{"오늘", "곧", "이따", "저녁까지", "today", "soon", "tonight"}
)

// DetectSentiment 긍정/부정 키워드 개수 비교로 감정 판정
func DetectSentiment(message string) Sentiment {
	positive := countMatches(message, positiveWords)
	negative := countMatches(message, negativeWords)

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// DetectUrgency 키워드 버킷으로 긴급도 판정, 미매칭 시 문장부호 밀도 폴백
func DetectUrgency(message string) Urgency {
	if countMatches(message, highUrgencyWords) > 0 {
		return UrgencyHigh
	}
	if countMatches(message, mediumUrgencyWords) > 0 {
		return UrgencyMedium
	}

	// 느낌표가 연속되면 긴급한 어조로 간주
	if strings.Count(message, "!") >= 2 {
		return UrgencyMedium
	}
	return UrgencyLow
}

// countMatches 포함된 키워드 개수
func countMatches(message string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(message, w) {
			count++
		}
	}
	return count
}
