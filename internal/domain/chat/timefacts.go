package chat

import "time"

// TimeFacts 벽시계 시각에서 파생되는 사실. 순수 함수의 결과이며 상태가 없다.
type TimeFacts struct {
	TimeOfDay string `json:"timeOfDay"` // morning / afternoon / evening / night
	MealTime  string `json:"mealTime"`  // breakfast / lunch / dinner / snack
	Season    string `json:"season"`    // spring / summer / fall / winter
	Weekend   bool   `json:"weekend"`
}

// DeriveTimeFacts 주어진 시각의 시간 사실 계산
func DeriveTimeFacts(now time.Time) TimeFacts {
	return TimeFacts{
		TimeOfDay: timeOfDay(now.Hour()),
		MealTime:  mealTime(now.Hour()),
		Season:    season(now.Month()),
		Weekend:   now.Weekday() == time.Saturday || now.Weekday() == time.Sunday,
	}
}

// timeOfDay 시간대 버킷
func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

// mealTime 식사 시간 버킷
func mealTime(hour int) string {
	switch {
	case hour >= 6 && hour < 10:
		return "breakfast"
	case hour >= 11 && hour < 14:
		return "lunch"
	case hour >= 17 && hour < 20:
		return "dinner"
	default:
		return "snack"
	}
}

// season 월 기준 계절
func season(month time.Month) string {
	switch month {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "fall"
	default:
		return "winter"
	}
}
