package streaming

import "time"

// circuitBreaker 세션별 전송 차단기.
// 연속 실패가 임계값에 도달하면 일정 시간 동안 전송을 차단한다.
type circuitBreaker struct {
	threshold   int
	cooldown    time.Duration
	consecutive int
	openUntil   time.Time
}

func newCircuitBreaker(threshold int, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{
		threshold: threshold,
		cooldown:  cooldown,
	}
}

// allow 현재 전송이 허용되는지 확인
func (b *circuitBreaker) allow(now time.Time) bool {
	return now.After(b.openUntil)
}

// recordSuccess 성공 시 연속 실패 카운터 초기화
func (b *circuitBreaker) recordSuccess() {
	b.consecutive = 0
}

// recordFailure 실패 반영. 임계값 도달 시 차단 시작.
func (b *circuitBreaker) recordFailure(now time.Time) {
	b.consecutive++
	if b.consecutive >= b.threshold {
		b.openUntil = now.Add(b.cooldown)
		b.consecutive = 0
	}
}
