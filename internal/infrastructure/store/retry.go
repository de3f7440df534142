package store

import "time"

// AttemptState 쓰기 시도 상태
type AttemptState string

const (
	// AttemptPending 첫 시도 전
	AttemptPending AttemptState = "pending"
	// AttemptRetrying 재시도 중
	AttemptRetrying AttemptState = "retrying"
	// AttemptSucceeded 기본 경로 성공
	AttemptSucceeded AttemptState = "succeeded"
	// AttemptBackedUp 백업 경로로 저장됨
	AttemptBackedUp AttemptState = "backed_up"
	// AttemptFailed 기본/백업 모두 실패
	AttemptFailed AttemptState = "failed"
)

// RetryPolicy 선형 백오프 재시도 정책.
// 재시도/폴백 흐름을 중첩 예외 처리 대신 일급 객체로 둔다.
type RetryPolicy struct {
	// MaxAttempts 기본 경로 최대 시도 횟수
	MaxAttempts int
	// BaseBackoff 선형 백오프 기본 간격 (n번째 재시도 전 대기 = BaseBackoff × n)
	BaseBackoff time.Duration
}

// DefaultRetryPolicy 기본 정책: 3회 시도, 200ms 선형 백오프
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseBackoff: 200 * time.Millisecond,
	}
}

// Delay n번째 실패 후 대기 시간 (1-based)
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return p.BaseBackoff * time.Duration(attempt)
}

// WriteAttempt 쓰기 한 건의 수명 주기 상태 기계.
// Pending → Retrying(n) → Succeeded | BackedUp | Failed
type WriteAttempt struct {
	policy   RetryPolicy
	state    AttemptState
	attempts int
}

// NewWriteAttempt 쓰기 시도 생성
func NewWriteAttempt(policy RetryPolicy) *WriteAttempt {
	return &WriteAttempt{
		policy: policy,
		state:  AttemptPending,
	}
}

// State 현재 상태
func (a *WriteAttempt) State() AttemptState {
	return a.state
}

// Attempts 지금까지의 기본 경로 시도 횟수
func (a *WriteAttempt) Attempts() int {
	return a.attempts
}

// ShouldTry 기본 경로를 더 시도할 수 있는지
func (a *WriteAttempt) ShouldTry() bool {
	return (a.state == AttemptPending || a.state == AttemptRetrying) &&
		a.attempts < a.policy.MaxAttempts
}

// RecordFailure 실패 기록. 남은 시도가 있으면 대기 시간을 반환하고 Retrying 으로,
// 소진되었으면 0 을 반환하며 상태를 유지한다 (호출자가 백업 경로로 넘어간다).
func (a *WriteAttempt) RecordFailure() time.Duration {
	a.attempts++
	if a.attempts < a.policy.MaxAttempts {
		a.state = AttemptRetrying
		return a.policy.Delay(a.attempts)
	}
	return 0
}

// MarkSucceeded 기본 경로 성공
func (a *WriteAttempt) MarkSucceeded() {
	a.attempts++
	a.state = AttemptSucceeded
}

// MarkBackedUp 백업 경로 성공
func (a *WriteAttempt) MarkBackedUp() {
	a.state = AttemptBackedUp
}

// MarkFailed 백업 경로까지 실패
func (a *WriteAttempt) MarkFailed() {
	a.state = AttemptFailed
}

// Exhausted 기본 경로 시도 소진 여부
func (a *WriteAttempt) Exhausted() bool {
	return a.attempts >= a.policy.MaxAttempts &&
		a.state != AttemptSucceeded
}
