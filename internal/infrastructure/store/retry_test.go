package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_LinearDelay(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseBackoff: 100 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, policy.Delay(1))
	assert.Equal(t, 200*time.Millisecond, policy.Delay(2))
	assert.Equal(t, 300*time.Millisecond, policy.Delay(3))
	assert.Equal(t, 100*time.Millisecond, policy.Delay(0), "1 미만은 1로 취급")
}

func TestWriteAttempt_SucceedsFirstTry(t *testing.T) {
	attempt := NewWriteAttempt(DefaultRetryPolicy())

	assert.Equal(t, AttemptPending, attempt.State())
	assert.True(t, attempt.ShouldTry())

	attempt.MarkSucceeded()
	assert.Equal(t, AttemptSucceeded, attempt.State())
	assert.False(t, attempt.ShouldTry())
}

func TestWriteAttempt_RetryThenSuccess(t *testing.T) {
	attempt := NewWriteAttempt(RetryPolicy{MaxAttempts: 3, BaseBackoff: 10 * time.Millisecond})

	// 두 번 실패
	delay := attempt.RecordFailure()
	assert.Equal(t, AttemptRetrying, attempt.State())
	assert.Equal(t, 10*time.Millisecond, delay)

	delay = attempt.RecordFailure()
	assert.Equal(t, 20*time.Millisecond, delay)
	assert.True(t, attempt.ShouldTry(), "세 번째 시도 가능")

	// 세 번째 성공
	attempt.MarkSucceeded()
	assert.Equal(t, AttemptSucceeded, attempt.State())
	assert.False(t, attempt.Exhausted())
}

func TestWriteAttempt_ExhaustionThenBackup(t *testing.T) {
	attempt := NewWriteAttempt(RetryPolicy{MaxAttempts: 2, BaseBackoff: time.Millisecond})

	attempt.RecordFailure()
	delay := attempt.RecordFailure()
	assert.Equal(t, time.Duration(0), delay, "소진 시 대기 없음")
	assert.False(t, attempt.ShouldTry())
	assert.True(t, attempt.Exhausted())

	attempt.MarkBackedUp()
	assert.Equal(t, AttemptBackedUp, attempt.State())
}

func TestWriteAttempt_TotalFailure(t *testing.T) {
	attempt := NewWriteAttempt(RetryPolicy{MaxAttempts: 1, BaseBackoff: time.Millisecond})

	attempt.RecordFailure()
	assert.True(t, attempt.Exhausted())

	attempt.MarkFailed()
	assert.Equal(t, AttemptFailed, attempt.State())
}
