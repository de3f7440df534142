package chat

import "errors"

// 세션 관련 오류
var (
	// ErrSessionNotFound 세션 없음
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionBusy 동일 세션에 대한 동시 발화
	ErrSessionBusy = errors.New("session is processing another message")
)

// 생성 서비스 관련 오류
var (
	// ErrGenerationFailure 생성 서비스 호출 실패
	ErrGenerationFailure = errors.New("generation service failed")
	// ErrGenerationTimeout 생성 시간 초과
	ErrGenerationTimeout = errors.New("generation timed out")
)

// 저장소 관련 오류
var (
	// ErrStoreWriteFailure 기본/백업 경로 모두 쓰기 실패
	ErrStoreWriteFailure = errors.New("store write failed on primary and backup paths")
	// ErrStoreReadFailure 저장소 읽기 실패
	ErrStoreReadFailure = errors.New("store read failed")
	// ErrCacheMiss 캐시에 키 없음
	ErrCacheMiss = errors.New("cache key not found")
)

// 스트리밍 관련 오류
var (
	// ErrStreamNotFound 활성 스트림 없음
	ErrStreamNotFound = errors.New("streaming session not found")
	// ErrStreamClosed 이미 종료된 스트림
	ErrStreamClosed = errors.New("streaming session already closed")
	// ErrCircuitOpen 서킷 브레이커 열림
	ErrCircuitOpen = errors.New("stream circuit breaker is open")
)
