package cache

import (
	"context"
	"time"
)

// Store 키-값 캐시/세션 저장소 인터페이스.
// 영구 메시지 저장소와 세션 컨텍스트 영속화가 이 인터페이스만 사용한다.
type Store interface {
	// Get 키 조회. 없으면 chat.ErrCacheMiss
	Get(ctx context.Context, key string) (string, error)

	// Set TTL 과 함께 키 저장. ttl <= 0 이면 만료 없음
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete 키 삭제. 없는 키 삭제는 오류가 아니다
	Delete(ctx context.Context, key string) error

	// KeysMatching 글롭 패턴에 일치하는 키 목록
	KeysMatching(ctx context.Context, pattern string) ([]string, error)

	// Close 연결 해제
	Close() error
}
