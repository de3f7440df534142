package cache

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
)

// entry 만료 시각을 가진 값
type entry struct {
	value     string
	expiresAt time.Time // zero 면 만료 없음
}

// MemoryStore 인메모리 키-값 저장소. 테스트와 Redis 없는 로컬 실행에 사용한다.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	// now 주입 가능한 시계 (테스트용)
	now func() time.Time
}

// NewMemoryStore 인메모리 저장소 생성
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// SetClock 시계 주입 (테스트용)
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Get 키 조회
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	now := s.now()
	s.mu.RUnlock()

	if !ok {
		return "", chat.ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
		// 만료된 키는 지연 삭제
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return "", chat.ErrCacheMiss
	}
	return e.value, nil
}

// Set TTL 과 함께 키 저장
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e
	return nil
}

// Delete 키 삭제
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// KeysMatching 글롭 패턴 일치 키 목록
func (s *MemoryStore) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	now := s.now()
	for key, e := range s.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			continue
		}
		matched, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if matched {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Close 자원 해제
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
	return nil
}
