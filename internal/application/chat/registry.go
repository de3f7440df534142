package chat

import (
	"fmt"
	"sync"
	"time"

	"log/slog"

	domainChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
)

// sessionEntry 세션과 단일 작성자 플래그
type sessionEntry struct {
	session *domainChat.Session
	busy    bool
}

// Registry 프로세스 소유 세션 저장소.
// 세션은 첫 발화 시점에 지연 생성되고, 비활성 세션은 주기 청소로 제거된다.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry

	timeout       time.Duration
	sweepInterval time.Duration
	logger        *slog.Logger

	// 테스트에서 교체 가능한 시계
	now func() time.Time

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewRegistry 세션 레지스트리 생성
func NewRegistry(cfg *config.ChatConfig) *Registry {
	return &Registry{
		entries:       make(map[string]*sessionEntry),
		timeout:       cfg.SessionTimeout,
		sweepInterval: cfg.SweepInterval,
		logger:        log.NewModuleLogger("chat", "registry"),
		now:           time.Now,
		stopCh:        make(chan struct{}),
	}
}

// Start 비활성 세션 청소 루프 시작
func (r *Registry) Start() {
	r.wg.Add(1)
	go r.sweepLoop()
}

// Stop 청소 루프 중지
func (r *Registry) Stop() {
	close(r.stopCh)
	r.wg.Wait()
}

// Acquire 세션 확보. 없으면 생성하고, 해당 세션의 단일 작성자 권한을 얻는다.
// 같은 세션에 이미 처리 중인 발화가 있으면 ErrSessionBusy 를 반환한다.
// 반환된 release 는 반드시 호출해야 한다.
func (r *Registry) Acquire(sessionID, userID string) (*domainChat.Session, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		entry = &sessionEntry{
			session: domainChat.NewSession(sessionID, userID, r.now()),
		}
		r.entries[sessionID] = entry
		r.logger.Debug("session created", "session_id", sessionID, "user_id", userID)
	}

	if entry.busy {
		return nil, nil, fmt.Errorf("%w: %s", domainChat.ErrSessionBusy, sessionID)
	}
	entry.busy = true

	release := func() {
		r.mu.Lock()
		entry.busy = false
		r.mu.Unlock()
	}
	return entry.session, release, nil
}

// Peek 세션 조회. 생성하지 않는다.
func (r *Registry) Peek(sessionID string) (*domainChat.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

// Clear 세션 제거. 존재했으면 true.
func (r *Registry) Clear(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[sessionID]; !ok {
		return false
	}
	delete(r.entries, sessionID)
	r.logger.Info("session cleared", "session_id", sessionID)
	return true
}

// Len 활성 세션 수
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// sweepLoop 주기적으로 만료 세션을 제거한다
func (r *Registry) sweepLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// sweep 만료 세션 제거. 처리 중(busy) 세션은 건너뛴다.
func (r *Registry) sweep() {
	now := r.now()

	r.mu.Lock()
	var expired []string
	for id, entry := range r.entries {
		if entry.busy {
			continue
		}
		if entry.session.IsExpired(now, r.timeout) {
			expired = append(expired, id)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	if len(expired) > 0 {
		r.logger.Info("expired sessions swept", "count", len(expired))
	}
}
