package streaming

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
)

const (
	// backpressureDelay 버퍼 악화 시 삽입하는 기본 전송 지연
	backpressureDelay = 50 * time.Millisecond

	breakerThreshold = 5
	breakerCooldown  = 10 * time.Second
)

// AggregateStats 전체 스트림 집계 지표
type AggregateStats struct {
	ActiveSessions int           `json:"activeSessions"`
	TotalBytes     int64         `json:"totalBytes"`
	TotalChunks    int64         `json:"totalChunks"`
	AverageLatency time.Duration `json:"averageLatency"`
}

// Engine 청크 전송 엔진. 분할/압축/배압/품질 제어를 담당한다.
type Engine struct {
	cfg    *config.StreamingConfig
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*streamSession

	// 테스트에서 교체 가능
	now   func() time.Time
	sleep func(time.Duration)

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewEngine 전송 엔진 생성
func NewEngine(cfg *config.StreamingConfig) *Engine {
	return &Engine{
		cfg:      cfg,
		logger:   log.NewModuleLogger("streaming", "engine"),
		sessions: make(map[string]*streamSession),
		now:      time.Now,
		sleep:    time.Sleep,
		stopCh:   make(chan struct{}),
	}
}

// Start 품질 제어 루프 시작
func (e *Engine) Start() {
	e.wg.Add(1)
	go e.controlLoop()
}

// Stop 제어 루프 중지 및 활성 스트림 정리
func (e *Engine) Stop() {
	close(e.stopCh)
	e.wg.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	for id := range e.sessions {
		delete(e.sessions, id)
	}
}

// StartStream 스트림 시작. 세션당 하나만 허용한다.
func (e *Engine) StartStream(sessionID string, sink Sink) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.sessions[sessionID]; exists {
		return fmt.Errorf("stream already active for session %s", sessionID)
	}

	now := e.now()
	e.sessions[sessionID] = &streamSession{
		sessionID:        sessionID,
		sink:             sink,
		startTime:        now,
		bufferHealth:     1.0,
		compressMinBytes: e.cfg.CompressMinBytes,
		lastActivity:     now,
		breaker:          newCircuitBreaker(breakerThreshold, breakerCooldown),
	}

	e.logger.Info("stream started", "session_id", sessionID)
	return nil
}

// SendChunk 청크 전송. 임계값 초과 청크는 분할하고, 큰 텍스트는 압축한다.
// 배압 상황에서는 지연을 삽입할 뿐 청크를 버리지 않는다.
func (e *Engine) SendChunk(sessionID string, chunk Chunk) error {
	session, err := e.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		return chat.ErrStreamClosed
	}
	if !session.breaker.allow(e.now()) {
		return fmt.Errorf("%w: session %s", chat.ErrCircuitOpen, sessionID)
	}

	for _, part := range splitChunk(chunk, e.cfg.ChunkSplitBytes) {
		if err := e.sendOne(session, part); err != nil {
			return err
		}
	}
	return nil
}

// EndStream 스트림 종료. 종료 표식 청크를 전송하고 통계를 반환한다.
func (e *Engine) EndStream(sessionID string) (Stats, error) {
	session, err := e.lookup(sessionID)
	if err != nil {
		return Stats{}, err
	}

	session.mu.Lock()
	if !session.closed {
		session.closed = true
		_ = session.sink.Deliver(Chunk{Type: ChunkJSON, Priority: PriorityHigh, Final: true})
	}
	stats := session.snapshot()
	session.mu.Unlock()

	e.remove(sessionID)
	e.logger.Info("stream ended",
		"session_id", sessionID,
		"chunks", stats.ChunksCount,
		"bytes", stats.TotalBytes,
		"quality", stats.Quality,
	)
	return stats, nil
}

// Abort 스트림 오류 종료. 종단 오류 청크를 전송해 클라이언트가 상태를 복구하게 한다.
func (e *Engine) Abort(sessionID, message string) error {
	session, err := e.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	if !session.closed {
		session.closed = true
		_ = session.sink.Deliver(Chunk{
			Type:         ChunkJSON,
			Priority:     PriorityHigh,
			Final:        true,
			ErrorMessage: message,
		})
	}
	session.mu.Unlock()

	e.remove(sessionID)
	e.logger.Warn("stream aborted", "session_id", sessionID, "reason", message)
	return nil
}

// Stats 단일 스트림 통계 조회
func (e *Engine) Stats(sessionID string) (Stats, error) {
	session, err := e.lookup(sessionID)
	if err != nil {
		return Stats{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot(), nil
}

// Aggregate 전체 스트림 집계 지표 계산
func (e *Engine) Aggregate() AggregateStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	agg := AggregateStats{ActiveSessions: len(e.sessions)}
	var latencySum time.Duration
	for _, session := range e.sessions {
		session.mu.Lock()
		agg.TotalBytes += session.totalBytes
		agg.TotalChunks += session.chunksCount
		latencySum += session.avgLatency
		session.mu.Unlock()
	}
	if agg.ActiveSessions > 0 {
		agg.AverageLatency = latencySum / time.Duration(agg.ActiveSessions)
	}
	return agg
}

// sendOne 단일 파트 전송. 호출자가 session.mu를 잡고 있어야 한다.
func (e *Engine) sendOne(session *streamSession, chunk Chunk) error {
	if chunk.Type == ChunkText && len(chunk.Data) > session.compressMinBytes {
		if compressed, ok := compress(chunk.Data); ok {
			session.rawBytes += int64(len(chunk.Data))
			session.compressedBytes += int64(len(compressed))
			chunk.Data = compressed
			chunk.Compressed = true
		}
	}

	if session.bufferHealth < 0.3 || session.avgLatency > 500*time.Millisecond {
		e.sleep(backpressureDelay)
	}
	if session.throttleDelay > 0 {
		e.sleep(session.throttleDelay)
	}

	start := e.now()
	err := session.sink.Deliver(chunk)
	now := e.now()

	if err != nil {
		session.recordError(now)
		session.breaker.recordFailure(now)
		return fmt.Errorf("chunk delivery failed: %w", err)
	}

	session.breaker.recordSuccess()
	session.recordSend(now.Sub(start), len(chunk.Data), now)
	return nil
}

// lookup 세션 조회
func (e *Engine) lookup(sessionID string) (*streamSession, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	session, ok := e.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", chat.ErrStreamNotFound, sessionID)
	}
	return session, nil
}

// remove 세션 제거
func (e *Engine) remove(sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, sessionID)
}

// controlLoop 주기적으로 품질을 재평가하고 유휴 스트림을 정리한다
func (e *Engine) controlLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.reoptimizeAll()
		}
	}
}

// reoptimizeAll 모든 활성 세션의 전송 파라미터 재조정 및 유휴 정리
func (e *Engine) reoptimizeAll() {
	now := e.now()

	e.mu.RLock()
	sessions := make([]*streamSession, 0, len(e.sessions))
	for _, session := range e.sessions {
		sessions = append(sessions, session)
	}
	e.mu.RUnlock()

	var idle []string
	for _, session := range sessions {
		session.mu.Lock()
		if now.Sub(session.lastActivity) > e.cfg.IdleTimeout {
			session.closed = true
			idle = append(idle, session.sessionID)
			session.mu.Unlock()
			continue
		}
		quality := AssessQuality(session.avgLatency, session.errorRate(), session.bufferHealth)
		optimizeForQuality(session, quality, e.cfg.CompressMinBytes)
		session.mu.Unlock()
	}

	for _, sessionID := range idle {
		e.remove(sessionID)
		e.logger.Info("idle stream torn down", "session_id", sessionID)
	}

	agg := e.Aggregate()
	e.logger.Debug("stream quality sweep completed",
		"active", agg.ActiveSessions,
		"total_chunks", agg.TotalChunks,
		"avg_latency", agg.AverageLatency,
	)
}

// splitChunk 임계값 초과 청크를 같은 태그의 파트로 분할
func splitChunk(chunk Chunk, splitBytes int) []Chunk {
	if splitBytes <= 0 || len(chunk.Data) <= splitBytes {
		return []Chunk{chunk}
	}

	var parts []Chunk
	data := chunk.Data
	for len(data) > 0 {
		size := splitBytes
		if len(data) < size {
			size = len(data)
		}
		part := chunk
		part.Data = data[:size]
		part.Final = false
		parts = append(parts, part)
		data = data[size:]
	}
	// 분할 시 종료 표식은 마지막 파트가 가진다
	if chunk.Final {
		parts[len(parts)-1].Final = true
	}
	return parts
}

// compress gzip 압축. 압축 결과가 더 크면 원본 유지.
func compress(data []byte) ([]byte, bool) {
	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		return nil, false
	}
	if err := writer.Close(); err != nil {
		return nil, false
	}
	if buf.Len() >= len(data) {
		return nil, false
	}
	return buf.Bytes(), true
}
