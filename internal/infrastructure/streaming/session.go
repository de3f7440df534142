package streaming

import (
	"sync"
	"time"
)

// ChunkType 청크 페이로드 종류
type ChunkType string

const (
	ChunkText   ChunkType = "text"
	ChunkJSON   ChunkType = "json"
	ChunkBinary ChunkType = "binary"
)

// Priority 청크 전송 우선순위
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Chunk 전송 단위. 종류별로 필요한 필드만 채운다.
type Chunk struct {
	Type       ChunkType
	Priority   Priority
	Data       []byte
	Compressed bool
	// Final 스트림 종료 표식
	Final bool
	// ErrorMessage 종단 오류 청크의 메시지. 비어 있지 않으면 오류 청크.
	ErrorMessage string
}

// Sink 청크 수신자. 전송 계층(WebSocket 등)이 구현한다.
type Sink interface {
	Deliver(chunk Chunk) error
}

// QualityMetrics 세션 품질 지표
type QualityMetrics struct {
	DropRate        float64 `json:"dropRate"`
	Reconnections   int     `json:"reconnections"`
	BufferUnderruns int     `json:"bufferUnderruns"`
}

// Stats 스트리밍 세션 통계 스냅샷
type Stats struct {
	SessionID        string         `json:"sessionId"`
	StartTime        time.Time      `json:"startTime"`
	TotalBytes       int64          `json:"totalBytes"`
	ChunksCount      int64          `json:"chunksCount"`
	AverageLatency   time.Duration  `json:"averageLatency"`
	BufferHealth     float64        `json:"bufferHealth"`
	CompressionRatio float64        `json:"compressionRatio"`
	Quality          Quality        `json:"quality"`
	QualityMetrics   QualityMetrics `json:"qualityMetrics"`
}

// streamSession 활성 스트림 하나의 상태
type streamSession struct {
	mu        sync.Mutex
	sessionID string
	sink      Sink
	startTime time.Time

	totalBytes   int64
	chunksCount  int64
	avgLatency   time.Duration
	bufferHealth float64

	// 압축 전/후 누적 바이트. compressionRatio 계산용.
	rawBytes        int64
	compressedBytes int64

	errorCount int64
	metrics    QualityMetrics

	// 품질 등급에 따라 조정되는 전송 파라미터
	compressMinBytes int
	throttleDelay    time.Duration

	lastActivity time.Time
	breaker      *circuitBreaker
	closed       bool
}

// recordSend 전송 결과를 지표에 반영
func (s *streamSession) recordSend(latency time.Duration, bytes int, now time.Time) {
	s.chunksCount++
	s.totalBytes += int64(bytes)
	s.lastActivity = now

	// 누적 평균
	s.avgLatency = time.Duration(
		(int64(s.avgLatency)*(s.chunksCount-1) + int64(latency)) / s.chunksCount,
	)

	switch {
	case latency < 100*time.Millisecond:
		s.bufferHealth += 0.1
	case latency > 300*time.Millisecond:
		s.bufferHealth -= 0.1
		s.metrics.BufferUnderruns++
	}
	s.bufferHealth = clamp01(s.bufferHealth)
}

// recordError 전송 실패 반영
func (s *streamSession) recordError(now time.Time) {
	s.errorCount++
	s.lastActivity = now
	s.metrics.DropRate = s.errorRate()
}

// errorRate 전체 시도 대비 실패 비율
func (s *streamSession) errorRate() float64 {
	attempts := s.chunksCount + s.errorCount
	if attempts == 0 {
		return 0
	}
	return float64(s.errorCount) / float64(attempts)
}

// compressionRatio 압축 후/전 바이트 비율. 압축한 적이 없으면 1.
func (s *streamSession) compressionRatio() float64 {
	if s.rawBytes == 0 {
		return 1
	}
	return float64(s.compressedBytes) / float64(s.rawBytes)
}

// snapshot 현재 지표 스냅샷
func (s *streamSession) snapshot() Stats {
	return Stats{
		SessionID:        s.sessionID,
		StartTime:        s.startTime,
		TotalBytes:       s.totalBytes,
		ChunksCount:      s.chunksCount,
		AverageLatency:   s.avgLatency,
		BufferHealth:     s.bufferHealth,
		CompressionRatio: s.compressionRatio(),
		Quality:          AssessQuality(s.avgLatency, s.errorRate(), s.bufferHealth),
		QualityMetrics:   s.metrics,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
