package streaming

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
)

// memorySink 전송된 청크를 기록하는 테스트용 수신자
type memorySink struct {
	chunks  []Chunk
	failErr error
}

func (s *memorySink) Deliver(chunk Chunk) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.chunks = append(s.chunks, chunk)
	return nil
}

// stepClock 호출마다 일정 간격씩 진행하는 시계
type stepClock struct {
	current time.Time
	step    time.Duration
}

func (c *stepClock) Now() time.Time {
	c.current = c.current.Add(c.step)
	return c.current
}

func testStreamingConfig() *config.StreamingConfig {
	return &config.StreamingConfig{
		ChunkSplitBytes:  8 * 1024,
		CompressMinBytes: 1024,
		IdleTimeout:      5 * time.Minute,
		TickInterval:     30 * time.Second,
	}
}

func newTestEngine() *Engine {
	engine := NewEngine(testStreamingConfig())
	engine.sleep = func(time.Duration) {}
	return engine
}

func TestSplitChunk(t *testing.T) {
	chunk := Chunk{
		Type:  ChunkText,
		Data:  make([]byte, 20*1024),
		Final: true,
	}

	parts := splitChunk(chunk, 8*1024)

	require.Len(t, parts, 3)
	assert.Len(t, parts[0].Data, 8*1024)
	assert.Len(t, parts[1].Data, 8*1024)
	assert.Len(t, parts[2].Data, 4*1024)
	assert.False(t, parts[0].Final)
	assert.False(t, parts[1].Final)
	assert.True(t, parts[2].Final)
}

func TestSplitChunk_SmallPassthrough(t *testing.T) {
	chunk := Chunk{Type: ChunkText, Data: []byte("짧은 조각")}
	parts := splitChunk(chunk, 8*1024)
	require.Len(t, parts, 1)
	assert.Equal(t, chunk.Data, parts[0].Data)
}

func TestSendChunk_CompressesLargeText(t *testing.T) {
	engine := newTestEngine()
	sink := &memorySink{}
	require.NoError(t, engine.StartStream("s1", sink))

	payload := []byte(strings.Repeat("김치찌개 끓이는 법을 알려드릴게요. ", 100))
	require.Greater(t, len(payload), 1024)

	require.NoError(t, engine.SendChunk("s1", Chunk{Type: ChunkText, Data: payload}))

	require.Len(t, sink.chunks, 1)
	assert.True(t, sink.chunks[0].Compressed)
	assert.Less(t, len(sink.chunks[0].Data), len(payload))

	stats, err := engine.Stats("s1")
	require.NoError(t, err)
	assert.Less(t, stats.CompressionRatio, 1.0)
}

func TestSendChunk_SmallTextNotCompressed(t *testing.T) {
	engine := newTestEngine()
	sink := &memorySink{}
	require.NoError(t, engine.StartStream("s1", sink))

	require.NoError(t, engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("안녕하세요")}))

	require.Len(t, sink.chunks, 1)
	assert.False(t, sink.chunks[0].Compressed)
}

func TestSendChunk_UnknownStream(t *testing.T) {
	engine := newTestEngine()
	err := engine.SendChunk("missing", Chunk{Type: ChunkText, Data: []byte("x")})
	assert.ErrorIs(t, err, chat.ErrStreamNotFound)
}

func TestStartStream_Duplicate(t *testing.T) {
	engine := newTestEngine()
	require.NoError(t, engine.StartStream("s1", &memorySink{}))
	assert.Error(t, engine.StartStream("s1", &memorySink{}))
}

func TestBufferHealth_DegradesOnSlowDelivery(t *testing.T) {
	engine := newTestEngine()
	engine.now = (&stepClock{current: time.Now(), step: 400 * time.Millisecond}).Now
	sink := &memorySink{}
	require.NoError(t, engine.StartStream("s1", sink))

	require.NoError(t, engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("느린 전송")}))

	stats, err := engine.Stats("s1")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, stats.BufferHealth, 0.001)
	assert.Equal(t, 1, stats.QualityMetrics.BufferUnderruns)
}

func TestBufferHealth_ClampedAtOne(t *testing.T) {
	engine := newTestEngine()
	engine.now = (&stepClock{current: time.Now(), step: time.Millisecond}).Now
	sink := &memorySink{}
	require.NoError(t, engine.StartStream("s1", sink))

	for i := 0; i < 5; i++ {
		require.NoError(t, engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("빠른 전송")}))
	}

	stats, err := engine.Stats("s1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, stats.BufferHealth)
}

func TestBackpressure_DelayInsertedNotDropped(t *testing.T) {
	engine := newTestEngine()
	engine.now = (&stepClock{current: time.Now(), step: 600 * time.Millisecond}).Now

	var slept []time.Duration
	engine.sleep = func(d time.Duration) { slept = append(slept, d) }

	sink := &memorySink{}
	require.NoError(t, engine.StartStream("s1", sink))

	// 첫 전송으로 평균 지연이 500ms를 넘고, 둘째 전송부터 지연이 삽입된다
	require.NoError(t, engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("하나")}))
	require.NoError(t, engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("둘")}))

	assert.Contains(t, slept, backpressureDelay)
	assert.Len(t, sink.chunks, 2)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	engine := newTestEngine()
	sink := &memorySink{failErr: errors.New("connection reset")}
	require.NoError(t, engine.StartStream("s1", sink))

	for i := 0; i < breakerThreshold; i++ {
		err := engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("실패")})
		require.Error(t, err)
		assert.NotErrorIs(t, err, chat.ErrCircuitOpen)
	}

	err := engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("차단됨")})
	assert.ErrorIs(t, err, chat.ErrCircuitOpen)
}

func TestEndStream_FinalMarkerAndStats(t *testing.T) {
	engine := newTestEngine()
	sink := &memorySink{}
	require.NoError(t, engine.StartStream("s1", sink))
	require.NoError(t, engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("본문")}))

	stats, err := engine.EndStream("s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ChunksCount)

	last := sink.chunks[len(sink.chunks)-1]
	assert.True(t, last.Final)
	assert.Empty(t, last.ErrorMessage)

	err = engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("종료 후")})
	assert.ErrorIs(t, err, chat.ErrStreamNotFound)
}

func TestAbort_TerminalErrorChunk(t *testing.T) {
	engine := newTestEngine()
	sink := &memorySink{}
	require.NoError(t, engine.StartStream("s1", sink))

	require.NoError(t, engine.Abort("s1", "응답 생성에 실패했습니다"))

	require.NotEmpty(t, sink.chunks)
	last := sink.chunks[len(sink.chunks)-1]
	assert.True(t, last.Final)
	assert.Equal(t, "응답 생성에 실패했습니다", last.ErrorMessage)
}

func TestReoptimize_IdleTeardown(t *testing.T) {
	engine := newTestEngine()
	clock := &stepClock{current: time.Now(), step: 0}
	engine.now = clock.Now

	require.NoError(t, engine.StartStream("s1", &memorySink{}))

	clock.current = clock.current.Add(10 * time.Minute)
	engine.reoptimizeAll()

	err := engine.SendChunk("s1", Chunk{Type: ChunkText, Data: []byte("유휴 이후")})
	assert.ErrorIs(t, err, chat.ErrStreamNotFound)
}

func TestAssessQuality(t *testing.T) {
	cases := []struct {
		name         string
		latency      time.Duration
		errorRate    float64
		bufferHealth float64
		want         Quality
	}{
		{"excellent", 30 * time.Millisecond, 0.005, 0.9, QualityExcellent},
		{"good", 150 * time.Millisecond, 0.03, 0.6, QualityGood},
		{"poor", 400 * time.Millisecond, 0.08, 0.3, QualityPoor},
		{"critical latency", 800 * time.Millisecond, 0.0, 1.0, QualityCritical},
		{"critical errors", 30 * time.Millisecond, 0.5, 0.9, QualityCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AssessQuality(tc.latency, tc.errorRate, tc.bufferHealth))
		})
	}
}

func TestOptimizeForQuality_Critical(t *testing.T) {
	session := &streamSession{compressMinBytes: 1024}
	optimizeForQuality(session, QualityCritical, 1024)
	assert.Equal(t, 256, session.compressMinBytes)
	assert.Equal(t, 50*time.Millisecond, session.throttleDelay)

	optimizeForQuality(session, QualityExcellent, 1024)
	assert.Equal(t, 4096, session.compressMinBytes)
	assert.Equal(t, time.Duration(0), session.throttleDelay)
}
