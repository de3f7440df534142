package streaming

import "time"

// Quality 스트림 품질 등급
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityPoor      Quality = "poor"
	QualityCritical  Quality = "critical"
)

// AssessQuality 지연/오류율/버퍼 상태로 품질 등급 판정
func AssessQuality(avgLatency time.Duration, errorRate, bufferHealth float64) Quality {
	switch {
	case avgLatency < 50*time.Millisecond && errorRate < 0.01 && bufferHealth > 0.8:
		return QualityExcellent
	case avgLatency < 200*time.Millisecond && errorRate < 0.05 && bufferHealth > 0.5:
		return QualityGood
	case avgLatency < 500*time.Millisecond && errorRate < 0.1 && bufferHealth > 0.2:
		return QualityPoor
	default:
		return QualityCritical
	}
}

// optimizeForQuality 등급에 따라 세션 전송 파라미터 조정.
// 나쁜 등급일수록 압축을 적극적으로 걸고 전송 간격을 벌린다.
func optimizeForQuality(s *streamSession, quality Quality, baseCompressMin int) {
	switch quality {
	case QualityExcellent:
		// 여유가 있으므로 압축 부담을 줄인다
		s.compressMinBytes = baseCompressMin * 4
		s.throttleDelay = 0
	case QualityGood:
		s.compressMinBytes = baseCompressMin
		s.throttleDelay = 0
	case QualityPoor:
		s.compressMinBytes = baseCompressMin / 2
		s.throttleDelay = 20 * time.Millisecond
	case QualityCritical:
		s.compressMinBytes = baseCompressMin / 4
		s.throttleDelay = 50 * time.Millisecond
	}
	if s.compressMinBytes < 64 {
		s.compressMinBytes = 64
	}
}
