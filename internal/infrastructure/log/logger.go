package log

import (
	"log/slog"
	"os"
	"strings"
)

// 전역 logger 인스턴스
var (
	defaultLogger *slog.Logger
	debugMode     bool
)

// Init 로그 시스템 초기화
func Init(cfg *Config) {
	if cfg == nil {
		cfg = NewConfigFromEnv()
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	// 개발 환경에서는 소스 파일 정보 추가
	if cfg.AddSource {
		opts.AddSource = true
	}

	// 포맷에 따라 핸들러 선택
	var logHandler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		logHandler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		logHandler = slog.NewTextHandler(os.Stdout, opts)
	}

	// 서비스 식별자 추가
	defaultLogger = slog.New(logHandler.WithAttrs([]slog.Attr{
		slog.String("service", "recipe-chat-backend"),
	}))

	debugMode = strings.ToLower(cfg.Level) == "debug"

	slog.SetDefault(defaultLogger)
}

// GetLogger 기본 logger 반환
func GetLogger() *slog.Logger {
	if defaultLogger == nil {
		// 초기화되지 않은 경우 기본 설정 사용
		Init(nil)
	}
	return defaultLogger
}

// With 추가 필드를 가진 logger 생성
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// NewModuleLogger 특정 모듈용 logger 생성
func NewModuleLogger(module, component string) *slog.Logger {
	return GetLogger().With(
		slog.String("module", module),
		slog.String("component", component),
	)
}

// IsDebugMode 디버그 모드 여부 확인
func IsDebugMode() bool {
	return debugMode
}

// parseLevel 로그 레벨 파싱
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
