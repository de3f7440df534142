package log

import (
	"os"
	"strconv"
	"strings"
)

// Config 로그 설정
type Config struct {
	// Level 로그 레벨: debug, info, warn, error
	Level string `json:"level" env:"LOG_LEVEL"`

	// Format 로그 포맷: console, json
	Format string `json:"format" env:"LOG_FORMAT"`

	// Output 출력 대상: stdout, file:/path/to/log
	Output string `json:"output" env:"LOG_OUTPUT"`

	// AddSource 소스 파일 정보 추가 여부 (개발 환경)
	AddSource bool `json:"add_source" env:"LOG_ADD_SOURCE"`
}

// NewConfigFromEnv 환경 변수에서 설정 생성
func NewConfigFromEnv() *Config {
	cfg := &Config{
		Level:     getEnvWithDefault("LOG_LEVEL", "info"),
		Format:    getEnvWithDefault("LOG_FORMAT", "console"),
		Output:    getEnvWithDefault("LOG_OUTPUT", "stdout"),
		AddSource: getEnvBool("LOG_ADD_SOURCE", false),
	}

	// 개발 환경에서는 자동 설정
	if cfg.isDevelopment() {
		cfg.Level = "debug"
		cfg.Format = "console"
		cfg.AddSource = true
	}

	return cfg
}

// isDevelopment 개발 환경 여부 확인
func (c *Config) isDevelopment() bool {
	env := getEnvWithDefault("ENV", "production")
	return strings.ToLower(env) == "development"
}

// getEnvWithDefault 환경 변수 조회, 기본값 지원
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool 불리언 환경 변수 조회
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
