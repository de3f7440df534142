package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 환경 변수 키
const (
	EnvHTTPPort    = "CHAT_HTTP_PORT"
	EnvMCPPort     = "CHAT_MCP_PORT"
	EnvRedisAddr   = "CHAT_REDIS_ADDR"
	EnvDBPath      = "CHAT_DB_PATH"
	EnvLLMBaseURL  = "CHAT_LLM_BASE_URL"
	EnvLLMAPIKey   = "CHAT_LLM_API_KEY"
	EnvLLMModel    = "CHAT_LLM_MODEL"
	EnvSearchURL   = "CHAT_SEARCH_URL"
	EnvConfigPath  = "CHAT_CONFIG"
	EnvPatternPath = "CHAT_INTENT_PATTERNS"
)

// Config 애플리케이션 설정
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  DatabaseConfig  `yaml:"database"`
	LLM       LLMConfig       `yaml:"llm"`
	Search    SearchConfig    `yaml:"search"`
	Chat      ChatConfig      `yaml:"chat"`
	Streaming StreamingConfig `yaml:"streaming"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	HTTPPort string `yaml:"http_port"`
	MCPPort  string `yaml:"mcp_port"`
}

// RedisConfig Redis 캐시 설정
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DatabaseConfig 사용자 프로필 DB 설정
type DatabaseConfig struct {
	// Path SQLite 파일 경로, 비어 있으면 ~/.recipe-chat/profiles.db
	Path string `yaml:"path"`
}

// LLMConfig 생성 서비스 설정
type LLMConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
	// StreamTimeout 스트리밍 전체 시간 한도
	StreamTimeout time.Duration `yaml:"stream_timeout"`
}

// SearchConfig 레시피 검색 서비스 설정
type SearchConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Limit   int           `yaml:"limit"`
}

// ChatConfig 대화 엔진 설정
type ChatConfig struct {
	// SessionTimeout 세션 비활성 만료 시간
	SessionTimeout time.Duration `yaml:"session_timeout"`
	// SweepInterval 세션 정리 주기
	SweepInterval time.Duration `yaml:"sweep_interval"`
	// HistoryCap 사용자별 영구 기록 최대 개수
	HistoryCap int `yaml:"history_cap"`
	// HistoryTTL 영구 기록 TTL
	HistoryTTL time.Duration `yaml:"history_ttl"`
	// ContextTTL 대화 컨텍스트 TTL
	ContextTTL time.Duration `yaml:"context_ttl"`
	// BackupTTL 백업 레코드 TTL
	BackupTTL time.Duration `yaml:"backup_ttl"`
	// TokenBudget 컨텍스트 조립 시 프롬프트 토큰 한도
	TokenBudget int `yaml:"token_budget"`
	// PatternPath 의도 패턴 오버라이드 파일 경로 (선택)
	PatternPath string `yaml:"pattern_path"`
}

// StreamingConfig 스트리밍 전송 설정
type StreamingConfig struct {
	// ChunkSplitBytes 청크 분할 임계값
	ChunkSplitBytes int `yaml:"chunk_split_bytes"`
	// CompressMinBytes 텍스트 압축 임계값
	CompressMinBytes int `yaml:"compress_min_bytes"`
	// IdleTimeout 청크 활동이 없는 스트림 정리 시간
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	// TickInterval 품질 재평가 주기
	TickInterval time.Duration `yaml:"tick_interval"`
}

// NewConfig 설정 생성 (기본값 + 파일 + 환경 변수 순으로 적용)
func NewConfig() *Config {
	cfg := defaultConfig()

	// CHAT_CONFIG 가 지정된 경우 yaml 파일 병합
	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := cfg.loadFile(path); err != nil {
			// 설정 파일 오류는 기본값으로 계속 진행
			fmt.Fprintf(os.Stderr, "failed to load config file %s: %v\n", path, err)
		}
	}

	cfg.applyEnv()
	return cfg
}

// defaultConfig 기본 설정
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: ":8080",
			MCPPort:  ":8081",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			DB:   0,
		},
		Database: DatabaseConfig{
			Path: "",
		},
		LLM: LLMConfig{
			BaseURL:       "https://api.openai.com/v1",
			Model:         "gpt-4o-mini",
			Temperature:   0.7,
			MaxTokens:     1024,
			Timeout:       60 * time.Second,
			StreamTimeout: 120 * time.Second,
		},
		Search: SearchConfig{
			BaseURL: "http://localhost:9200",
			Timeout: 10 * time.Second,
			Limit:   5,
		},
		Chat: ChatConfig{
			SessionTimeout: 30 * time.Minute,
			SweepInterval:  30 * time.Second,
			HistoryCap:     50,
			HistoryTTL:     7 * 24 * time.Hour,
			ContextTTL:     24 * time.Hour,
			BackupTTL:      24 * time.Hour,
			TokenBudget:    2048,
		},
		Streaming: StreamingConfig{
			ChunkSplitBytes:  8 * 1024,
			CompressMinBytes: 1024,
			IdleTimeout:      5 * time.Minute,
			TickInterval:     30 * time.Second,
		},
	}
}

// loadFile yaml 설정 파일 로드
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// applyEnv 환경 변수 오버라이드 적용
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvHTTPPort); v != "" {
		c.Server.HTTPPort = v
	}
	if v := os.Getenv(EnvMCPPort); v != "" {
		c.Server.MCPPort = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLLMBaseURL); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(EnvSearchURL); v != "" {
		c.Search.BaseURL = v
	}
	if v := os.Getenv(EnvPatternPath); v != "" {
		c.Chat.PatternPath = v
	}
}

// NewServerConfig 서버 설정 반환
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewRedisConfig Redis 설정 반환
func NewRedisConfig(cfg *Config) *RedisConfig {
	return &cfg.Redis
}

// NewDatabaseConfig DB 설정 반환
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewLLMConfig LLM 설정 반환
func NewLLMConfig(cfg *Config) *LLMConfig {
	return &cfg.LLM
}

// NewSearchConfig 검색 설정 반환
func NewSearchConfig(cfg *Config) *SearchConfig {
	return &cfg.Search
}

// NewChatConfig 대화 엔진 설정 반환
func NewChatConfig(cfg *Config) *ChatConfig {
	return &cfg.Chat
}

// NewStreamingConfig 스트리밍 설정 반환
func NewStreamingConfig(cfg *Config) *StreamingConfig {
	return &cfg.Streaming
}
