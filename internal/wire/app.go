package wire

import (
	"context"
	"time"

	"log/slog"

	appChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/application/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/cache"
	applog "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/patterns"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/profile"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/streaming"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces"
)

// shutdownTimeout HTTP 서버 종료 대기 한도
const shutdownTimeout = 5 * time.Second

// App 애플리케이션 메인 구조, 모든 서비스 조합
type App struct {
	HTTPServer    *interfaces.HTTPServer
	MCPServer     *interfaces.MCPServer
	registry      *appChat.Registry
	streamEngine  *streaming.Engine
	patternLoader *patterns.Loader
	profiles      profile.Repository
	cacheStore    *cache.RedisStore
	logger        *slog.Logger
}

// NewApp 애플리케이션 인스턴스 생성
func NewApp(
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	registry *appChat.Registry,
	streamEngine *streaming.Engine,
	patternLoader *patterns.Loader,
	profiles profile.Repository,
	cacheStore *cache.RedisStore,
) *App {
	return &App{
		HTTPServer:    httpServer,
		MCPServer:     mcpServer,
		registry:      registry,
		streamEngine:  streamEngine,
		patternLoader: patternLoader,
		profiles:      profiles,
		cacheStore:    cacheStore,
		logger:        applog.NewModuleLogger("app", "main"),
	}
}

// Start 모든 서비스 시작
func (a *App) Start() error {
	a.logger.Info("Starting recipe chat backend application")

	// 세션 레지스트리 만료 정리 루프
	a.registry.Start()

	// 스트리밍 품질 제어 루프
	a.streamEngine.Start()

	// 의도 패턴 파일 감시 (오버라이드 미설정 시 기본 패턴만 사용)
	if err := a.patternLoader.Start(); err != nil {
		a.logger.Error("Failed to start pattern loader",
			"error", err,
		)
	}

	// HTTP 서버 시작 (goroutine)
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	// MCP 전용 포트 시작 (goroutine). /mcp/sse 로도 API 서버에 통합되어 있다
	go func() {
		if err := a.MCPServer.Start(); err != nil {
			a.logger.Error("Failed to start MCP server",
				"error", err,
			)
		}
	}()

	a.logger.Info("Recipe chat backend application started successfully")

	return nil
}

// Stop 모든 서비스 정지
func (a *App) Stop() error {
	a.logger.Info("Stopping recipe chat backend application")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.HTTPServer.Stop(ctx); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	if err := a.MCPServer.Stop(ctx); err != nil {
		a.logger.Error("Failed to stop MCP server",
			"error", err,
		)
		return err
	}

	a.patternLoader.Stop()
	a.streamEngine.Stop()
	a.registry.Stop()

	// 프로필 DB 연결 종료
	if err := a.profiles.Close(); err != nil {
		a.logger.Error("Failed to close profile repository",
			"error", err,
		)
		return err
	}

	// Redis 연결 종료
	if err := a.cacheStore.Close(); err != nil {
		a.logger.Error("Failed to close cache store",
			"error", err,
		)
		return err
	}

	a.logger.Info("Recipe chat backend application stopped successfully")

	return nil
}
