package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Integrated-Logistics-System/ts-back-end-sub000/docs" // Swagger docs
	domainChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/cache"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/http/handler"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/http/middleware"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/mcp"
)

// HTTPServer HTTP 서버
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer HTTP 서버 생성
func NewServer(
	serverCfg *config.ServerConfig,
	chatHandler *handler.ChatHandler,
	streamHandler *handler.StreamHandler,
	mcpServer *mcp.MCPServer,
	cacheStore cache.Store,
) *HTTPServer {
	router := gin.Default()
	router.Use(middleware.RequestID())

	logger := log.NewModuleLogger("http", "server")

	api := router.Group("/api/v1")
	{
		chat := api.Group("/chat")
		{
			chat.POST("/message", chatHandler.Message)
			chat.GET("/stream", streamHandler.Stream)
			chat.GET("/history", chatHandler.History)
			chat.DELETE("/history", chatHandler.ClearHistory)
			chat.POST("/session/clear", chatHandler.ClearSession)
			chat.GET("/context", chatHandler.Context)
		}
	}

	// 헬스 체크 (캐시 연결 상태 포함)
	router.GET("/health", func(c *gin.Context) {
		probeCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		cacheStatus := "ok"
		if _, err := cacheStore.Get(probeCtx, "health:probe"); err != nil && !errors.Is(err, domainChat.ErrCacheMiss) {
			cacheStatus = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"cache":  cacheStatus,
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// MCP SSE 엔드포인트
	if mcpServer != nil {
		router.Any("/mcp/sse", gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router:   router,
		httpPort: serverCfg.HTTPPort,
		logger:   logger,
	}
}

// Start 서버 시작
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    s.httpPort,
		Handler: s.router,
	}

	s.logger.Info("HTTP server starting", "port", s.httpPort)
	return s.server.ListenAndServe()
}

// Stop 서버 종료
func (s *HTTPServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("HTTP server stopping")
	return s.server.Shutdown(shutdownCtx)
}

// Router 테스트용 라우터 접근자
func (s *HTTPServer) Router() *gin.Engine {
	return s.router
}
