package mcp

import (
	"context"
	"net/http"

	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/application/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
	applog "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
)

// MCPServer MCP 서버. 대화 엔진을 에이전트 도구로 노출한다.
type MCPServer struct {
	server     *mcp.Server
	handler    http.Handler
	service    *appChat.Service
	mcpPort    string
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer MCP 서버 생성
func NewServer(serverCfg *config.ServerConfig, service *appChat.Service) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "recipe-chat-backend",
			Version: "0.1.0",
		},
		nil,
	)

	mcpServer := &MCPServer{
		server:  server,
		service: service,
		mcpPort: serverCfg.MCPPort,
		logger:  applog.NewModuleLogger("mcp", "server"),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_chat_message",
		Description: "Send a message to the recipe chat engine on behalf of a user. Parameters: user_id (string, required), message (string, required), session_id (string, optional) - omit to start a new session. Returns: session ID, response text, conversation stage, classified intent, and candidate recipes.",
	}, mcpServer.sendChatMessageTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_recipes",
		Description: "Search recipes with the user's profile filters applied (allergy exclusion, preferences). Parameters: user_id (string, required), query (string, required), limit (int, optional, default 5). Returns: matching recipes in search service order with 1-based positions.",
	}, mcpServer.searchRecipesTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_chat_history",
		Description: "Query a user's durable chat history, newest first. Parameters: user_id (string, required), limit (int, optional, default 20), offset (int, optional, default 0). Returns: messages list and total returned count.",
	}, mcpServer.getChatHistoryTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_conversation_context",
		Description: "Get the derived conversation context aggregate for a user: allergies, recipe requests, generated recipes, and recent message IDs. Parameters: user_id (string, required).",
	}, mcpServer.getConversationContextTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_chat_session",
		Description: "Clear an in-memory conversation session. Parameters: session_id (string, required). Returns: cleared flag (false when the session did not exist).",
	}, mcpServer.clearChatSessionTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_streaming_stats",
		Description: "Get aggregate streaming delivery metrics: active sessions, total bytes, total chunks, and average latency. No parameters required.",
	}, mcpServer.getStreamingStatsTool)

	handler := mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			return server
		},
		nil,
	)
	mcpServer.handler = handler

	return mcpServer
}

// GetHandler HTTP 서버에 통합할 핸들러 반환
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}

// Start MCP 전용 포트에서 SSE 리스너 시작
func (s *MCPServer) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/sse", s.handler)

	s.httpServer = &http.Server{
		Addr:    s.mcpPort,
		Handler: mux,
	}

	s.logger.Info("MCP server starting", "port", s.mcpPort)
	return s.httpServer.ListenAndServe()
}

// Stop MCP 리스너 종료
func (s *MCPServer) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("MCP server stopping")
	return s.httpServer.Shutdown(ctx)
}
