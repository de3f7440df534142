package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	domainChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
)

// SendChatMessageInput 발화 도구 입력
type SendChatMessageInput struct {
	UserID    string `json:"user_id" jsonschema:"User identifier"`
	Message   string `json:"message" jsonschema:"Utterance text"`
	SessionID string `json:"session_id,omitempty" jsonschema:"Session identifier (optional, a new session is created when omitted)"`
}

// SendChatMessageOutput 발화 도구 출력
type SendChatMessageOutput struct {
	SessionID  string                       `json:"session_id" jsonschema:"Session identifier"`
	Response   string                       `json:"response" jsonschema:"Generated response text"`
	Stage      string                       `json:"stage" jsonschema:"Conversation stage after the turn"`
	Intent     string                       `json:"intent" jsonschema:"Classified intent"`
	Confidence float64                      `json:"confidence" jsonschema:"Classification confidence"`
	Recipes    []domainChat.RecipeReference `json:"recipes,omitempty" jsonschema:"Candidate recipes after the turn"`
}

// sendChatMessageTool 대화 엔진에 발화 전달
func (s *MCPServer) sendChatMessageTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SendChatMessageInput,
) (*mcp.CallToolResult, SendChatMessageOutput, error) {
	reply, err := s.service.ProcessMessage(ctx, input.UserID, input.SessionID, input.Message)
	if err != nil {
		return nil, SendChatMessageOutput{}, err
	}

	return nil, SendChatMessageOutput{
		SessionID:  reply.SessionID,
		Response:   reply.Response,
		Stage:      string(reply.Stage),
		Intent:     string(reply.Intent),
		Confidence: reply.Confidence,
		Recipes:    reply.Recipes,
	}, nil
}

// SearchRecipesInput 레시피 검색 도구 입력
type SearchRecipesInput struct {
	UserID string `json:"user_id" jsonschema:"User identifier (profile filters are applied)"`
	Query  string `json:"query" jsonschema:"Search query text"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results, default 5"`
}

// SearchRecipesOutput 레시피 검색 도구 출력
type SearchRecipesOutput struct {
	Recipes []domainChat.RecipeReference `json:"recipes" jsonschema:"Matching recipes in search service order"`
	Count   int                          `json:"count" jsonschema:"Number of recipes returned"`
}

// searchRecipesTool 프로필 필터를 적용한 레시피 검색
func (s *MCPServer) searchRecipesTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SearchRecipesInput,
) (*mcp.CallToolResult, SearchRecipesOutput, error) {
	recipes, err := s.service.SearchRecipes(ctx, input.UserID, input.Query, input.Limit)
	if err != nil {
		return nil, SearchRecipesOutput{}, err
	}
	if recipes == nil {
		recipes = []domainChat.RecipeReference{}
	}

	return nil, SearchRecipesOutput{
		Recipes: recipes,
		Count:   len(recipes),
	}, nil
}

// ChatHistoryInput 기록 조회 도구 입력
type ChatHistoryInput struct {
	UserID string `json:"user_id" jsonschema:"User identifier"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Number of messages to return, default 20"`
	Offset int    `json:"offset,omitempty" jsonschema:"Number of messages to skip, default 0"`
}

// ChatHistoryOutput 기록 조회 도구 출력
type ChatHistoryOutput struct {
	Messages []domainChat.ChatMessage `json:"messages" jsonschema:"Chat messages, newest first"`
	Count    int                      `json:"count" jsonschema:"Number of messages returned"`
}

// getChatHistoryTool 영구 대화 기록 조회
func (s *MCPServer) getChatHistoryTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ChatHistoryInput,
) (*mcp.CallToolResult, ChatHistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	messages, err := s.service.History(ctx, input.UserID, limit, input.Offset)
	if err != nil {
		return nil, ChatHistoryOutput{}, err
	}
	if messages == nil {
		messages = []domainChat.ChatMessage{}
	}

	return nil, ChatHistoryOutput{
		Messages: messages,
		Count:    len(messages),
	}, nil
}

// ConversationContextInput 컨텍스트 조회 도구 입력
type ConversationContextInput struct {
	UserID string `json:"user_id" jsonschema:"User identifier"`
}

// ConversationContextOutput 컨텍스트 조회 도구 출력
type ConversationContextOutput struct {
	Allergies        []string `json:"allergies" jsonschema:"Known allergies"`
	RecipeRequests   []string `json:"recipe_requests" jsonschema:"Recent recipe request messages"`
	GeneratedRecipes []string `json:"generated_recipes" jsonschema:"Recipe IDs surfaced to the user"`
	RecentMessages   []string `json:"recent_messages" jsonschema:"Recent message IDs"`
	UpdatedAt        string   `json:"updated_at" jsonschema:"Last update time (RFC 3339)"`
}

// getConversationContextTool 사용자 대화 컨텍스트 집계 조회
func (s *MCPServer) getConversationContextTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ConversationContextInput,
) (*mcp.CallToolResult, ConversationContextOutput, error) {
	convCtx := s.service.Context(ctx, input.UserID)

	return nil, ConversationContextOutput{
		Allergies:        convCtx.Allergies,
		RecipeRequests:   convCtx.RecipeRequests,
		GeneratedRecipes: convCtx.GeneratedRecipes,
		RecentMessages:   convCtx.RecentMessages,
		UpdatedAt:        convCtx.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// ClearChatSessionInput 세션 초기화 도구 입력
type ClearChatSessionInput struct {
	SessionID string `json:"session_id" jsonschema:"Session identifier"`
}

// ClearChatSessionOutput 세션 초기화 도구 출력
type ClearChatSessionOutput struct {
	Cleared bool `json:"cleared" jsonschema:"Whether a session was removed"`
}

// clearChatSessionTool 인메모리 세션 초기화
func (s *MCPServer) clearChatSessionTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ClearChatSessionInput,
) (*mcp.CallToolResult, ClearChatSessionOutput, error) {
	return nil, ClearChatSessionOutput{
		Cleared: s.service.ClearSession(input.SessionID),
	}, nil
}

// StreamingStatsInput 스트리밍 지표 도구 입력 (파라미터 없음)
type StreamingStatsInput struct{}

// StreamingStatsOutput 스트리밍 지표 도구 출력
type StreamingStatsOutput struct {
	ActiveSessions int    `json:"active_sessions" jsonschema:"Number of active streams"`
	TotalBytes     int64  `json:"total_bytes" jsonschema:"Total bytes delivered"`
	TotalChunks    int64  `json:"total_chunks" jsonschema:"Total chunks delivered"`
	AverageLatency string `json:"average_latency" jsonschema:"Average delivery latency across streams"`
}

// getStreamingStatsTool 스트리밍 집계 지표 조회
func (s *MCPServer) getStreamingStatsTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input StreamingStatsInput,
) (*mcp.CallToolResult, StreamingStatsOutput, error) {
	agg := s.service.StreamStats()

	return nil, StreamingStatsOutput{
		ActiveSessions: agg.ActiveSessions,
		TotalBytes:     agg.TotalBytes,
		TotalChunks:    agg.TotalChunks,
		AverageLatency: agg.AverageLatency.String(),
	}, nil
}
