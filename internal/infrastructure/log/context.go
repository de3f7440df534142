package log

import (
	"context"
)

// 컨텍스트 키 정의
const (
	// RequestContextID HTTP 요청 ID
	RequestContextID = "request_id"

	// SessionContextID 대화 세션 ID
	SessionContextID = "session_id"

	// UserContextID 사용자 ID
	UserContextID = "user_id"

	// StageContextID 대화 단계
	StageContextID = "stage"
)

// WithRequestID 컨텍스트에 요청 ID 추가
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestContextID, requestID)
}

// WithSessionID 컨텍스트에 세션 ID 추가
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionContextID, sessionID)
}

// WithUserID 컨텍스트에 사용자 ID 추가
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserContextID, userID)
}
