package chat

import (
	"context"

	domainChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/llm"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/search"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/store"
)

// Generator 텍스트 생성 서비스 포트. 실패는 불투명 오류로 다룬다.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts llm.Options) (string, error)
	GenerateStream(ctx context.Context, prompt string, opts llm.Options) (<-chan string, <-chan error, error)
}

// RecipeSearcher 레시피 검색 포트. 엔진은 결과를 재정렬하지 않는다.
type RecipeSearcher interface {
	Search(ctx context.Context, query string, filters search.Filters) ([]domainChat.RecipeReference, error)
}

// ProfileSource 읽기 전용 사용자 프로필 포트
type ProfileSource interface {
	Find(userID string) (*domainChat.UserProfile, error)
}

// HistoryStore 영구 대화 기록 포트
type HistoryStore interface {
	Save(ctx context.Context, msg *domainChat.ChatMessage) (*store.SaveResult, error)
	History(ctx context.Context, userID string, limit, offset int) ([]domainChat.ChatMessage, error)
	Context(ctx context.Context, userID string) *domainChat.ConversationContext
	ClearHistory(ctx context.Context, userID string) error
}
