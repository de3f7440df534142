package chat

import (
	"time"
)

// MaxTurnHistory 세션이 유지하는 최대 턴 수 (FIFO)
const MaxTurnHistory = 10

// Stage 대화 단계
type Stage string

const (
	// StageGreeting 인사/초기 단계
	StageGreeting Stage = "greeting"
	// StageExploring 레시피 탐색 단계
	StageExploring Stage = "exploring"
	// StageFocused 특정 레시피 집중 단계
	StageFocused Stage = "focused"
	// StageCooking 조리 진행 단계
	StageCooking Stage = "cooking"
	// StageClarifying 의도 확인 단계
	StageClarifying Stage = "clarifying"
)

// RecipeReference 검색 결과를 가리키는 경량 참조
// 전체 레시피가 아니라 마지막 검색 결과 집합의 캐시이다.
type RecipeReference struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	// Position 1부터 시작하는 노출 순번
	Position int `json:"position"`
	// Mentioned 사용자가 한 번이라도 참조했는지 여부
	Mentioned bool `json:"mentioned"`
}

// Turn 사용자/어시스턴트 교환 한 쌍. 추가된 후에는 불변이다.
type Turn struct {
	UserMessage string    `json:"userMessage"`
	AIResponse  string    `json:"aiResponse"`
	Intent      string    `json:"intent"`
	Timestamp   time.Time `json:"timestamp"`
	// Recipes 해당 턴 시점의 후보 레시피 스냅샷 (선택)
	Recipes []RecipeReference `json:"recipes,omitempty"`
}

// Session 사용자/세션 쌍 하나의 인메모리 대화 상태
type Session struct {
	ID        string `json:"sessionId"`
	UserID    string `json:"userId"`
	Stage     Stage  `json:"stage"`
	// CandidateRecipes 마지막 검색 결과 (순번 1..N, 단계 내에서 안정적)
	CandidateRecipes []RecipeReference `json:"candidateRecipes"`
	// SelectedRecipe 현재 선택된 레시피. 명시적 초기화 외에는 해제되지 않는다.
	SelectedRecipe *RecipeReference `json:"selectedRecipe,omitempty"`
	TurnHistory    []Turn           `json:"turnHistory"`
	CreatedAt      time.Time        `json:"createdAt"`
	LastActivity   time.Time        `json:"lastActivity"`
}

// NewSession 세션 생성. 첫 발화 시점에 지연 생성된다.
func NewSession(sessionID, userID string, now time.Time) *Session {
	return &Session{
		ID:               sessionID,
		UserID:           userID,
		Stage:            StageGreeting,
		CandidateRecipes: []RecipeReference{},
		TurnHistory:      []Turn{},
		CreatedAt:        now,
		LastActivity:     now,
	}
}

// Touch 마지막 활동 시각 갱신
func (s *Session) Touch(now time.Time) {
	s.LastActivity = now
}

// IsExpired 비활성 만료 여부
func (s *Session) IsExpired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivity) > timeout
}

// AppendTurn 완료된 턴 추가. 최대 10개를 넘으면 가장 오래된 턴부터 제거한다.
func (s *Session) AppendTurn(turn Turn) {
	s.TurnHistory = append(s.TurnHistory, turn)
	if len(s.TurnHistory) > MaxTurnHistory {
		s.TurnHistory = s.TurnHistory[len(s.TurnHistory)-MaxTurnHistory:]
	}
}

// ReplaceCandidates 후보 레시피를 새 검색 결과로 교체하고 순번을 1..N 으로 재부여
func (s *Session) ReplaceCandidates(recipes []RecipeReference) {
	replaced := make([]RecipeReference, len(recipes))
	copy(replaced, recipes)
	for i := range replaced {
		replaced[i].Position = i + 1
	}
	s.CandidateRecipes = replaced
}

// RecentTurns 최근 n개 턴 반환 (오래된 순서 유지)
func (s *Session) RecentTurns(n int) []Turn {
	if n <= 0 || len(s.TurnHistory) == 0 {
		return nil
	}
	if len(s.TurnHistory) <= n {
		return s.TurnHistory
	}
	return s.TurnHistory[len(s.TurnHistory)-n:]
}

// MessageType 영구 메시지 분류
type MessageType string

const (
	// MessageTypeRecipeQuery 레시피 검색 요청
	MessageTypeRecipeQuery MessageType = "recipe_query"
	// MessageTypeGeneralChat 일반 대화
	MessageTypeGeneralChat MessageType = "general_chat"
	// MessageTypeDetailRequest 상세 정보 요청
	MessageTypeDetailRequest MessageType = "detail_request"
)

// MessageMetadata 영구 메시지 부가 정보
type MessageMetadata struct {
	Allergies []string `json:"allergies,omitempty"`
	RecipeID  string   `json:"recipeId,omitempty"`
	HasRecipe bool     `json:"hasRecipe"`
	// ProcessingTime 응답 생성에 걸린 시간 (밀리초)
	ProcessingTime int64 `json:"processingTime"`
	// BackupReason 백업 경로로 저장된 경우의 사유
	BackupReason string `json:"backupReason,omitempty"`
}

// ChatMessage 세션 수명과 무관하게 영속되는 대화 레코드
type ChatMessage struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Message   string          `json:"message"`
	Response  string          `json:"response"`
	Timestamp time.Time       `json:"timestamp"`
	Type      MessageType     `json:"type"`
	Metadata  MessageMetadata `json:"metadata"`
}

// ConversationContext 사용자별 파생 집계. 모든 영구 기록 쓰기 시 갱신된다.
type ConversationContext struct {
	UserID          string    `json:"userId"`
	Allergies       []string  `json:"allergies"`
	RecipeRequests  []string  `json:"recipeRequests"`
	GeneratedRecipes []string `json:"generatedRecipes"`
	// RecentMessages 최근 10개 메시지 ID
	RecentMessages []string  `json:"recentMessages"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserProfile 읽기 전용 사용자 프로필 (외부 소스)
type UserProfile struct {
	UserID       string   `json:"userId"`
	Allergies    []string `json:"allergies"`
	CookingLevel string   `json:"cookingLevel"`
	Preferences  []string `json:"preferences"`
}

// DefaultProfile 프로필 조회 실패 시 사용하는 기본값
func DefaultProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:       userID,
		Allergies:    []string{},
		CookingLevel: "beginner",
		Preferences:  []string{},
	}
}
