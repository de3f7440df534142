package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/cache"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
)

// 캐시 키 네임스페이스
const (
	historyKeyPrefix = "chat:history:"
	backupKeyPrefix  = "chat:backup:"
	contextKeyPrefix = "chat:context:"
)

// verifyDelay 쓰기 검증 재조회 전 대기 시간
const verifyDelay = 50 * time.Millisecond

// SaveResult 저장 결과
type SaveResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	// BackupUsed 기본 경로 실패로 백업 네임스페이스에 저장됨
	BackupUsed bool `json:"backupUsed"`
}

// MessageStore 재시도/백업 쓰기 경로를 가진 영구 대화 기록 저장소.
// 사용자에게 보이는 작업은 영속성 실패만으로는 실패하지 않는다.
type MessageStore struct {
	cache  cache.Store
	cfg    *config.ChatConfig
	policy RetryPolicy
	logger *slog.Logger
	// sleep 주입 가능한 대기 함수 (테스트에서 교체)
	sleep func(time.Duration)
	now   func() time.Time
}

// NewMessageStore 메시지 저장소 생성
func NewMessageStore(cacheStore cache.Store, cfg *config.ChatConfig) *MessageStore {
	return &MessageStore{
		cache:  cacheStore,
		cfg:    cfg,
		policy: DefaultRetryPolicy(),
		logger: log.NewModuleLogger("store", "messages"),
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// Save 메시지 저장. 기본 쓰기 → 검증 재조회 → 선형 백오프 재시도 →
// 소진 시 백업 네임스페이스 폴백. at-least-once 이므로 중복 쓰기는 허용되며
// 읽기 측이 ID 로 중복을 제거한다.
func (s *MessageStore) Save(ctx context.Context, msg *chat.ChatMessage) (*SaveResult, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat message: %w", err)
	}

	key := historyKeyPrefix + msg.UserID + ":" + msg.ID
	attempt := NewWriteAttempt(s.policy)

	for attempt.ShouldTry() {
		if err := s.writeAndVerify(ctx, key, string(data)); err != nil {
			delay := attempt.RecordFailure()
			s.logger.Warn("primary write failed",
				"user_id", msg.UserID,
				"message_id", msg.ID,
				"attempt", attempt.Attempts(),
				"error", err,
			)
			if delay > 0 {
				s.sleep(delay)
			}
			continue
		}
		attempt.MarkSucceeded()
		break
	}

	if attempt.State() == AttemptSucceeded {
		s.afterWrite(ctx, msg)
		return &SaveResult{Success: true, MessageID: msg.ID, BackupUsed: false}, nil
	}

	// 기본 경로 소진: 백업 네임스페이스로 폴백
	backup := *msg
	backup.Metadata.BackupReason = "primary write exhausted"
	backupData, err := json.Marshal(&backup)
	if err != nil {
		attempt.MarkFailed()
		return nil, fmt.Errorf("failed to marshal backup message: %w", err)
	}

	backupKey := backupKeyPrefix + msg.UserID + ":" + msg.ID
	if err := s.cache.Set(ctx, backupKey, string(backupData), s.cfg.BackupTTL); err != nil {
		attempt.MarkFailed()
		s.logger.Error("backup write failed, durability lost for this message",
			"user_id", msg.UserID,
			"message_id", msg.ID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", chat.ErrStoreWriteFailure, err)
	}

	attempt.MarkBackedUp()
	s.logger.Warn("message saved to backup namespace",
		"user_id", msg.UserID,
		"message_id", msg.ID,
		"attempts", attempt.Attempts(),
	)
	return &SaveResult{Success: true, MessageID: msg.ID, BackupUsed: true}, nil
}

// writeAndVerify 쓰기 후 잠시 대기하고 재조회로 검증
func (s *MessageStore) writeAndVerify(ctx context.Context, key, data string) error {
	if err := s.cache.Set(ctx, key, data, s.cfg.HistoryTTL); err != nil {
		return err
	}

	s.sleep(verifyDelay)

	stored, err := s.cache.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("verification read failed: %w", err)
	}
	if stored != data {
		return fmt.Errorf("verification mismatch for key %s", key)
	}
	return nil
}

// afterWrite 기록 상한 적용과 컨텍스트 집계 갱신.
// 둘 다 영속성 보강 작업이므로 실패해도 저장 자체는 성공으로 처리한다.
func (s *MessageStore) afterWrite(ctx context.Context, msg *chat.ChatMessage) {
	if err := s.trimHistory(ctx, msg.UserID); err != nil {
		s.logger.Warn("history trim failed", "user_id", msg.UserID, "error", err)
	}
	if err := s.updateContext(ctx, msg); err != nil {
		s.logger.Warn("context aggregate update failed", "user_id", msg.UserID, "error", err)
	}
}

// History 사용자 대화 기록. 항상 최신순 정렬 후에 limit/offset 을 적용한다.
func (s *MessageStore) History(ctx context.Context, userID string, limit, offset int) ([]chat.ChatMessage, error) {
	messages, err := s.loadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(messages) {
		return []chat.ChatMessage{}, nil
	}
	messages = messages[offset:]
	if limit > 0 && limit < len(messages) {
		messages = messages[:limit]
	}
	return messages, nil
}

// loadAll 사용자 메시지 전체 로드, ID 중복 제거, 최신순 정렬
func (s *MessageStore) loadAll(ctx context.Context, userID string) ([]chat.ChatMessage, error) {
	keys, err := s.cache.KeysMatching(ctx, historyKeyPrefix+userID+":*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chat.ErrStoreReadFailure, err)
	}

	seen := make(map[string]bool, len(keys))
	messages := make([]chat.ChatMessage, 0, len(keys))
	for _, key := range keys {
		raw, err := s.cache.Get(ctx, key)
		if err != nil {
			// 개별 키 유실은 전체 조회를 실패시키지 않는다
			continue
		}
		var msg chat.ChatMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			s.logger.Warn("corrupt history record skipped", "key", key, "error", err)
			continue
		}
		if seen[msg.ID] {
			continue
		}
		seen[msg.ID] = true
		messages = append(messages, msg)
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Timestamp.After(messages[j].Timestamp)
	})
	return messages, nil
}

// trimHistory 사용자별 기록을 상한 개수로 유지 (오래된 것부터 삭제)
func (s *MessageStore) trimHistory(ctx context.Context, userID string) error {
	messages, err := s.loadAll(ctx, userID)
	if err != nil {
		return err
	}
	if len(messages) <= s.cfg.HistoryCap {
		return nil
	}

	// 최신순 정렬이므로 상한 이후가 가장 오래된 레코드
	for _, old := range messages[s.cfg.HistoryCap:] {
		key := historyKeyPrefix + userID + ":" + old.ID
		if err := s.cache.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Context 사용자 대화 컨텍스트 집계 조회.
// 읽기 실패는 빈 컨텍스트로 복구한다 (개인화만 줄어든 채 대화는 계속된다).
func (s *MessageStore) Context(ctx context.Context, userID string) *chat.ConversationContext {
	raw, err := s.cache.Get(ctx, contextKeyPrefix+userID)
	if err != nil {
		return emptyContext(userID, s.now())
	}

	var convCtx chat.ConversationContext
	if err := json.Unmarshal([]byte(raw), &convCtx); err != nil {
		s.logger.Warn("corrupt conversation context, resetting", "user_id", userID, "error", err)
		return emptyContext(userID, s.now())
	}
	return &convCtx
}

// updateContext 쓰기마다 파생 집계 갱신
func (s *MessageStore) updateContext(ctx context.Context, msg *chat.ChatMessage) error {
	convCtx := s.Context(ctx, msg.UserID)

	for _, allergy := range msg.Metadata.Allergies {
		if !containsString(convCtx.Allergies, allergy) {
			convCtx.Allergies = append(convCtx.Allergies, allergy)
		}
	}
	if msg.Type == chat.MessageTypeRecipeQuery {
		convCtx.RecipeRequests = appendCapped(convCtx.RecipeRequests, msg.Message, 20)
	}
	if msg.Metadata.HasRecipe && msg.Metadata.RecipeID != "" {
		if !containsString(convCtx.GeneratedRecipes, msg.Metadata.RecipeID) {
			convCtx.GeneratedRecipes = append(convCtx.GeneratedRecipes, msg.Metadata.RecipeID)
		}
	}
	convCtx.RecentMessages = appendCapped(convCtx.RecentMessages, msg.ID, 10)
	convCtx.UpdatedAt = s.now()

	data, err := json.Marshal(convCtx)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation context: %w", err)
	}
	return s.cache.Set(ctx, contextKeyPrefix+msg.UserID, string(data), s.cfg.ContextTTL)
}

// ClearHistory 사용자 기록/백업/컨텍스트 전체 삭제
func (s *MessageStore) ClearHistory(ctx context.Context, userID string) error {
	for _, pattern := range []string{
		historyKeyPrefix + userID + ":*",
		backupKeyPrefix + userID + ":*",
	} {
		keys, err := s.cache.KeysMatching(ctx, pattern)
		if err != nil {
			return fmt.Errorf("%w: %v", chat.ErrStoreReadFailure, err)
		}
		for _, key := range keys {
			if err := s.cache.Delete(ctx, key); err != nil {
				return err
			}
		}
	}
	return s.cache.Delete(ctx, contextKeyPrefix+userID)
}

// emptyContext 기본 컨텍스트
func emptyContext(userID string, now time.Time) *chat.ConversationContext {
	return &chat.ConversationContext{
		UserID:           userID,
		Allergies:        []string{},
		RecipeRequests:   []string{},
		GeneratedRecipes: []string{},
		RecentMessages:   []string{},
		UpdatedAt:        now,
	}
}

// containsString 문자열 포함 여부
func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

// appendCapped 뒤에 추가하고 오래된 항목부터 잘라 최대 n개 유지
func appendCapped(list []string, item string, n int) []string {
	list = append(list, item)
	if len(list) > n {
		list = list[len(list)-n:]
	}
	return list
}
