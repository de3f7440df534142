package chat

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"

	domainChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/intent"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/llm"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/search"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/streaming"
)

// apologyMessage 생성 실패 시 사용자에게 보여줄 메시지
const apologyMessage = "죄송해요, 지금은 답변을 만들 수 없어요. 잠시 후 다시 시도해 주세요."

// Reply 발화 처리 결과
type Reply struct {
	SessionID      string                       `json:"sessionId"`
	Response       string                       `json:"response"`
	Stage          domainChat.Stage             `json:"stage"`
	Intent         intent.Type                  `json:"intent"`
	Confidence     float64                      `json:"confidence"`
	Recipes        []domainChat.RecipeReference `json:"recipes,omitempty"`
	SelectedRecipe *domainChat.RecipeReference  `json:"selectedRecipe,omitempty"`
	ProcessingTime int64                        `json:"processingTime"`
}

// Service 대화 엔진. 분류→참조 해소→상태 전이→생성→영속화 파이프라인을 조율한다.
type Service struct {
	registry   *Registry
	classifier *intent.Classifier
	assembler  *Assembler
	generator  Generator
	searcher   RecipeSearcher
	profiles   ProfileSource
	history    HistoryStore
	streamer   *streaming.Engine
	llmCfg     *config.LLMConfig
	logger     *slog.Logger

	now func() time.Time
}

// NewService 대화 엔진 생성
func NewService(
	registry *Registry,
	classifier *intent.Classifier,
	assembler *Assembler,
	generator Generator,
	searcher RecipeSearcher,
	profiles ProfileSource,
	history HistoryStore,
	streamer *streaming.Engine,
	llmCfg *config.LLMConfig,
) *Service {
	return &Service{
		registry:   registry,
		classifier: classifier,
		assembler:  assembler,
		generator:  generator,
		searcher:   searcher,
		profiles:   profiles,
		history:    history,
		streamer:   streamer,
		llmCfg:     llmCfg,
		logger:     log.NewModuleLogger("chat", "service"),
		now:        time.Now,
	}
}

// turnPlan 생성 호출 전에 확정되는 턴 처리 계획
type turnPlan struct {
	session        *domainChat.Session
	profile        *domainChat.UserProfile
	classification intent.Classification
	resolved       *domainChat.RecipeReference
	prompt         string
	stage          domainChat.Stage

	// 생성 실패 시 복원할 스냅샷
	prevStage      domainChat.Stage
	prevCandidates []domainChat.RecipeReference
}

// ProcessMessage 발화 처리 후 전체 응답 반환
func (s *Service) ProcessMessage(ctx context.Context, userID, sessionID, message string) (*Reply, error) {
	start := s.now()
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	session, release, err := s.registry.Acquire(sessionID, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	plan := s.prepareTurn(ctx, session, userID, message)

	response, err := s.generator.Generate(ctx, plan.prompt, llm.Options{
		Temperature: s.llmCfg.Temperature,
		MaxTokens:   s.llmCfg.MaxTokens,
	})
	if err != nil {
		s.rollback(plan)
		s.logger.Error("generation failed",
			"session_id", sessionID,
			"stage", plan.prevStage,
			"error", err,
		)
		return nil, fmt.Errorf("%s: %w", apologyMessage, err)
	}

	return s.completeTurn(ctx, plan, sessionID, message, response, start)
}

// ProcessMessageStream 발화 처리 후 응답을 단편 단위로 sink에 전달한다.
// 생성 실패 시 종단 오류 청크를 보내고, 영구 기록은 남기지 않으며 단계를 복원한다.
func (s *Service) ProcessMessageStream(ctx context.Context, userID, sessionID, message string, sink streaming.Sink) (*Reply, error) {
	start := s.now()
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	session, release, err := s.registry.Acquire(sessionID, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	plan := s.prepareTurn(ctx, session, userID, message)

	if err := s.streamer.StartStream(sessionID, sink); err != nil {
		s.rollback(plan)
		return nil, err
	}

	fragments, errCh, err := s.generator.GenerateStream(ctx, plan.prompt, llm.Options{
		Temperature: s.llmCfg.Temperature,
		MaxTokens:   s.llmCfg.MaxTokens,
	})
	if err != nil {
		return nil, s.failStream(plan, sessionID, err)
	}

	var response string
	for fragment := range fragments {
		response += fragment
		if err := s.streamer.SendChunk(sessionID, streaming.Chunk{
			Type:     streaming.ChunkText,
			Priority: streaming.PriorityMedium,
			Data:     []byte(fragment),
		}); err != nil {
			s.logger.Warn("chunk delivery degraded",
				"session_id", sessionID,
				"error", err,
			)
		}
	}
	if err := <-errCh; err != nil {
		return nil, s.failStream(plan, sessionID, err)
	}

	if _, err := s.streamer.EndStream(sessionID); err != nil {
		s.logger.Warn("stream end failed", "session_id", sessionID, "error", err)
	}

	return s.completeTurn(ctx, plan, sessionID, message, response, start)
}

// prepareTurn 생성 호출 전의 짧은 임계 구역.
// 분류, 참조 해소, 상태 전이, 컨텍스트 조립까지 수행한다.
func (s *Service) prepareTurn(ctx context.Context, session *domainChat.Session, userID, message string) *turnPlan {
	now := s.now()

	profile, err := s.profiles.Find(userID)
	if err != nil || profile == nil {
		// 프로필 조회 실패는 기본값으로 회복한다
		profile = domainChat.DefaultProfile(userID)
	}

	classification := s.classifier.Classify(message, recentUserMessages(session))
	resolved := domainChat.ResolveReference(message, session)

	// 후보가 없는 상세 요청은 새 검색으로 회복한다
	intentType := classification.Type
	if intentType == intent.TypeRecipeDetail && resolved == nil && len(session.CandidateRecipes) == 0 {
		intentType = intent.TypeRecipeSearch
	}

	plan := &turnPlan{
		session:        session,
		profile:        profile,
		classification: classification,
		resolved:       resolved,
		prevStage:      session.Stage,
		prevCandidates: session.CandidateRecipes,
	}

	var searchResults []domainChat.RecipeReference
	if intentType == intent.TypeRecipeSearch {
		results, err := s.searcher.Search(ctx, message, search.Filters{
			Allergies:   profile.Allergies,
			Preferences: profile.Preferences,
		})
		if err != nil {
			// 검색 실패 시 기존 후보를 유지한 채 계속 진행한다
			s.logger.Warn("recipe search failed", "session_id", session.ID, "error", err)
		} else {
			searchResults = results
		}
	}

	plan.stage = session.ApplyTransition(intentType, searchResults)
	session.Touch(now)

	genCtx := s.assembler.Assemble(session, profile, domainChat.DeriveTimeFacts(now))
	plan.prompt = genCtx.Prompt(message)
	return plan
}

// completeTurn 응답 완성 후의 짧은 임계 구역. 턴 추가와 영구 기록을 수행한다.
func (s *Service) completeTurn(ctx context.Context, plan *turnPlan, sessionID, message, response string, start time.Time) (*Reply, error) {
	now := s.now()
	elapsed := now.Sub(start).Milliseconds()

	plan.session.AppendTurn(domainChat.Turn{
		UserMessage: message,
		AIResponse:  response,
		Intent:      string(plan.classification.Type),
		Timestamp:   now,
		Recipes:     plan.session.CandidateRecipes,
	})

	msg := &domainChat.ChatMessage{
		UserID:    plan.session.UserID,
		Message:   message,
		Response:  response,
		Timestamp: now,
		Type:      messageTypeFor(plan.classification.Type),
		Metadata: domainChat.MessageMetadata{
			Allergies:      plan.profile.Allergies,
			RecipeID:       selectedID(plan.session),
			HasRecipe:      len(plan.session.CandidateRecipes) > 0,
			ProcessingTime: elapsed,
		},
	}
	result, err := s.history.Save(ctx, msg)
	if err != nil {
		// 기본/백업 경로가 모두 실패한 경우만 여기로 온다
		s.logger.Error("durable write failed on both paths",
			"session_id", sessionID,
			"user_id", plan.session.UserID,
			"error", err,
		)
		return nil, fmt.Errorf("%s: %w", apologyMessage, err)
	}
	if result.BackupUsed {
		s.logger.Warn("durable write degraded to backup",
			"session_id", sessionID,
			"message_id", result.MessageID,
		)
	}

	return &Reply{
		SessionID:      sessionID,
		Response:       response,
		Stage:          plan.session.Stage,
		Intent:         plan.classification.Type,
		Confidence:     plan.classification.Confidence,
		Recipes:        plan.session.CandidateRecipes,
		SelectedRecipe: plan.session.SelectedRecipe,
		ProcessingTime: elapsed,
	}, nil
}

// failStream 스트림 오류 종료. 종단 오류 청크 전송 후 상태를 복원한다.
func (s *Service) failStream(plan *turnPlan, sessionID string, cause error) error {
	_ = s.streamer.Abort(sessionID, apologyMessage)
	s.rollback(plan)
	s.logger.Error("stream generation failed",
		"session_id", sessionID,
		"stage", plan.prevStage,
		"error", cause,
	)
	return fmt.Errorf("%s: %w", apologyMessage, cause)
}

// rollback 생성 실패 시 전이 이전 상태로 복원
func (s *Service) rollback(plan *turnPlan) {
	plan.session.Stage = plan.prevStage
	plan.session.CandidateRecipes = plan.prevCandidates
}

// History 영구 대화 기록 조회 (최신순)
func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]domainChat.ChatMessage, error) {
	return s.history.History(ctx, userID, limit, offset)
}

// Context 사용자 대화 컨텍스트 집계 조회
func (s *Service) Context(ctx context.Context, userID string) *domainChat.ConversationContext {
	return s.history.Context(ctx, userID)
}

// SearchRecipes 프로필 필터를 적용한 레시피 검색. 결과 순서는 검색 서비스가 정한다.
func (s *Service) SearchRecipes(ctx context.Context, userID, query string, limit int) ([]domainChat.RecipeReference, error) {
	profile, err := s.profiles.Find(userID)
	if err != nil {
		s.logger.Warn("Profile lookup failed, searching without filters",
			"userId", userID,
			"error", err,
		)
		profile = domainChat.DefaultProfile(userID)
	}

	return s.searcher.Search(ctx, query, search.Filters{
		Allergies:   profile.Allergies,
		Preferences: profile.Preferences,
		Limit:       limit,
	})
}

// ClearSession 세션 상태 초기화
func (s *Service) ClearSession(sessionID string) bool {
	return s.registry.Clear(sessionID)
}

// ClearHistory 사용자 영구 기록 전체 삭제
func (s *Service) ClearHistory(ctx context.Context, userID string) error {
	return s.history.ClearHistory(ctx, userID)
}

// StreamStats 스트리밍 집계 지표
func (s *Service) StreamStats() streaming.AggregateStats {
	return s.streamer.Aggregate()
}

// recentUserMessages 분류기 힌트용 최근 사용자 발화 목록
func recentUserMessages(session *domainChat.Session) []string {
	turns := session.RecentTurns(turnWindow)
	if len(turns) == 0 {
		return nil
	}
	messages := make([]string, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, turn.UserMessage)
	}
	return messages
}

// messageTypeFor 의도를 영구 메시지 분류로 변환
func messageTypeFor(intentType intent.Type) domainChat.MessageType {
	switch intentType {
	case intent.TypeRecipeSearch:
		return domainChat.MessageTypeRecipeQuery
	case intent.TypeRecipeDetail:
		return domainChat.MessageTypeDetailRequest
	default:
		return domainChat.MessageTypeGeneralChat
	}
}

func selectedID(session *domainChat.Session) string {
	if session.SelectedRecipe == nil {
		return ""
	}
	return session.SelectedRecipe.ID
}
