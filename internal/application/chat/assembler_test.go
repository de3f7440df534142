package chat

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
)

func sampleSession() *domainChat.Session {
	now := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	session := domainChat.NewSession("s1", "u1", now)
	session.Stage = domainChat.StageExploring
	session.ReplaceCandidates([]domainChat.RecipeReference{
		{ID: "r-1", Title: "돼지고기 김치찌개", ShortDescription: "묵은지로 끓인 얼큰한 찌개"},
		{ID: "r-2", Title: "참치 김치찌개", ShortDescription: "참치캔으로 간단하게"},
	})
	session.AppendTurn(domainChat.Turn{
		UserMessage: "추천해줘",
		AIResponse:  "김치찌개 두 가지를 추천드려요.",
		Intent:      "recipe_search",
		Timestamp:   now,
	})
	return session
}

func sampleProfile() *domainChat.UserProfile {
	return &domainChat.UserProfile{
		UserID:       "u1",
		Allergies:    []string{"땅콩"},
		CookingLevel: "beginner",
		Preferences:  []string{"한식"},
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	assembler := NewAssembler(&config.ChatConfig{TokenBudget: 2048})
	facts := domainChat.DeriveTimeFacts(time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC))

	first := assembler.Assemble(sampleSession(), sampleProfile(), facts)
	second := assembler.Assemble(sampleSession(), sampleProfile(), facts)

	assert.Equal(t, first.Prompt("다음은?"), second.Prompt("다음은?"))
}

func TestAssemble_IncludesAllSections(t *testing.T) {
	assembler := NewAssembler(&config.ChatConfig{TokenBudget: 2048})
	facts := domainChat.DeriveTimeFacts(time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC))

	prompt := assembler.Assemble(sampleSession(), sampleProfile(), facts).Prompt("첫 번째 자세히")

	assert.Contains(t, prompt, "알레르기: 땅콩")
	assert.Contains(t, prompt, "요리 수준: beginner")
	assert.Contains(t, prompt, "1. 돼지고기 김치찌개")
	assert.Contains(t, prompt, "2. 참치 김치찌개")
	assert.Contains(t, prompt, "사용자: 추천해줘")
	assert.Contains(t, prompt, "대화 단계: exploring")
	assert.Contains(t, prompt, "[사용자 메시지]\n첫 번째 자세히")
}

func TestAssemble_EmptyProfileRendersNone(t *testing.T) {
	assembler := NewAssembler(&config.ChatConfig{TokenBudget: 2048})
	facts := domainChat.DeriveTimeFacts(time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC))
	session := domainChat.NewSession("s1", "u1", time.Now())

	prompt := assembler.Assemble(session, domainChat.DefaultProfile("u1"), facts).Prompt("안녕")

	assert.Contains(t, prompt, "알레르기: 없음")
	assert.Contains(t, prompt, "선호: 없음")
	assert.NotContains(t, prompt, "[후보 레시피]")
	assert.NotContains(t, prompt, "[최근 대화]")
}

func TestAssemble_TurnWindowLimited(t *testing.T) {
	assembler := NewAssembler(&config.ChatConfig{TokenBudget: 0})
	session := domainChat.NewSession("s1", "u1", time.Now())
	for i := 0; i < 8; i++ {
		session.AppendTurn(domainChat.Turn{
			UserMessage: fmt.Sprintf("질문 %d", i),
			AIResponse:  fmt.Sprintf("답변 %d", i),
		})
	}

	genCtx := assembler.Assemble(session, sampleProfile(), domainChat.TimeFacts{})

	require.Len(t, genCtx.Turns, 5)
	assert.Equal(t, "질문 3", genCtx.Turns[0].UserMessage)
}

func TestAssemble_TokenBudgetDropsOldestTurns(t *testing.T) {
	// 매우 작은 예산으로 오래된 턴부터 제외되는지 확인
	assembler := NewAssembler(&config.ChatConfig{TokenBudget: 120})
	session := domainChat.NewSession("s1", "u1", time.Now())
	long := strings.Repeat("아주 긴 답변입니다. ", 30)
	for i := 0; i < 5; i++ {
		session.AppendTurn(domainChat.Turn{
			UserMessage: fmt.Sprintf("질문 %d", i),
			AIResponse:  long,
		})
	}

	genCtx := assembler.Assemble(session, sampleProfile(), domainChat.TimeFacts{})

	assert.Less(t, len(genCtx.Turns), 5)
	if len(genCtx.Turns) > 0 {
		// 남아 있다면 최신 턴이 유지된다
		assert.Equal(t, "질문 4", genCtx.Turns[len(genCtx.Turns)-1].UserMessage)
	}
}
