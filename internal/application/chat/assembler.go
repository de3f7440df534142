package chat

import (
	"fmt"
	"strings"

	domainChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
)

// turnWindow 프롬프트에 포함하는 최근 턴 수
const turnWindow = 5

// GenerationContext 생성 서비스에 전달할 조립 결과.
// 동일한 세션/프로필/시각 입력에 대해 항상 동일한 내용이 만들어진다.
type GenerationContext struct {
	Stage      domainChat.Stage
	Turns      []domainChat.Turn
	Profile    *domainChat.UserProfile
	TimeFacts  domainChat.TimeFacts
	Candidates []domainChat.RecipeReference
	Selected   *domainChat.RecipeReference
}

// Assembler 생성 컨텍스트 조립기. 외부 호출 없이 순수 변환만 수행한다.
type Assembler struct {
	tokenBudget int
}

// NewAssembler 조립기 생성
func NewAssembler(cfg *config.ChatConfig) *Assembler {
	return &Assembler{tokenBudget: cfg.TokenBudget}
}

// Assemble 세션/프로필/시각 사실로 생성 컨텍스트 조립.
// 토큰 예산을 넘으면 가장 오래된 턴부터 제외한다.
func (a *Assembler) Assemble(
	session *domainChat.Session,
	profile *domainChat.UserProfile,
	facts domainChat.TimeFacts,
) GenerationContext {
	genCtx := GenerationContext{
		Stage:      session.Stage,
		Turns:      session.RecentTurns(turnWindow),
		Profile:    profile,
		TimeFacts:  facts,
		Candidates: session.CandidateRecipes,
		Selected:   session.SelectedRecipe,
	}

	if a.tokenBudget > 0 {
		for len(genCtx.Turns) > 0 && countTokens(genCtx.Prompt("")) > a.tokenBudget {
			genCtx.Turns = genCtx.Turns[1:]
		}
	}
	return genCtx
}

// Prompt 생성 서비스에 보낼 프롬프트 렌더링
func (c GenerationContext) Prompt(userMessage string) string {
	var b strings.Builder

	b.WriteString("당신은 친절한 한국 요리 도우미입니다. 사용자의 상황에 맞춰 자연스럽게 답하세요.\n\n")

	b.WriteString("[사용자 정보]\n")
	fmt.Fprintf(&b, "- 알레르기: %s\n", joinOrNone(c.Profile.Allergies))
	fmt.Fprintf(&b, "- 요리 수준: %s\n", c.Profile.CookingLevel)
	fmt.Fprintf(&b, "- 선호: %s\n\n", joinOrNone(c.Profile.Preferences))

	b.WriteString("[현재 상황]\n")
	fmt.Fprintf(&b, "- 시간대: %s\n", c.TimeFacts.TimeOfDay)
	fmt.Fprintf(&b, "- 식사: %s\n", c.TimeFacts.MealTime)
	fmt.Fprintf(&b, "- 계절: %s\n", c.TimeFacts.Season)
	fmt.Fprintf(&b, "- 주말: %s\n", yesNo(c.TimeFacts.Weekend))
	fmt.Fprintf(&b, "- 대화 단계: %s\n\n", c.Stage)

	if len(c.Candidates) > 0 {
		b.WriteString("[후보 레시피]\n")
		for _, recipe := range c.Candidates {
			fmt.Fprintf(&b, "%d. %s - %s\n", recipe.Position, recipe.Title, recipe.ShortDescription)
		}
		b.WriteString("\n")
	}

	if c.Selected != nil {
		fmt.Fprintf(&b, "[선택된 레시피]\n%s - %s\n\n", c.Selected.Title, c.Selected.ShortDescription)
	}

	if len(c.Turns) > 0 {
		b.WriteString("[최근 대화]\n")
		for _, turn := range c.Turns {
			fmt.Fprintf(&b, "사용자: %s\n", turn.UserMessage)
			fmt.Fprintf(&b, "도우미: %s\n", turn.AIResponse)
		}
		b.WriteString("\n")
	}

	if userMessage != "" {
		fmt.Fprintf(&b, "[사용자 메시지]\n%s\n", userMessage)
	}
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "없음"
	}
	return strings.Join(items, ", ")
}

func yesNo(v bool) string {
	if v {
		return "예"
	}
	return "아니오"
}
