package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/application/chat"
	domainChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/http/response"
)

// HeaderUserID 인증 계층이 채우는 사용자 식별 헤더
const HeaderUserID = "X-User-ID"

// ChatHandler 대화 처리기
type ChatHandler struct {
	service *appChat.Service
}

// NewChatHandler 대화 처리기 생성
func NewChatHandler(service *appChat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// MessageRequest 발화 요청
type MessageRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// ClearSessionRequest 세션 초기화 요청
type ClearSessionRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// userID 요청에서 사용자 식별자 추출
func userID(c *gin.Context) string {
	return c.GetHeader(HeaderUserID)
}

// Message 발화 처리
// @Summary 발화 처리
// @Tags 대화
// @Accept json
// @Produce json
// @Param X-User-ID header string true "사용자 식별자"
// @Param body body MessageRequest true "발화 내용"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /chat/message [post]
func (h *ChatHandler) Message(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.Error(c, http.StatusBadRequest, 100001, "사용자 식별자가 없습니다")
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 100002, "요청 형식이 올바르지 않습니다")
		return
	}

	reply, err := h.service.ProcessMessage(c.Request.Context(), uid, req.SessionID, req.Message)
	if err != nil {
		switch {
		case isBusy(err):
			response.Error(c, http.StatusConflict, 100003, "이전 발화를 처리하는 중입니다")
		default:
			response.ErrorWithDetail(c, http.StatusInternalServerError, 100004,
				"응답 생성에 실패했습니다", err.Error())
		}
		return
	}

	response.Success(c, reply)
}

// History 대화 기록 조회 (최신순)
// @Summary 대화 기록 조회
// @Tags 대화
// @Produce json
// @Param X-User-ID header string true "사용자 식별자"
// @Param limit query int false "조회 개수" default(20)
// @Param offset query int false "건너뛸 개수" default(0)
// @Success 200 {object} response.Response
// @Router /chat/history [get]
func (h *ChatHandler) History(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.Error(c, http.StatusBadRequest, 100001, "사용자 식별자가 없습니다")
		return
	}

	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	messages, err := h.service.History(c.Request.Context(), uid, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 100005, "대화 기록 조회에 실패했습니다")
		return
	}
	if messages == nil {
		messages = []domainChat.ChatMessage{}
	}

	response.Success(c, messages)
}

// ClearHistory 대화 기록 전체 삭제
// @Summary 대화 기록 전체 삭제
// @Tags 대화
// @Produce json
// @Param X-User-ID header string true "사용자 식별자"
// @Success 200 {object} response.Response
// @Router /chat/history [delete]
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.Error(c, http.StatusBadRequest, 100001, "사용자 식별자가 없습니다")
		return
	}

	if err := h.service.ClearHistory(c.Request.Context(), uid); err != nil {
		response.Error(c, http.StatusInternalServerError, 100006, "대화 기록 삭제에 실패했습니다")
		return
	}

	response.Success(c, gin.H{"cleared": true})
}

// ClearSession 세션 상태 초기화
// @Summary 세션 상태 초기화
// @Tags 대화
// @Accept json
// @Produce json
// @Param body body ClearSessionRequest true "세션 식별자"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /chat/session/clear [post]
func (h *ChatHandler) ClearSession(c *gin.Context) {
	var req ClearSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 100002, "요청 형식이 올바르지 않습니다")
		return
	}

	cleared := h.service.ClearSession(req.SessionID)
	response.Success(c, gin.H{"cleared": cleared})
}

// Context 사용자 대화 컨텍스트 집계 조회
// @Summary 대화 컨텍스트 조회
// @Tags 대화
// @Produce json
// @Param X-User-ID header string true "사용자 식별자"
// @Success 200 {object} response.Response
// @Router /chat/context [get]
func (h *ChatHandler) Context(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.Error(c, http.StatusBadRequest, 100001, "사용자 식별자가 없습니다")
		return
	}

	response.Success(c, h.service.Context(c.Request.Context(), uid))
}

func isBusy(err error) bool {
	return errors.Is(err, domainChat.ErrSessionBusy)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
