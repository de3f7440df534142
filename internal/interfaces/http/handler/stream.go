package handler

import (
	"encoding/base64"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	appChat "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/application/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/streaming"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/http/response"
)

// StreamChunk 스트림 응답 와이어 형식
type StreamChunk struct {
	// Type token(본문 단편) 또는 metadata(종료/오류 표식)
	Type       string `json:"type"`
	Content    string `json:"content,omitempty"`
	Compressed bool   `json:"compressed,omitempty"`
	IsComplete bool   `json:"isComplete"`
	Error      string `json:"error,omitempty"`
}

// StreamHandler WebSocket 스트리밍 처리기
type StreamHandler struct {
	service  *appChat.Service
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewStreamHandler 스트리밍 처리기 생성
func NewStreamHandler(service *appChat.Service) *StreamHandler {
	return &StreamHandler{
		service: service,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.NewModuleLogger("http", "stream"),
	}
}

// wsSink WebSocket 연결에 청크를 전달하는 수신자
type wsSink struct {
	conn *websocket.Conn
}

// Deliver 엔진 청크를 와이어 형식으로 변환해 전송
func (s *wsSink) Deliver(chunk streaming.Chunk) error {
	wire := StreamChunk{Type: "token"}

	if chunk.Final {
		wire.Type = "metadata"
		wire.IsComplete = true
		wire.Error = chunk.ErrorMessage
	} else if chunk.Compressed {
		wire.Content = base64.StdEncoding.EncodeToString(chunk.Data)
		wire.Compressed = true
	} else {
		wire.Content = string(chunk.Data)
	}

	return s.conn.WriteJSON(wire)
}

// Stream WebSocket 연결을 수립하고 발화별 토큰 스트림을 전달한다
// @Summary 스트리밍 대화
// @Tags 대화
// @Param X-User-ID header string true "사용자 식별자"
// @Success 101 {string} string "WebSocket 프로토콜 전환"
// @Router /chat/stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.Error(c, http.StatusBadRequest, 100001, "사용자 식별자가 없습니다")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	sink := &wsSink{conn: conn}

	// 연결 하나로 여러 발화를 처리한다. 읽기 실패 시 연결 종료.
	for {
		var req MessageRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("websocket read failed", "user_id", uid, "error", err)
			}
			return
		}
		if req.Message == "" {
			_ = conn.WriteJSON(StreamChunk{Type: "metadata", IsComplete: true, Error: "발화 내용이 없습니다"})
			continue
		}

		reply, err := h.service.ProcessMessageStream(c.Request.Context(), uid, req.SessionID, req.Message, sink)
		if err != nil {
			// 종단 오류 청크는 엔진이 이미 전송했다
			h.logger.Error("stream processing failed", "user_id", uid, "error", err)
			continue
		}

		// 세션 식별자와 단계를 후속 발화에 쓸 수 있게 알려준다
		_ = conn.WriteJSON(gin.H{
			"type":      "reply",
			"sessionId": reply.SessionID,
			"stage":     reply.Stage,
			"intent":    reply.Intent,
		})
	}
}
