package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
)

// HeaderRequestID 요청 식별자 헤더
const HeaderRequestID = "X-Request-ID"

// RequestID 요청마다 식별자를 부여하고 로그 컨텍스트에 싣는 미들웨어.
// 클라이언트가 보낸 식별자가 있으면 그대로 사용한다.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := log.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
