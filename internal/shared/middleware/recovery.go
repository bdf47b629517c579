package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"borntoday/internal/shared/response"
)

// Recovery bắt panic, log và trả về lỗi 500.
// Route đánh dấu bởi AdminAPI() nhận JSON, còn lại gọi renderHTML (trang 500).
func Recovery(renderHTML gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				if c.Writer.Written() {
					c.Abort()
					return
				}

				if IsJSONRequest(c) || renderHTML == nil {
					response.ErrorResponse(c, http.StatusInternalServerError, "SYS_001", "Internal server error")
					c.Abort()
					return
				}

				c.Status(http.StatusInternalServerError)
				renderHTML(c)
				c.Abort()
			}
		}()

		c.Next()
	}
}
