package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"borntoday/internal/shared/response"
)

const jsonAPIKey = "json_api"

// AdminAPI đánh dấu request thuộc /admin/api (lỗi trả JSON thay vì HTML)
// và từ chối body không phải application/json cho các method có body
func AdminAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jsonAPIKey, true)

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
			if err != nil || mediaType != "application/json" {
				response.UnsupportedMediaType(c, "Content-Type must be application/json")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// IsJSONRequest: request đã qua AdminAPI() hoặc path nằm dưới /admin/api
// (NoRoute chạy trước khi group middleware được gọi)
func IsJSONRequest(c *gin.Context) bool {
	if c.GetBool(jsonAPIKey) {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/admin/api")
}
