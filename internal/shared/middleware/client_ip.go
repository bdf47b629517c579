package middleware

import (
	"borntoday/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

const ClientIPKey = "client_ip"

// ClientIP lấy IP thật của client (sau proxy) và lưu vào gin context
// Đăng ký trước Logger để log có IP đúng
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClientIPKey, utils.ExtractClientIP(c))
		c.Next()
	}
}
