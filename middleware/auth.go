package middleware

import (
	"EduForum/pkg/context"
	"net/http"
	"strings"

	"EduForum/pkg/jwt"
	"EduForum/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth 本地接口鉴权，secret 为空时不校验（只监听本机时的默认配置）
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Malformed Authorization header")
			return
		}

		claims, err := jwt.ParseToken(secret, "access", parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		c.Set(context.CtxUserID, claims.Uid())

		c.Next()
	}
}
