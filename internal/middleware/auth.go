// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medi-ai-go/internal/service"
	"medi-ai-go/pkg/token"
)

const bearerPrefix = "Bearer "

// AuthMiddleware 创建一个 Gin 中间件，用于 JWT 认证。
// 它会从请求头中提取 token，验证其有效性与黑名单状态，
// 并将完整的 User 对象存入 Gin 的上下文中。
func AuthMiddleware(jwtManager *token.JWTManager, userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "No token provided",
				"message": "Authentication token is required",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil || userService.IsTokenRevoked(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Authentication token is invalid or expired",
			})
			return
		}

		// 使用 claims 中的用户 ID 获取完整的用户信息
		user, err := userService.GetProfile(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":   "User not found",
				"message": "User account not found",
			})
			return
		}

		c.Set("user", user)
		c.Set("claims", claims)
		c.Next()
	}
}

// OptionalAuthMiddleware 与 AuthMiddleware 类似，但缺失或无效的 token 不会中止请求，
// 只是不往上下文注入用户。用于匿名可访问、登录后附带历史记录的查询路由。
func OptionalAuthMiddleware(jwtManager *token.JWTManager, userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil || userService.IsTokenRevoked(tokenString) {
			c.Next()
			return
		}
		if user, err := userService.GetProfile(claims.UserID); err == nil {
			c.Set("user", user)
			c.Set("claims", claims)
		}
		c.Next()
	}
}
