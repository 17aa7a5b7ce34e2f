package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"terminal-terrace/foodgram/internal/dto"
	"terminal-terrace/foodgram/internal/pkg/token"
	"terminal-terrace/foodgram/packages/response"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
	ContextClaims = "token_claims"
)

// parseToken 从 Authorization header 中解析 token, 兼容 Bearer 与 Token 前缀
func parseToken(c *gin.Context, tm *token.Manager) (*token.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("未提供认证令牌")
	}

	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || (scheme != "Bearer" && scheme != "Token") || tokenString == "" {
		return nil, fmt.Errorf("认证格式错误")
	}

	claims, err := tm.Parse(c.Request.Context(), tokenString)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpiredToken):
			return nil, fmt.Errorf("认证令牌已过期")
		case errors.Is(err, token.ErrRevokedToken):
			return nil, fmt.Errorf("认证令牌已注销")
		default:
			return nil, fmt.Errorf("无效的认证令牌")
		}
	}
	return claims, nil
}

func setPrincipal(c *gin.Context, claims *token.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextClaims, claims)
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth(tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c, tm)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(err.Error()),
			))
			c.Abort()
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth 可选的 JWT 认证中间件（不强制要求认证，但如果有token则解析）
func OptionalJWTAuth(tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseToken(c, tm); err == nil {
			setPrincipal(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin 仅管理员可访问, 需位于 JWTAuth 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !dto.CurrentPrincipal(c).IsAdmin() {
			dto.ErrorResponse(c, response.NewForbiddenError("需要管理员权限"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentClaims 读取当前请求的令牌声明
func CurrentClaims(c *gin.Context) *token.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}
