package middleware

import (
	"context"
	"strings"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/util"
	"intellistudy_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityMiddleware 解析可选的 Bearer 令牌，无效或缺失时按游客处理，不会中断请求
func IdentityMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("ignoring invalid identity token", zap.Error(err))
			c.Next()
			return
		}

		c.Set(util.ContextKeyIdentity, &util.Identity{Email: claims.Email, FullName: claims.FullName})
		c.Next()
	}
}

// RequirePrivileged 只允许解析为 admin/metaadmin 的会话通过，角色仍在解析时等待结果
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil || util.GetIdentityFromContext(c) == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if !session.Roles.Await(c.Request.Context()).IsPrivileged() {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type IdentityRecorder interface {
	Register(ctx context.Context, email, fullName string) (*model.User, error)
}

// ActivityMiddleware 第一次见到的身份写入用户表
func ActivityMiddleware(recorder IdentityRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := util.GetIdentityFromContext(c)
		if identity != nil && identity.EmailAddress() != "" {
			email, fullName := identity.EmailAddress(), identity.FullName
			// 异步写入，不阻塞主流程
			go func() {
				if _, err := recorder.Register(context.Background(), email, fullName); err != nil {
					logger.Log.Warn("record identity failed", zap.String("email", email), zap.Error(err))
				}
			}()
		}
		c.Next()
	}
}
