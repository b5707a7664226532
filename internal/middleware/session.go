package middleware

import (
	"intellistudy_backend/internal/config"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKeyDashboardSession = "dashboard_session"

// SessionMiddleware 为浏览器分配会话 cookie，并在身份变化时通知会话
func SessionMiddleware(cfg config.SessionConfig, sessions *service.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.SetCookie(cfg.CookieName, id, int(cfg.TTL().Seconds()), "/", "", cfg.Secure, true)

		session := sessions.GetOrCreate(c.Request.Context(), id)

		identity := util.GetIdentityFromContext(c)
		if !sameIdentity(identity, session.Identity()) {
			session.Identify(c.Request.Context(), identity)
		}

		c.Set(util.ContextKeySession, id)
		c.Set(contextKeyDashboardSession, session)
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *service.DashboardSession {
	v, exists := c.Get(contextKeyDashboardSession)
	if !exists {
		return nil
	}
	session, _ := v.(*service.DashboardSession)
	return session
}

func sameIdentity(a, b *util.Identity) bool {
	return a.EmailAddress() == b.EmailAddress() && a.DisplayName() == b.DisplayName()
}
