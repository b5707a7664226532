package util

// gin.Context 中的键
const (
	ContextKeyIdentity = "identity"
	ContextKeySession  = "session_id"
)

// 首页默认需要机器翻译的文案
const (
	NodeWelcomeTitle    = "welcome.title"
	NodeWelcomeSubtitle = "welcome.subtitle"
)

const GuestDisplayName = "Guest"
