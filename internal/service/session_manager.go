package service

import (
	"context"
	"sync"
	"time"

	"intellistudy_backend/internal/repository"
	"intellistudy_backend/internal/util"
	"intellistudy_backend/pkg/monitoring"
)

// 每个会话默认注册的欢迎语
var defaultNodes = []struct {
	id   string
	text string
}{
	{util.NodeWelcomeTitle, "Welcome back"},
	{util.NodeWelcomeSubtitle, "Enjoy your learning journey!"},
}

// DashboardSession 一个浏览器会话持有的全部个性化状态
type DashboardSession struct {
	ID           string
	Language     *LanguageContext
	Translations *TranslationOrchestrator
	Roles        *RoleResolver

	unsubscribe func()

	mu       sync.RWMutex
	identity *util.Identity
}

// Identify 身份建立或变化时调用，nil 表示未登录。
// 角色在后台解析，不阻塞当前请求。
func (s *DashboardSession) Identify(ctx context.Context, identity *util.Identity) {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()

	s.Roles.Establish(ctx, identity.EmailAddress())
}

func (s *DashboardSession) Identity() *util.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *DashboardSession) close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

type SessionManager struct {
	repo         *repository.SessionRepository[*DashboardSession]
	prefs        *PreferenceStore
	translations textTranslator
	roles        RoleLookup
	concurrency  int

	mu sync.Mutex
}

func NewSessionManager(ttl time.Duration, prefs *PreferenceStore, translations textTranslator, roles RoleLookup, concurrency int) *SessionManager {
	repo := repository.NewSessionRepository[*DashboardSession](ttl, func(_ string, s *DashboardSession) {
		s.close()
		monitoring.ActiveSessions.Dec()
	})
	return &SessionManager{
		repo:         repo,
		prefs:        prefs,
		translations: translations,
		roles:        roles,
		concurrency:  concurrency,
	}
}

// GetOrCreate 新会话从偏好存储读取初始语言并立即应用到默认文案
func (m *SessionManager) GetOrCreate(ctx context.Context, id string) *DashboardSession {
	if s, ok := m.repo.Get(id); ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.repo.Get(id); ok {
		return s
	}

	pref := m.prefs.Load(ctx, id)
	s := &DashboardSession{
		ID:           id,
		Language:     NewLanguageContext(id, pref.Language, m.prefs),
		Translations: NewTranslationOrchestrator(m.translations, m.concurrency),
		Roles:        NewRoleResolver(m.roles),
	}
	for _, n := range defaultNodes {
		s.Translations.Register(n.id, n.text)
	}
	s.Translations.Apply(ctx, s.Language.Current())
	s.unsubscribe = s.Language.Subscribe(s.Translations.OnLanguageChanged)

	m.repo.Save(id, s)
	monitoring.ActiveSessions.Inc()
	return s
}

func (m *SessionManager) Get(id string) (*DashboardSession, bool) {
	return m.repo.Get(id)
}

// IdentityEmail 供资料同步使用，会话不存在或未登录时返回空
func (m *SessionManager) IdentityEmail(sessionID string) string {
	s, ok := m.repo.Get(sessionID)
	if !ok {
		return ""
	}
	return s.Identity().EmailAddress()
}

func (m *SessionManager) Count() int {
	return m.repo.Count()
}
