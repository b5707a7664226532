package service

import (
	"context"
	"strings"
	"sync/atomic"

	"intellistudy_backend/internal/i18n"
	"intellistudy_backend/internal/model"
)

type DashboardService struct {
	creditLimit atomic.Int64
}

func NewDashboardService(creditLimit int) *DashboardService {
	s := &DashboardService{}
	s.SetCreditLimit(creditLimit)
	return s
}

func (s *DashboardService) SetCreditLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.creditLimit.Store(int64(limit))
}

type Credits struct {
	Available int     `json:"available"`
	Used      int     `json:"used"`
	Limit     int     `json:"limit"`
	Percent   float64 `json:"percent"`
}

// DashboardShell 侧边栏和欢迎横幅需要的全部数据
type DashboardShell struct {
	Language    model.LanguageCode    `json:"language"`
	Languages   []i18n.LanguageOption `json:"languages"`
	Theme       model.ThemeMode       `json:"theme"`
	Labels      map[string]string     `json:"labels"`
	DisplayName string                `json:"displayName"`
	Role        model.UserRole        `json:"role"`
	ShowAdmin   bool                  `json:"showAdmin"`
	Credits     Credits               `json:"credits"`
	Nodes       []TranslatableNode    `json:"nodes"`
}

type NodeInput struct {
	ID   string `json:"id" binding:"required"`
	Text string `json:"text"`
}

func (s *DashboardService) Credits(used int) Credits {
	limit := int(s.creditLimit.Load())
	if used < 0 {
		used = 0
	}
	available := limit - used
	if available < 0 {
		available = 0
	}
	var percent float64
	switch {
	case limit > 0:
		percent = float64(used*100) / float64(limit)
		if percent > 100 {
			percent = 100
		}
	case used > 0:
		percent = 100
	}
	return Credits{Available: available, Used: used, Limit: limit, Percent: percent}
}

// Shell 角色未解析或解析失败时不显示管理入口
func (s *DashboardService) Shell(session *DashboardSession, theme model.ThemeMode, usedCourses int) DashboardShell {
	lang := session.Language.Current()
	role := session.Roles.Current()
	return DashboardShell{
		Language:    lang,
		Languages:   i18n.Options(lang),
		Theme:       theme,
		Labels:      i18n.Labels(lang),
		DisplayName: session.Identity().DisplayName(),
		Role:        role,
		ShowAdmin:   role.IsPrivileged(),
		Credits:     s.Credits(usedCourses),
		Nodes:       session.Translations.Snapshot(),
	}
}

// RegisterNodes 注册或替换文案并按当前语言重新应用
func (s *DashboardService) RegisterNodes(ctx context.Context, session *DashboardSession, nodes []NodeInput) <-chan struct{} {
	for _, n := range nodes {
		id := strings.TrimSpace(n.ID)
		if id == "" {
			continue
		}
		if !session.Translations.Register(id, n.Text) {
			session.Translations.Rebind(id, n.Text)
		}
	}
	return session.Translations.Apply(ctx, session.Language.Current())
}
