package service

import (
	"context"
	"time"

	"intellistudy_backend/internal/i18n"
	"intellistudy_backend/internal/model"
	"intellistudy_backend/pkg/logger"

	"go.uber.org/zap"
)

const preferenceWriteTimeout = 2 * time.Second

type preferenceRepository interface {
	Get(ctx context.Context, sessionID string) (language, theme string, err error)
	SetLanguage(ctx context.Context, sessionID, language string) error
	SetTheme(ctx context.Context, sessionID, theme string) error
}

// PreferenceStore 会话级偏好，读失败回退默认值，写入尽力而为
type PreferenceStore struct {
	repo   preferenceRepository
	events *PreferenceEvents
}

func NewPreferenceStore(repo preferenceRepository, events *PreferenceEvents) *PreferenceStore {
	return &PreferenceStore{repo: repo, events: events}
}

func (s *PreferenceStore) Load(ctx context.Context, sessionID string) model.Preference {
	pref := model.DefaultPreference()

	language, theme, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		logger.Log.Warn("load preference failed, using defaults", zap.String("session", sessionID), zap.Error(err))
		return pref
	}

	if code := model.LanguageCode(language); i18n.IsSupported(code) {
		pref.Language = code
	}
	if mode := model.ThemeMode(theme); mode.Valid() {
		pref.Theme = mode
	}
	return pref
}

func (s *PreferenceStore) SaveLanguage(ctx context.Context, sessionID string, code model.LanguageCode) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), preferenceWriteTimeout)
	defer cancel()

	if err := s.repo.SetLanguage(ctx, sessionID, code.String()); err != nil {
		logger.Log.Warn("persist language failed", zap.String("session", sessionID), zap.Error(err))
		return
	}
	s.events.Publish(PreferenceChangedEvent{SessionID: sessionID, Language: code})
}

func (s *PreferenceStore) SaveTheme(ctx context.Context, sessionID string, theme model.ThemeMode) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), preferenceWriteTimeout)
	defer cancel()

	if err := s.repo.SetTheme(ctx, sessionID, string(theme)); err != nil {
		logger.Log.Warn("persist theme failed", zap.String("session", sessionID), zap.Error(err))
		return
	}
	s.events.Publish(PreferenceChangedEvent{SessionID: sessionID, Theme: theme})
}

func (s *PreferenceStore) ToggleTheme(ctx context.Context, sessionID string) model.ThemeMode {
	next := s.Load(ctx, sessionID).Theme.Toggle()
	s.SaveTheme(ctx, sessionID, next)
	return next
}
