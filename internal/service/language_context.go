package service

import (
	"context"
	"sync"

	"intellistudy_backend/internal/i18n"
	"intellistudy_backend/internal/model"
)

// LanguageListener 收到语言变化通知，按订阅顺序同步调用
type LanguageListener func(previous, current model.LanguageCode)

type languageWriter interface {
	SaveLanguage(ctx context.Context, sessionID string, code model.LanguageCode)
}

type subscription struct {
	id uint64
	fn LanguageListener
}

// LanguageContext 会话级的当前显示语言
type LanguageContext struct {
	sessionID string
	writer    languageWriter

	setMu sync.Mutex

	mu          sync.RWMutex
	current     model.LanguageCode
	subscribers []subscription
	nextID      uint64
}

func NewLanguageContext(sessionID string, initial model.LanguageCode, writer languageWriter) *LanguageContext {
	if !i18n.IsSupported(initial) {
		initial = i18n.Default()
	}
	return &LanguageContext{
		sessionID: sessionID,
		writer:    writer,
		current:   initial,
	}
}

func (l *LanguageContext) Current() model.LanguageCode {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// SetLanguage 不支持的语言静默忽略并返回 false。
// 顺序固定：先持久化，再更新当前值，最后通知订阅者。
func (l *LanguageContext) SetLanguage(ctx context.Context, code model.LanguageCode) bool {
	if !i18n.IsSupported(code) {
		return false
	}

	l.setMu.Lock()
	defer l.setMu.Unlock()

	previous := l.Current()
	if previous == code {
		return true
	}

	if l.writer != nil {
		l.writer.SaveLanguage(ctx, l.sessionID, code)
	}

	l.mu.Lock()
	l.current = code
	subscribers := make([]subscription, len(l.subscribers))
	copy(subscribers, l.subscribers)
	l.mu.Unlock()

	for _, s := range subscribers {
		s.fn(previous, code)
	}
	return true
}

// Subscribe 返回取消订阅函数
func (l *LanguageContext) Subscribe(fn LanguageListener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.subscribers = append(l.subscribers, subscription{id: id, fn: fn})

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.subscribers {
			if s.id == id {
				l.subscribers = append(l.subscribers[:i:i], l.subscribers[i+1:]...)
				return
			}
		}
	}
}
