package service

import (
	"context"
	"encoding/json"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

const TopicPreferencesChanged = "preferences.changed"

type PreferenceChangedEvent struct {
	SessionID string             `json:"sessionId"`
	Language  model.LanguageCode `json:"language,omitempty"`
	Theme     model.ThemeMode    `json:"theme,omitempty"`
}

func NewPubSub() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NopLogger{})
}

// PreferenceEvents 偏好变更事件，发布失败只记录日志
type PreferenceEvents struct {
	publisher message.Publisher
}

func NewPreferenceEvents(publisher message.Publisher) *PreferenceEvents {
	return &PreferenceEvents{publisher: publisher}
}

func (e *PreferenceEvents) Publish(evt PreferenceChangedEvent) {
	if e == nil || e.publisher == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Warn("marshal preference event failed", zap.Error(err))
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := e.publisher.Publish(TopicPreferencesChanged, msg); err != nil {
		logger.Log.Warn("publish preference event failed", zap.String("session", evt.SessionID), zap.Error(err))
	}
}

// SessionIdentityLookup 根据会话找到当前登录用户的邮箱
type SessionIdentityLookup interface {
	IdentityEmail(sessionID string) string
}

type languageUpdater interface {
	UpdateLanguage(ctx context.Context, email, language string) (int64, error)
}

// ProfileSyncService 把会话中的语言选择同步到用户资料
type ProfileSyncService struct {
	subscriber message.Subscriber
	users      languageUpdater
	sessions   SessionIdentityLookup
}

func NewProfileSyncService(subscriber message.Subscriber, users languageUpdater, sessions SessionIdentityLookup) *ProfileSyncService {
	return &ProfileSyncService{subscriber: subscriber, users: users, sessions: sessions}
}

func (s *ProfileSyncService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, TopicPreferencesChanged)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *ProfileSyncService) processMessage(ctx context.Context, msg *message.Message) {
	// 无论成功与否都 Ack，偏好同步不重试
	defer msg.Ack()

	var evt PreferenceChangedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		logger.Log.Warn("invalid preference event", zap.Error(err))
		return
	}
	if evt.Language == "" || s.sessions == nil {
		return
	}

	email := s.sessions.IdentityEmail(evt.SessionID)
	if email == "" {
		return
	}

	if _, err := s.users.UpdateLanguage(ctx, email, evt.Language.String()); err != nil {
		logger.Log.Error("sync profile language failed", zap.String("email", email), zap.Error(err))
	}
}
