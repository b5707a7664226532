package repository

import (
	"context"

	"github.com/go-redis/redis/v8"
)

const preferenceKeyPrefix = "pref:"

// 每个浏览器会话两个标量键
func preferenceLanguageKey(sessionID string) string {
	return preferenceKeyPrefix + sessionID + ":language"
}

func preferenceThemeKey(sessionID string) string {
	return preferenceKeyPrefix + sessionID + ":theme"
}

type PreferenceRepository struct {
	Redis *redis.Client
}

func NewPreferenceRepository(rdb *redis.Client) *PreferenceRepository {
	return &PreferenceRepository{Redis: rdb}
}

// Get 返回原始值，键不存在时为空字符串
func (r *PreferenceRepository) Get(ctx context.Context, sessionID string) (language, theme string, err error) {
	vals, err := r.Redis.MGet(ctx, preferenceLanguageKey(sessionID), preferenceThemeKey(sessionID)).Result()
	if err != nil {
		return "", "", err
	}
	if s, ok := vals[0].(string); ok {
		language = s
	}
	if s, ok := vals[1].(string); ok {
		theme = s
	}
	return language, theme, nil
}

// 偏好只覆盖不删除，不设置过期时间
func (r *PreferenceRepository) SetLanguage(ctx context.Context, sessionID, language string) error {
	return r.Redis.Set(ctx, preferenceLanguageKey(sessionID), language, 0).Err()
}

func (r *PreferenceRepository) SetTheme(ctx context.Context, sessionID, theme string) error {
	return r.Redis.Set(ctx, preferenceThemeKey(sessionID), theme, 0).Err()
}
