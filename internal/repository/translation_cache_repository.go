package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
)

const translationKeyPrefix = "translation:"

// 翻译结果写入后不可变，两级缓存都不设置过期
func translationKey(text, target string) string {
	sum := sha256.Sum256([]byte(text))
	return translationKeyPrefix + target + ":" + hex.EncodeToString(sum[:])
}

// TranslationCacheRepository 进程内 go-cache 在前，redis 在后
type TranslationCacheRepository struct {
	local *cache.Cache
	Redis *redis.Client
}

func NewTranslationCacheRepository(rdb *redis.Client) *TranslationCacheRepository {
	return &TranslationCacheRepository{
		local: cache.New(cache.NoExpiration, 10*time.Minute),
		Redis: rdb,
	}
}

func (r *TranslationCacheRepository) Get(ctx context.Context, text, target string) (string, bool, error) {
	key := translationKey(text, target)
	if v, found := r.local.Get(key); found {
		return v.(string), true, nil
	}
	if r.Redis == nil {
		return "", false, nil
	}

	v, err := r.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	// 提升到本地缓存
	_ = r.local.Add(key, v, cache.NoExpiration)
	return v, true, nil
}

// Put 只在键不存在时写入，返回最终生效的译文。
// redis 写入失败时仍写入本地缓存，错误只用于记录日志。
func (r *TranslationCacheRepository) Put(ctx context.Context, text, target, translated string) (string, error) {
	key := translationKey(text, target)
	stored := translated

	var redisErr error
	if r.Redis != nil {
		ok, err := r.Redis.SetNX(ctx, key, translated, 0).Result()
		switch {
		case err != nil:
			redisErr = err
		case !ok:
			if existing, err := r.Redis.Get(ctx, key).Result(); err == nil {
				stored = existing
			}
		}
	}

	if err := r.local.Add(key, stored, cache.NoExpiration); err != nil {
		if v, found := r.local.Get(key); found {
			stored = v.(string)
		}
	}
	return stored, redisErr
}

func (r *TranslationCacheRepository) LocalCount() int {
	return r.local.ItemCount()
}
