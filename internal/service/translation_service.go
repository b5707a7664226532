package service

import (
	"context"
	"errors"
	"strings"

	"intellistudy_backend/internal/i18n"
	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/util"
	"intellistudy_backend/pkg/logger"
	"intellistudy_backend/pkg/monitoring"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type translationStore interface {
	Get(ctx context.Context, text, target string) (string, bool, error)
	Put(ctx context.Context, text, target, translated string) (string, error)
}

// TranslationCache 以 (原文, 目标语言) 为键的翻译缓存，同一键最多只有一个外部请求在途
type TranslationCache struct {
	store      translationStore
	translator Translator
	source     model.LanguageCode
	group      singleflight.Group
}

func NewTranslationCache(store translationStore, translator Translator) *TranslationCache {
	return &TranslationCache{
		store:      store,
		translator: translator,
		source:     i18n.Default(),
	}
}

func (s *TranslationCache) Translate(ctx context.Context, text string, target model.LanguageCode) (string, error) {
	if target == s.source || strings.TrimSpace(text) == "" {
		monitoring.TranslationRequests.WithLabelValues(monitoring.TranslationPassthrough).Inc()
		return text, nil
	}
	if !i18n.IsSupported(target) {
		return "", util.ErrUnsupportedLanguage
	}

	if v, ok := s.lookup(ctx, text, target); ok {
		monitoring.TranslationRequests.WithLabelValues(monitoring.TranslationCacheHit).Inc()
		return v, nil
	}

	ch := s.group.DoChan(target.String()+"\x00"+text, func() (interface{}, error) {
		// 等待期间可能已有其他请求写入
		if v, ok := s.lookup(ctx, text, target); ok {
			return v, nil
		}

		// 调用方取消不影响在途请求，其他等待者仍需要结果
		translated, err := s.translator.Translate(context.WithoutCancel(ctx), text, s.source, target)
		if err != nil {
			return "", err
		}

		stored, err := s.store.Put(context.WithoutCancel(ctx), text, target.String(), translated)
		if err != nil {
			logger.Log.Error("store translation failed", zap.String("target", target.String()), zap.Error(err))
		}
		return stored, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			monitoring.TranslationRequests.WithLabelValues(monitoring.TranslationFailed).Inc()
			logger.Log.Warn("translation failed",
				zap.String("target", target.String()),
				zap.Int("length", len(text)),
				zap.Error(res.Err))
			return "", res.Err
		}
		monitoring.TranslationRequests.WithLabelValues(monitoring.TranslationFetched).Inc()
		return res.Val.(string), nil
	}
}

// TranslateOrOriginal 失败时返回原文
func (s *TranslationCache) TranslateOrOriginal(ctx context.Context, text string, target model.LanguageCode) string {
	translated, err := s.Translate(ctx, text, target)
	if err != nil {
		if !errors.Is(err, util.ErrUnsupportedLanguage) && !errors.Is(err, context.Canceled) {
			logger.Log.Debug("falling back to original text", zap.Error(err))
		}
		return text
	}
	return translated
}

func (s *TranslationCache) lookup(ctx context.Context, text string, target model.LanguageCode) (string, bool) {
	v, found, err := s.store.Get(ctx, text, target.String())
	if err != nil {
		logger.Log.Warn("translation cache read failed", zap.Error(err))
		return "", false
	}
	return v, found
}
