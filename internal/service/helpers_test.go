package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var errUnavailable = errors.New("translation service unavailable")

// fakeTranslator 记录调用次数，可以按语言模拟失败或阻塞
type fakeTranslator struct {
	mu     sync.Mutex
	calls  int
	inputs []string
	fail   map[model.LanguageCode]bool
	gate   chan struct{}
}

func (f *fakeTranslator) Translate(_ context.Context, text string, _, target model.LanguageCode) (string, error) {
	f.mu.Lock()
	f.calls++
	f.inputs = append(f.inputs, text)
	fail := f.fail[target]
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if fail {
		return "", errUnavailable
	}
	return "[" + target.String() + "] " + text, nil
}

func (f *fakeTranslator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeTranslator) Inputs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.inputs...)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func newLocalCache(translator Translator) *TranslationCache {
	return NewTranslationCache(repository.NewTranslationCacheRepository(nil), translator)
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for translations to settle")
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.QuizResult{}))
	return db
}
