package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"intellistudy_backend/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.QuizResult{}))
	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestQuizResultRepositoryFindLatest(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizResultRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{base, base.Add(5 * time.Minute), base.Add(-10 * time.Minute)} {
		require.NoError(t, repo.Create(ctx, &model.QuizResult{
			CourseID: "course-1", UserID: "user-1", Score: at.Minute(), Total: 60, CompletedAt: at,
		}))
	}
	// 其他用户、其他课程的记录不能混入
	require.NoError(t, repo.Create(ctx, &model.QuizResult{
		CourseID: "course-1", UserID: "user-2", Score: 1, Total: 1, CompletedAt: base.Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &model.QuizResult{
		CourseID: "course-2", UserID: "user-1", Score: 1, Total: 1, CompletedAt: base.Add(time.Hour),
	}))

	latest, err := repo.FindLatest(ctx, "course-1", "user-1")
	require.NoError(t, err)
	assert.True(t, latest.CompletedAt.Equal(base.Add(5*time.Minute)))
	assert.Equal(t, 5, latest.Score)

	count, err := repo.CountByCourseAndUser(ctx, "course-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = repo.FindLatest(ctx, "course-9", "user-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestQuizResultRepositoryTieBreaksOnID(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizResultRepository(db)
	ctx := context.Background()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	first := &model.QuizResult{CourseID: "c", UserID: "u", Score: 1, Total: 2, CompletedAt: at}
	second := &model.QuizResult{CourseID: "c", UserID: "u", Score: 2, Total: 2, CompletedAt: at}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	latest, err := repo.FindLatest(ctx, "c", "u")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Email: " Admin@Example.com ", FullName: "Ada", Role: model.Admin}))

	user, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.Admin, user.Role)
	assert.Equal(t, "en", user.Language)

	rows, err := repo.UpdateLanguage(ctx, "ADMIN@example.com", "ta")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	user, err = repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ta", user.Language)

	rows, err = repo.UpdateLanguage(ctx, "nobody@example.com", "ta")
	require.NoError(t, err)
	assert.Zero(t, rows)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPreferenceRepository(t *testing.T) {
	mr, rdb := newTestRedis(t)
	repo := NewPreferenceRepository(rdb)
	ctx := context.Background()

	lang, theme, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, lang)
	assert.Empty(t, theme)

	require.NoError(t, repo.SetLanguage(ctx, "s1", "ml"))
	require.NoError(t, repo.SetTheme(ctx, "s1", "dark"))

	lang, theme, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "ml", lang)
	assert.Equal(t, "dark", theme)

	// 不设置过期时间
	assert.Zero(t, mr.TTL("pref:s1:language"))
	assert.True(t, mr.Exists("pref:s1:theme"))
}

func TestTranslationCacheRepositoryWriteOnce(t *testing.T) {
	_, rdb := newTestRedis(t)
	repo := NewTranslationCacheRepository(rdb)
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "Welcome back", "ta")
	require.NoError(t, err)
	assert.False(t, found)

	stored, err := repo.Put(ctx, "Welcome back", "ta", "first")
	require.NoError(t, err)
	assert.Equal(t, "first", stored)

	stored, err = repo.Put(ctx, "Welcome back", "ta", "second")
	require.NoError(t, err)
	assert.Equal(t, "first", stored)

	v, found, err := repo.Get(ctx, "Welcome back", "ta")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, repo.LocalCount())
}

func TestTranslationCacheRepositorySharedThroughRedis(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()

	writer := NewTranslationCacheRepository(rdb)
	_, err := writer.Put(ctx, "Enjoy your learning journey!", "ml", "translated")
	require.NoError(t, err)

	// 另一个进程只有 redis 中的数据
	reader := NewTranslationCacheRepository(rdb)
	assert.Equal(t, 0, reader.LocalCount())
	v, found, err := reader.Get(ctx, "Enjoy your learning journey!", "ml")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "translated", v)
	assert.Equal(t, 1, reader.LocalCount())

	// 同一原文的其他语言互不影响
	_, found, err = reader.Get(ctx, "Enjoy your learning journey!", "ta")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTranslationCacheRepositoryWithoutRedis(t *testing.T) {
	repo := NewTranslationCacheRepository(nil)
	ctx := context.Background()

	stored, err := repo.Put(ctx, "a", "ta", "x")
	require.NoError(t, err)
	assert.Equal(t, "x", stored)

	v, found, err := repo.Get(ctx, "a", "ta")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x", v)
}

func TestSessionRepository(t *testing.T) {
	evicted := make(chan string, 1)
	repo := NewSessionRepository[*model.Preference](time.Hour, func(id string, _ *model.Preference) {
		evicted <- id
	})

	pref := model.DefaultPreference()
	repo.Save("a", &pref)

	got, ok := repo.Get("a")
	require.True(t, ok)
	assert.Equal(t, model.LanguageEnglish, got.Language)
	assert.Equal(t, 1, repo.Count())

	_, ok = repo.Get("missing")
	assert.False(t, ok)

	repo.Delete("a")
	assert.Equal(t, "a", <-evicted)
	assert.Equal(t, 0, repo.Count())
}

func TestTranslationCacheRepositoryKeepsLocalCopyWhenRedisDown(t *testing.T) {
	mr, rdb := newTestRedis(t)
	repo := NewTranslationCacheRepository(rdb)
	ctx := context.Background()
	mr.Close()

	stored, err := repo.Put(ctx, "Welcome back", "ta", "வணக்கம்")
	assert.Error(t, err)
	assert.Equal(t, "வணக்கம்", stored)

	got, found, err := repo.Get(ctx, "Welcome back", "ta")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "வணக்கம்", got)
}
