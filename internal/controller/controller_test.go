package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"intellistudy_backend/internal/config"
	"intellistudy_backend/internal/middleware"
	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/repository"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "controller-test-secret-controller-test"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ctl_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.QuizResult{}))
	return db
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type staticTranslator struct{}

func (staticTranslator) Translate(_ context.Context, text string, _, target model.LanguageCode) (string, error) {
	return "[" + target.String() + "] " + text, nil
}

type staticRoles map[string]model.UserRole

func (s staticRoles) LookupRole(_ context.Context, email string) (model.UserRole, error) {
	if role, ok := s[email]; ok {
		return role, nil
	}
	return model.Member, nil
}

type sessionFixture struct {
	router   *gin.Engine
	sessions *service.SessionManager
	quiz     *service.QuizResultService
}

func newSessionRouter(t *testing.T) *sessionFixture {
	t.Helper()
	return newSessionRouterWithRoles(t, staticRoles{"admin@example.com": model.Admin})
}

func newSessionRouterWithRoles(t *testing.T, roles service.RoleLookup) *sessionFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	prefs := service.NewPreferenceStore(repository.NewPreferenceRepository(rdb), nil)
	cacheRepo := repository.NewTranslationCacheRepository(rdb)
	translations := service.NewTranslationCache(cacheRepo, staticTranslator{})
	sessions := service.NewSessionManager(time.Hour, prefs, translations, roles, 4)
	quiz := service.NewQuizResultService(repository.NewQuizResultRepository(newTestDB(t)), time.Second)
	dashboard := service.NewDashboardService(5)

	sessionCfg := config.SessionConfig{CookieName: "is_session", TTLHours: 1}

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.IdentityMiddleware(testSecret), middleware.SessionMiddleware(sessionCfg, sessions))

	pc := NewPreferenceController(prefs)
	api.GET("/preferences", pc.GetPreferences)
	api.PUT("/preferences/language", pc.SetLanguage)
	api.POST("/preferences/theme/toggle", pc.ToggleTheme)

	dc := NewDashboardController(dashboard, prefs)
	api.GET("/dashboard/shell", dc.GetShell)
	api.GET("/dashboard/nodes", dc.GetNodes)
	api.POST("/dashboard/nodes", dc.RegisterNodes)

	api.POST("/translate", NewTranslationController(translations).Translate)

	ac := NewAdminController(sessions, cacheRepo, quiz)
	admin := api.Group("/admin", middleware.RequirePrivileged())
	admin.GET("/stats", ac.GetStats)
	admin.POST("/quiz-results", ac.RecordQuizResult)

	return &sessionFixture{router: r, sessions: sessions, quiz: quiz}
}

func sessionHeader(id string) http.Header {
	return http.Header{"Cookie": []string{"is_session=" + id}}
}

func bearer(t *testing.T, header http.Header, email, name string) http.Header {
	t.Helper()
	token, err := util.GenerateJWT(email, name, testSecret, time.Hour)
	require.NoError(t, err)
	out := header.Clone()
	out.Set("Authorization", "Bearer "+token)
	return out
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}
