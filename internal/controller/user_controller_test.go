package controller

import (
	"context"
	"net/http"
	"testing"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/repository"
	"intellistudy_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	require.NoError(t, users.Create(context.Background(), &model.User{Email: "meta@example.com", Role: model.MetaAdmin}))

	r := gin.New()
	r.POST("/api/get-user-role", NewUserController(service.NewUserService(users)).GetUserRole)

	w := doJSON(t, r, http.MethodPost, "/api/get-user-role", map[string]string{"email": "meta@example.com"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"metaadmin"}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/get-user-role", map[string]string{"email": "new@example.com"}, nil)
	assert.JSONEq(t, `{"role":"user"}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/get-user-role", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email is required"}`, w.Body.String())
}
