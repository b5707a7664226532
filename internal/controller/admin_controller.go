package controller

import (
	"errors"
	"time"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type cacheCounter interface {
	LocalCount() int
}

type RecordQuizResultRequest struct {
	CourseID    string         `json:"courseId"`
	UserID      string         `json:"userId"`
	Score       int            `json:"score"`
	Total       int            `json:"total"`
	Answers     datatypes.JSON `json:"answers" swaggertype:"object"`
	CompletedAt *time.Time     `json:"completedAt"`
}

// RecordedQuizResult 写入的记录以及该用户在此课程的累计作答次数
type RecordedQuizResult struct {
	Result   *model.QuizResult `json:"result"`
	Attempts int64             `json:"attempts"`
}

type AdminStats struct {
	Sessions          int `json:"sessions"`
	CachedTranslation int `json:"cachedTranslations"`
}

type AdminController struct {
	Sessions     *service.SessionManager
	Translations cacheCounter
	QuizService  *service.QuizResultService
}

func NewAdminController(sessions *service.SessionManager, translations cacheCounter, quizService *service.QuizResultService) *AdminController {
	return &AdminController{Sessions: sessions, Translations: translations, QuizService: quizService}
}

// @Summary 运行状态
// @Description 当前内存中的会话数和本地翻译缓存条目数
// @Tags 管理员
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=AdminStats}
// @Failure 403 {object} util.Response
// @Router /admin/stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	util.Success(ctx, AdminStats{
		Sessions:          c.Sessions.Count(),
		CachedTranslation: c.Translations.LocalCount(),
	})
}

// @Summary 录入测验结果
// @Tags 管理员
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordQuizResultRequest true "测验结果"
// @Success 200 {object} util.Response{data=RecordedQuizResult}
// @Failure 400 {object} util.Response
// @Router /admin/quiz-results [post]
func (c *AdminController) RecordQuizResult(ctx *gin.Context) {
	var req RecordQuizResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	result := &model.QuizResult{
		CourseID: req.CourseID,
		UserID:   req.UserID,
		Score:    req.Score,
		Total:    req.Total,
		Answers:  req.Answers,
	}
	if req.CompletedAt != nil {
		result.CompletedAt = *req.CompletedAt
	}

	err := c.QuizService.RecordResult(ctx.Request.Context(), result)
	if errors.Is(err, util.ErrMissingIdentifiers) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	attempts, err := c.QuizService.AttemptCount(ctx.Request.Context(), result.CourseID, result.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, RecordedQuizResult{Result: result, Attempts: attempts})
}
