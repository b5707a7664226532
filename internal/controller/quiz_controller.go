package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/internal/util"
	"intellistudy_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// flexibleID 兼容前端传字符串或数字
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

type QuizResultRequest struct {
	CourseID flexibleID `json:"courseId" swaggertype:"string"`
	UserID   flexibleID `json:"userId" swaggertype:"string"`
}

type QuizResultResponse struct {
	Result *model.QuizResult `json:"result"`
}

type QuizController struct {
	QuizService *service.QuizResultService
}

func NewQuizController(quizService *service.QuizResultService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary 获取最近一次测验结果
// @Description 按完成时间取指定课程、指定用户最近的一次作答，没有作答时 result 为 null
// @Tags 测验
// @Accept json
// @Produce json
// @Param request body QuizResultRequest true "课程ID和用户ID"
// @Success 200 {object} QuizResultResponse
// @Failure 400 {object} util.ErrorBody
// @Failure 500 {object} util.ErrorBody
// @Router /quiz/get-result [post]
func (c *QuizController) GetResult(ctx *gin.Context) {
	var req QuizResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.JSONError(ctx, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := c.QuizService.GetLatestResult(ctx.Request.Context(), string(req.CourseID), string(req.UserID))
	if errors.Is(err, util.ErrMissingIdentifiers) {
		util.JSONError(ctx, http.StatusBadRequest, "Course ID and User ID are required", nil)
		return
	}
	if err != nil {
		logger.Log.Error("fetch quiz result failed",
			zap.String("courseId", string(req.CourseID)),
			zap.String("userId", string(req.UserID)),
			zap.Error(err))
		util.JSONError(ctx, http.StatusInternalServerError, "Failed to fetch quiz result", err)
		return
	}

	ctx.JSON(http.StatusOK, QuizResultResponse{Result: result})
}
