package controller

import (
	"intellistudy_backend/internal/i18n"
	"intellistudy_backend/internal/middleware"
	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

type PreferenceResponse struct {
	model.Preference
	Applied bool `json:"applied"`
}

type PreferenceController struct {
	Preferences *service.PreferenceStore
}

func NewPreferenceController(preferences *service.PreferenceStore) *PreferenceController {
	return &PreferenceController{Preferences: preferences}
}

// @Summary 获取显示偏好
// @Tags 偏好
// @Produce json
// @Success 200 {object} util.Response{data=model.Preference}
// @Router /preferences [get]
func (c *PreferenceController) GetPreferences(ctx *gin.Context) {
	session := middleware.CurrentSession(ctx)
	pref := c.Preferences.Load(ctx.Request.Context(), session.ID)
	// 语言以会话当前值为准
	pref.Language = session.Language.Current()
	util.Success(ctx, pref)
}

// @Summary 切换界面语言
// @Description 不支持的语言会被忽略，返回未变化的偏好
// @Tags 偏好
// @Accept json
// @Produce json
// @Param request body LanguageRequest true "语言代码"
// @Success 200 {object} util.Response{data=PreferenceResponse}
// @Failure 400 {object} util.Response
// @Router /preferences/language [put]
func (c *PreferenceController) SetLanguage(ctx *gin.Context) {
	var req LanguageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "language is required")
		return
	}

	session := middleware.CurrentSession(ctx)
	applied := false
	if code, ok := i18n.Parse(req.Language); ok {
		applied = session.Language.SetLanguage(ctx.Request.Context(), code)
	}

	pref := c.Preferences.Load(ctx.Request.Context(), session.ID)
	pref.Language = session.Language.Current()
	util.Success(ctx, PreferenceResponse{Preference: pref, Applied: applied})
}

// @Summary 切换明暗主题
// @Tags 偏好
// @Produce json
// @Success 200 {object} util.Response{data=model.Preference}
// @Router /preferences/theme/toggle [post]
func (c *PreferenceController) ToggleTheme(ctx *gin.Context) {
	session := middleware.CurrentSession(ctx)
	theme := c.Preferences.ToggleTheme(ctx.Request.Context(), session.ID)
	util.Success(ctx, model.Preference{Language: session.Language.Current(), Theme: theme})
}
