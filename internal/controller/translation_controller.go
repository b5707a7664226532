package controller

import (
	"intellistudy_backend/internal/i18n"
	"intellistudy_backend/internal/middleware"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TranslateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type TranslateResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type TranslationController struct {
	Translations *service.TranslationCache
}

func NewTranslationController(translations *service.TranslationCache) *TranslationController {
	return &TranslationController{Translations: translations}
}

// @Summary 翻译文本
// @Description 目标语言为空时使用会话当前语言；翻译失败返回原文
// @Tags 翻译
// @Accept json
// @Produce json
// @Param request body TranslateRequest true "原文和目标语言"
// @Success 200 {object} util.Response{data=TranslateResponse}
// @Failure 400 {object} util.Response
// @Router /translate [post]
func (c *TranslationController) Translate(ctx *gin.Context) {
	var req TranslateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	target := middleware.CurrentSession(ctx).Language.Current()
	if req.Target != "" {
		code, ok := i18n.Parse(req.Target)
		if !ok {
			util.BadRequest(ctx, util.ErrUnsupportedLanguage.Error())
			return
		}
		target = code
	}

	text := c.Translations.TranslateOrOriginal(ctx.Request.Context(), req.Text, target)
	util.Success(ctx, TranslateResponse{Text: text, Language: target.String()})
}
