package controller

import (
	"strconv"

	"intellistudy_backend/internal/middleware"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RegisterNodesRequest struct {
	Nodes []service.NodeInput `json:"nodes" binding:"required,dive"`
}

type DashboardController struct {
	DashboardService *service.DashboardService
	Preferences      *service.PreferenceStore
}

func NewDashboardController(dashboardService *service.DashboardService, preferences *service.PreferenceStore) *DashboardController {
	return &DashboardController{DashboardService: dashboardService, Preferences: preferences}
}

// @Summary 获取仪表盘框架数据
// @Description 侧边栏文案、语言选项、额度和管理入口，未登录时显示 Guest
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param totalCourses query int false "已创建课程数"
// @Success 200 {object} util.Response{data=service.DashboardShell}
// @Router /dashboard/shell [get]
func (c *DashboardController) GetShell(ctx *gin.Context) {
	used, err := strconv.Atoi(ctx.DefaultQuery("totalCourses", "0"))
	if err != nil || used < 0 {
		util.BadRequest(ctx, "totalCourses must be a non-negative integer")
		return
	}

	session := middleware.CurrentSession(ctx)
	theme := c.Preferences.Load(ctx.Request.Context(), session.ID).Theme
	util.Success(ctx, c.DashboardService.Shell(session, theme, used))
}

// @Summary 获取文案节点
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} util.Response{data=[]service.TranslatableNode}
// @Router /dashboard/nodes [get]
func (c *DashboardController) GetNodes(ctx *gin.Context) {
	session := middleware.CurrentSession(ctx)
	util.Success(ctx, session.Translations.Snapshot())
}

// @Summary 注册文案节点
// @Description 注册后按当前语言在后台翻译，wait=true 时等待本次翻译完成
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Param request body RegisterNodesRequest true "节点列表"
// @Param wait query bool false "等待翻译完成"
// @Success 200 {object} util.Response{data=[]service.TranslatableNode}
// @Failure 400 {object} util.Response
// @Router /dashboard/nodes [post]
func (c *DashboardController) RegisterNodes(ctx *gin.Context) {
	var req RegisterNodesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session := middleware.CurrentSession(ctx)
	done := c.DashboardService.RegisterNodes(ctx.Request.Context(), session, req.Nodes)

	if wait, _ := strconv.ParseBool(ctx.Query("wait")); wait {
		select {
		case <-done:
		case <-ctx.Request.Context().Done():
		}
	}
	util.Success(ctx, session.Translations.Snapshot())
}
