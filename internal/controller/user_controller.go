package controller

import (
	"errors"
	"net/http"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/internal/util"
	"intellistudy_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserRoleRequest struct {
	Email string `json:"email"`
}

type UserRoleResponse struct {
	Role model.UserRole `json:"role"`
}

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary 查询用户角色
// @Description 根据邮箱返回角色，未登记的邮箱视为普通用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body UserRoleRequest true "邮箱"
// @Success 200 {object} UserRoleResponse
// @Failure 400 {object} util.ErrorBody
// @Failure 500 {object} util.ErrorBody
// @Router /get-user-role [post]
func (c *UserController) GetUserRole(ctx *gin.Context) {
	var req UserRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.JSONError(ctx, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	role, err := c.UserService.RoleForEmail(ctx.Request.Context(), req.Email)
	if errors.Is(err, util.ErrMissingEmail) {
		util.JSONError(ctx, http.StatusBadRequest, "Email is required", nil)
		return
	}
	if err != nil {
		logger.Log.Error("lookup user role failed", zap.Error(err))
		util.JSONError(ctx, http.StatusInternalServerError, "Failed to fetch user role", err)
		return
	}

	ctx.JSON(http.StatusOK, UserRoleResponse{Role: role})
}
