package user

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/foodgram/internal/dto"
	"terminal-terrace/foodgram/internal/middleware"
)

type UserHandler struct {
	userService *UserService
}

func NewUserHandler(userService *UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Login 获取令牌
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "邮箱与密码"
// @Success 200 {object} response.Response{data=LoginResponse}
// @Router /auth/token/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BindError(c, err)
		return
	}

	resp, err := h.userService.Login(req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// Logout 注销令牌
// @Summary 登出
// @Tags 认证
// @Security BearerAuth
// @Success 204
// @Router /auth/token/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userService.Logout(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		dto.Error(c, err)
		return
	}
	dto.NoContentResponse(c)
}

// Register 注册
// @Summary 注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 201 {object} response.Response{data=dto.UserView}
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BindError(c, err)
		return
	}

	view, err := h.userService.Register(req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.CreatedResponse(c, view)
}

// ListUsers 用户列表
// @Summary 用户列表
// @Tags 用户
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.UserView]}
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := h.userService.ListUsers(
		dto.CurrentPrincipal(c),
		dto.QueryInt(c, "page", 1),
		dto.QueryInt(c, "limit", dto.DefaultPageSize),
	)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, page)
}

// Me 当前用户
// @Summary 当前用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserView}
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	view, err := h.userService.Me(dto.CurrentPrincipal(c).UserID)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, view)
}

// GetUser 用户详情
// @Summary 用户详情
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=dto.UserView}
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	view, err := h.userService.GetUser(dto.CurrentPrincipal(c), id)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, view)
}

// SetPassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Security BearerAuth
// @Param request body SetPasswordRequest true "新旧密码"
// @Success 204
// @Router /users/set_password [post]
func (h *UserHandler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BindError(c, err)
		return
	}

	if err := h.userService.SetPassword(dto.CurrentPrincipal(c).UserID, req); err != nil {
		dto.Error(c, err)
		return
	}
	dto.NoContentResponse(c)
}

// Subscriptions 我的订阅
// @Summary 我的订阅
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param recipes_limit query int false "每位作者返回的菜谱数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.FollowView]}
// @Router /users/subscriptions [get]
func (h *UserHandler) Subscriptions(c *gin.Context) {
	page, err := h.userService.Subscriptions(
		dto.CurrentPrincipal(c).UserID,
		dto.QueryInt(c, "page", 1),
		dto.QueryInt(c, "limit", dto.DefaultPageSize),
		dto.QueryInt(c, "recipes_limit", 0),
	)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, page)
}

// UserSubscriptions 指定用户的订阅
// @Summary 用户的订阅列表
// @Tags 订阅
// @Produce json
// @Param id path int true "用户ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param recipes_limit query int false "每位作者返回的菜谱数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.FollowView]}
// @Failure 404 {object} response.Response
// @Router /users/{id}/subscriptions [get]
func (h *UserHandler) UserSubscriptions(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	page, err := h.userService.SubscriptionsOf(
		dto.CurrentPrincipal(c),
		id,
		dto.QueryInt(c, "page", 1),
		dto.QueryInt(c, "limit", dto.DefaultPageSize),
		dto.QueryInt(c, "recipes_limit", 0),
	)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, page)
}

// Subscribe 关注作者
// @Summary 关注作者
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param id path int true "作者ID"
// @Param recipes_limit query int false "返回的菜谱数量"
// @Success 201 {object} response.Response{data=dto.FollowView}
// @Router /users/{id}/subscribe [post]
func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	view, err := h.userService.Follow(dto.CurrentPrincipal(c).UserID, id, dto.QueryInt(c, "recipes_limit", 0))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.CreatedResponse(c, view)
}

// Unsubscribe 取消关注
// @Summary 取消关注
// @Tags 订阅
// @Security BearerAuth
// @Param id path int true "作者ID"
// @Success 204
// @Router /users/{id}/subscribe [delete]
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Unfollow(dto.CurrentPrincipal(c).UserID, id); err != nil {
		dto.Error(c, err)
		return
	}
	dto.NoContentResponse(c)
}
