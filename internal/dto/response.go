package dto

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	res "terminal-terrace/foodgram/packages/response"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

// CreatedResponse 创建成功
func CreatedResponse(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, res.SuccessResponse(data))
}

// NoContentResponse 删除成功, 无响应体
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	if err.Code == res.Fail && err.Err != nil {
		zap.S().Errorw(err.Msg, "error", err.Err, "path", c.FullPath())
	}
	if len(err.Fields) > 0 {
		c.JSON(err.HTTPStatus(), res.FieldErrorResponse(err.Code, err.Msg, err.Fields))
		return
	}
	c.JSON(err.HTTPStatus(), res.ErrorResponse(err.Code, err.Msg))
}

// Error 将任意错误写入响应, 非业务错误视为内部错误
func Error(c *gin.Context, err error) {
	var be *res.BusinessError
	if errors.As(err, &be) {
		ErrorResponse(c, be)
		return
	}
	ErrorResponse(c, res.NewInternalError("服务器内部错误", err))
}

// BindError 请求体解析失败
func BindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.PayloadTooLarge),
			res.WithErrorMessage(fmt.Sprintf("请求体超过 %d 字节", tooLarge.Limit)),
		))
		return
	}
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("参数错误: "+err.Error()),
	))
}

// ParseID 解析路径参数中的 ID
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage("无效的ID"),
		))
		return 0, false
	}
	return uint(id), true
}

// QueryInt 读取整数查询参数, 缺失或非法时返回默认值
func QueryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// QueryBool 读取 0/1/true/false 形式的查询参数
func QueryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

// Principal 当前请求的用户, 由认证中间件写入上下文
type Principal struct {
	UserID uint
	Role   string
}

// IsAuthenticated 是否已登录
func (p Principal) IsAuthenticated() bool {
	return p.UserID != 0
}

// IsAdmin 是否管理员
func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

// CurrentPrincipal 从上下文读取用户信息, 匿名访问时返回零值
func CurrentPrincipal(c *gin.Context) Principal {
	var p Principal
	if userID, ok := c.Get("user_id"); ok {
		p.UserID, _ = userID.(uint)
	}
	if role, ok := c.Get("user_role"); ok {
		p.Role, _ = role.(string)
	}
	return p
}
