package response

import (
	"errors"
	"net/http"
)

// 业务错误码
const (
	// 失败
	Fail ResponseCode = 0
	// 参数解析错误
	ParseError ResponseCode = 1
	// 参数错误
	InvalidParameter ResponseCode = 2
	// 字段校验失败（Fields 中带有逐字段信息）
	ValidationFailed ResponseCode = 3
	// 未认证
	Unauthorized ResponseCode = 401
	// 无权限
	Forbidden ResponseCode = 403
	// 资源不存在
	NotFound ResponseCode = 404
	// 唯一性冲突
	Conflict ResponseCode = 409
	// 请求体过大
	PayloadTooLarge ResponseCode = 413
)

type BusinessError struct {
	Code   ResponseCode
	Msg    string
	Err    error
	Fields map[string][]string
}

func (be *BusinessError) Error() string {
	if be == nil {
		return ""
	}
	if be.Err != nil {
		return be.Msg + ": " + be.Err.Error()
	}
	return be.Msg
}

func (be *BusinessError) Unwrap() error { return be.Err }

// HTTPStatus 业务码对应的 HTTP 状态码
func (be *BusinessError) HTTPStatus() int {
	switch be.Code {
	case ParseError, InvalidParameter, ValidationFailed:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case PayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

// WithFields 附加逐字段的错误信息
func WithFields(fields map[string][]string) ErrorOption {
	return func(be *BusinessError) {
		be.Fields = fields
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// NewValidationError 字段校验错误
func NewValidationError(fields map[string][]string) *BusinessError {
	return NewBusinessError(
		WithErrorCode(ValidationFailed),
		WithErrorMessage("参数校验失败"),
		WithFields(fields),
	)
}

func NewConflictError(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(Conflict), WithErrorMessage(msg))
}

func NewNotFoundError(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(NotFound), WithErrorMessage(msg))
}

func NewForbiddenError(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(Forbidden), WithErrorMessage(msg))
}

// NewInternalError 包装底层存储错误
func NewInternalError(msg string, err error) *BusinessError {
	return NewBusinessError(WithErrorCode(Fail), WithErrorMessage(msg), WithError(err))
}

// CodeOf 取出错误链上的业务码，非业务错误返回 Fail
func CodeOf(err error) ResponseCode {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return Fail
}

// IsCode 判断错误是否为指定业务码
func IsCode(err error, code ResponseCode) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}
