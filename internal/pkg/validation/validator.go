// Package validation 基于 validator/v10 的请求校验, 错误信息以 JSON 字段名为键
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRegex     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Validator 封装 validator.Validate
type Validator struct {
	v *validator.Validate
}

// New 创建使用 JSON 字段名、并注册了业务规则的校验器
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("hexcolor_short", func(fl validator.FieldLevel) bool {
		return hexColorRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct 校验结构体, 返回 字段 -> 错误信息列表; 校验通过时返回 nil
func (v *Validator) Struct(s any) map[string][]string {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string][]string{"non_field_errors": {err.Error()}}
	}

	fields := make(map[string][]string)
	for _, fe := range validationErrs {
		fields[fe.Field()] = append(fields[fe.Field()], Message(fe))
	}
	return fields
}

// Message 将单个字段错误转换为可读信息
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "该字段是必填项"
	case "max":
		return fmt.Sprintf("长度不能超过 %s", fe.Param())
	case "min":
		return fmt.Sprintf("不能小于 %s", fe.Param())
	case "gte":
		return fmt.Sprintf("必须大于等于 %s", fe.Param())
	case "email":
		return "邮箱格式不正确"
	case "oneof":
		return fmt.Sprintf("必须是以下值之一: %s", fe.Param())
	case "hexcolor_short":
		return "颜色必须是 HEX 格式, 如 #E26C2D"
	case "username":
		return "用户名只能包含字母、数字和 .@+-_"
	case "slug":
		return "slug 只能包含字母、数字、- 和 _"
	default:
		return fmt.Sprintf("校验失败: %s", fe.Tag())
	}
}

// Merge 合并两组字段错误, 返回的 map 为空时表示无错误
func Merge(dst map[string][]string, src map[string][]string) map[string][]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string][]string, len(src))
	}
	for field, msgs := range src {
		dst[field] = append(dst[field], msgs...)
	}
	return dst
}
