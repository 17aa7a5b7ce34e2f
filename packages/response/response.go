package response

type ResponseCode int

// 统一业务代码
const (
	Success = 100
)

type Response struct {
	Message string              `json:"message"`
	Code    ResponseCode        `json:"code"`
	Data    any                 `json:"data"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func SuccessResponse(data any) Response {
	return Response{
		Message: "success",
		Code:    Success,
		Data:    data,
	}
}

func ErrorResponse(code ResponseCode, msg string) Response {
	return Response{
		Message: msg,
		Code:    code,
		Data:    nil,
	}
}

// FieldErrorResponse 带逐字段错误信息的响应
func FieldErrorResponse(code ResponseCode, msg string, fields map[string][]string) Response {
	resp := ErrorResponse(code, msg)
	resp.Fields = fields
	return resp
}
