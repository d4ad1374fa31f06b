package constant

import (
	"errors"
	"net/http"
)

// 自定义错误
var (
	// 通用错误
	ErrInternalError    = errors.New("内部错误")
	ErrInvalidParams    = errors.New("参数错误")
	ErrTooManyRequests  = errors.New("请求过于频繁")
	ErrSerializeError   = errors.New("序列化错误")
	ErrDeserializeError = errors.New("反序列化错误")

	// 生成相关错误
	ErrGenerationFailed = errors.New("内容生成失败")
	ErrRenderFailed     = errors.New("演示文稿渲染失败")
)

// 获取错误对应的HTTP状态码
func GetErrorCode(err error) int {
	switch err {
	// 通用错误
	case ErrInternalError:
		return http.StatusInternalServerError
	case ErrInvalidParams:
		return http.StatusBadRequest
	case ErrTooManyRequests:
		return http.StatusTooManyRequests
	case ErrSerializeError:
		return http.StatusInternalServerError
	case ErrDeserializeError:
		return http.StatusInternalServerError

	// 生成相关错误
	case ErrGenerationFailed:
		return http.StatusInternalServerError
	case ErrRenderFailed:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}
