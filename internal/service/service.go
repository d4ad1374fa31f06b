package service

import (
	"context"
	"net/http"

	"github.com/zhoukk/slidegen/internal/constant"
	"github.com/zhoukk/slidegen/pkg/deck"
)

type ContentService interface {
	GenerateSlidesContent(ctx context.Context, topic string, numSlides int) (*deck.ContentTree, error)
}

type PresentationService interface {
	CreatePresentation(ctx context.Context, tree *deck.ContentTree, outputPath string, ratio deck.AspectRatio) error
}

// /////////////////////////////
// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func OK(data interface{}) *Response {
	return NewResponse(data, nil)
}

func Error(err error) *Response {
	return NewResponse(nil, err)
}

// NewResponse 创建响应
func NewResponse(data interface{}, err error) *Response {
	if err == nil {
		return &Response{
			Code:    http.StatusOK,
			Message: "success",
			Data:    data,
		}
	}

	code := constant.GetErrorCode(err)
	return &Response{
		Code:    code,
		Message: err.Error(),
		Data:    data,
	}
}
