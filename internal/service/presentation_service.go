package service

import (
	"context"

	"github.com/zhoukk/slidegen/internal/constant"
	"github.com/zhoukk/slidegen/pkg/deck"
	"github.com/zhoukk/slidegen/pkg/logger"
	"golang.org/x/sync/semaphore"
)

type presentationService struct {
	generator *deck.Generator
	renderSem *semaphore.Weighted // 限制同时进行的渲染数量，避免拖垮请求接入
}

func NewPresentationService(generator *deck.Generator, maxConcurrent int64) PresentationService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &presentationService{
		generator: generator,
		renderSem: semaphore.NewWeighted(maxConcurrent),
	}
}

// CreatePresentation 将内容树渲染为.pptx并写入outputPath。
// 渲染失败时不会在目标路径留下文件
func (s *presentationService) CreatePresentation(ctx context.Context, tree *deck.ContentTree, outputPath string, ratio deck.AspectRatio) error {
	if err := s.renderSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.renderSem.Release(1)

	data, err := s.generator.Generate(tree, ratio)
	if err != nil {
		logger.Error("渲染演示文稿失败", logger.F("outputPath", outputPath), logger.F("err", err))
		return constant.ErrRenderFailed
	}

	if err := s.generator.WriteFile(outputPath, data); err != nil {
		logger.Error("写入演示文稿失败", logger.F("outputPath", outputPath), logger.F("err", err))
		return constant.ErrRenderFailed
	}

	return nil
}
