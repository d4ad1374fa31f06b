package api

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/zhoukk/slidegen/internal/constant"
	"github.com/zhoukk/slidegen/internal/service"
	"github.com/zhoukk/slidegen/pkg/deck"
	"github.com/zhoukk/slidegen/pkg/logger"
	"github.com/zhoukk/slidegen/pkg/util"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type PresentationHandler struct {
	contentService      service.ContentService
	presentationService service.PresentationService
	outputDir           string
}

func RegisterPresentationHandler(
	contentService service.ContentService,
	presentationService service.PresentationService,
	outputDir string,
) {
	handler := &PresentationHandler{
		contentService:      contentService,
		presentationService: presentationService,
		outputDir:           outputDir,
	}
	Handlers = append(Handlers, handler)
}

func (h *PresentationHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/generate", h.Generate)
}

type GenerateRequest struct {
	Topic       string `json:"topic"`
	NumSlides   int    `json:"num_slides"`
	AspectRatio string `json:"aspect_ratio"`
}

// 校验请求参数并填充默认值
func (r *GenerateRequest) normalize() error {
	if r.NumSlides == 0 {
		r.NumSlides = 5
	}
	if r.AspectRatio == "" {
		r.AspectRatio = string(deck.AspectWidescreen)
	}

	topicLen := utf8.RuneCountInString(r.Topic)
	if topicLen < 3 || topicLen > 100 {
		return constant.ErrInvalidParams
	}
	if r.NumSlides < 1 || r.NumSlides > 20 {
		return constant.ErrInvalidParams
	}
	switch deck.AspectRatio(r.AspectRatio) {
	case deck.AspectWidescreen, deck.AspectStandard:
	default:
		return constant.ErrInvalidParams
	}
	return nil
}

// Generate 根据主题生成演示文稿并返回文件
func (h *PresentationHandler) Generate(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("解析请求参数失败", logger.F("err", err))
		return c.Status(fiber.StatusBadRequest).JSON(service.Error(constant.ErrInvalidParams))
	}
	if err := req.normalize(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(service.Error(err))
	}

	taskID := util.NewID()
	logger.Info("收到生成请求",
		logger.F("taskId", taskID),
		logger.F("topic", req.Topic),
		logger.F("numSlides", req.NumSlides),
		logger.F("aspectRatio", req.AspectRatio),
	)

	// 第一步：通过缓存获取结构化内容
	tree, err := h.contentService.GenerateSlidesContent(c.Context(), req.Topic, req.NumSlides)
	if err != nil {
		logger.Error("生成内容失败", logger.F("taskId", taskID), logger.F("err", err))
		return c.Status(constant.GetErrorCode(err)).JSON(service.Error(err))
	}

	// 第二步：渲染.pptx文件
	outputPath := filepath.Join(h.outputDir, uuid.NewString()+".pptx")
	if err := h.presentationService.CreatePresentation(c.Context(), tree, outputPath, deck.AspectRatio(req.AspectRatio)); err != nil {
		logger.Error("创建演示文稿失败", logger.F("taskId", taskID), logger.F("err", err))
		return c.Status(constant.GetErrorCode(err)).JSON(service.Error(err))
	}

	logger.Info("演示文稿生成完成",
		logger.F("taskId", taskID),
		logger.F("outputPath", outputPath),
	)

	// 第三步：返回生成的文件
	downloadName := strings.ReplaceAll(req.Topic, " ", "_") + "_presentation.pptx"
	c.Set(fiber.HeaderContentType, pptxContentType)
	return c.Download(outputPath, downloadName)
}
