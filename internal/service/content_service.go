package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhoukk/slidegen/internal/constant"
	"github.com/zhoukk/slidegen/pkg/deck"
	"github.com/zhoukk/slidegen/pkg/logger"
)

// ContentGenerator 是上游生成接口的抽象，*gemini.Client实现了它
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type contentService struct {
	client ContentGenerator
	cache  *ContentCache
}

func NewContentService(client ContentGenerator, cache *ContentCache) ContentService {
	return &contentService{
		client: client,
		cache:  cache,
	}
}

// GenerateSlidesContent 生成结构化的演示文稿内容，带缓存
func (s *contentService) GenerateSlidesContent(ctx context.Context, topic string, numSlides int) (*deck.ContentTree, error) {
	return s.cache.GetOrCreate(ctx, topic, numSlides, s.produce)
}

func (s *contentService) produce(ctx context.Context, topic string, numSlides int) (*deck.ContentTree, error) {
	prompt := buildPrompt(topic, numSlides)

	raw, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		logger.Error("调用生成服务失败", logger.F("topic", topic), logger.F("err", err))
		return nil, constant.ErrGenerationFailed
	}

	tree, err := deck.ParseContentTree([]byte(stripCodeFence(raw)))
	if err != nil {
		logger.Error("解析生成结果失败", logger.F("topic", topic), logger.F("err", err))
		// 记录原始响应便于排查
		logger.Debug("解析失败的原始响应", logger.F("raw", raw))
		return nil, constant.ErrGenerationFailed
	}

	return tree, nil
}

// stripCodeFence 去掉模型偶尔带上的```json围栏
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func buildPrompt(topic string, numSlides int) string {
	return fmt.Sprintf(`Generate a presentation about "%[1]s".
The presentation should have approximately %[2]d slides.

Please provide the output in a single, valid JSON object. Do not include any text, introductory phrases, or markdown formatting like `+"```json"+` before or after the JSON object.
The entire response should be only the JSON content.
VERY IMPORTANT: Ensure the JSON is perfectly formatted. Pay close attention to syntax, especially commas between objects in lists.

IMPORTANT CONTENT RULES:
- Each bullet point or definition should be descriptive and detailed, ideally between 15 and 20 words long.
- You can use markdown for emphasis. Use **double asterisks** for bold and __double underscores__ for underline.
- For bullet points, provide them as a list of strings without any leading characters like '*'.

The JSON object must have a single key "slides", which is a list of slide objects.
Each slide object must have two keys: "layout" and "content".

The "layout" key must be one of the following three strings:
1. "title_slide"
2. "bullet_points"
3. "two_column"

The "content" key must be an object with the following structure based on layout:
- For "title_slide": {"title": "...", "subtitle": "..."}
- For "bullet_points": {"title": "...", "points": ["...", "..."]}
- For "two_column": {"title": "...", "left_column": {"heading": "...", "points": ["...", "..."]}, "right_column": {"heading": "...", "points": ["...", "..."]} }

Also, please include a slide with source citations at the end, using the "bullet_points" layout.

Now, generate the complete JSON for the presentation on "%[1]s".`, topic, numSlides)
}
