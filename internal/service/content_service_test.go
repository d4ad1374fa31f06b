package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhoukk/slidegen/internal/constant"
	"github.com/zhoukk/slidegen/pkg/deck"
)

type fakeGenerator struct {
	calls     int
	responses []string
	err       error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func TestGenerateSlidesContentParsesFencedResponse(t *testing.T) {
	// 模型输出常带```json围栏
	fake := &fakeGenerator{responses: []string{"```json\n" + `{
		"slides": [
			{"layout": "title_slide", "content": {"title": "Rome", "subtitle": "A short history"}},
			{"layout": "bullet_points", "content": {"title": "Founding", "points": ["Romulus", "Remus"]}}
		]
	}` + "\n```"}}
	svc := NewContentService(fake, NewContentCache(10))

	tree, err := svc.GenerateSlidesContent(context.Background(), "Rome", 2)
	require.NoError(t, err)
	require.Len(t, tree.Slides, 2)
	assert.Equal(t, deck.LayoutTitleSlide, tree.Slides[0].Layout)
	require.NotNil(t, tree.Slides[0].Content.Title)
	assert.Equal(t, "Rome", *tree.Slides[0].Content.Title)
	assert.Equal(t, []string{"Romulus", "Remus"}, tree.Slides[1].Content.Points)
}

func TestGenerateSlidesContentUsesCache(t *testing.T) {
	fake := &fakeGenerator{responses: []string{`{"slides": [{"layout": "title_slide", "content": {"title": "T"}}]}`}}
	svc := NewContentService(fake, NewContentCache(10))

	_, err := svc.GenerateSlidesContent(context.Background(), "Rome", 5)
	require.NoError(t, err)
	_, err = svc.GenerateSlidesContent(context.Background(), "rome", 5)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.calls)
}

func TestGenerateSlidesContentClientError(t *testing.T) {
	fake := &fakeGenerator{err: errors.New("connection refused")}
	svc := NewContentService(fake, NewContentCache(10))

	_, err := svc.GenerateSlidesContent(context.Background(), "Rome", 5)
	assert.ErrorIs(t, err, constant.ErrGenerationFailed)
}

func TestGenerateSlidesContentInvalidJSONNotCached(t *testing.T) {
	// 第一次返回坏JSON，失败不入缓存，第二次重试成功
	fake := &fakeGenerator{responses: []string{
		`this is not json`,
		`{"slides": [{"layout": "title_slide", "content": {"title": "T"}}]}`,
	}}
	svc := NewContentService(fake, NewContentCache(10))

	_, err := svc.GenerateSlidesContent(context.Background(), "Rome", 5)
	assert.ErrorIs(t, err, constant.ErrGenerationFailed)

	tree, err := svc.GenerateSlidesContent(context.Background(), "Rome", 5)
	require.NoError(t, err)
	assert.Len(t, tree.Slides, 1)
	assert.Equal(t, 2, fake.calls)
}

func TestBuildPromptContainsTopicAndCount(t *testing.T) {
	prompt := buildPrompt("Ancient Rome", 7)
	assert.Contains(t, prompt, `"Ancient Rome"`)
	assert.Contains(t, prompt, "approximately 7 slides")
	assert.Contains(t, prompt, `"title_slide"`)
	assert.Contains(t, prompt, `"two_column"`)
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"slides\": []}", `{"slides": []}`},
		{"```json\n{\"slides\": []}\n```", `{"slides": []}`},
		{"```\n{\"slides\": []}\n```", `{"slides": []}`},
		{"  \n```json\n{}\n```\n  ", "{}"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stripCodeFence(tc.in))
	}
}
