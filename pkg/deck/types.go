package deck

import (
	"errors"

	"github.com/tidwall/gjson"
)

// LayoutKind 表示幻灯片布局类型
type LayoutKind string

const (
	LayoutTitleSlide   LayoutKind = "title_slide"   // 标题幻灯片
	LayoutBulletPoints LayoutKind = "bullet_points" // 要点列表
	LayoutTwoColumn    LayoutKind = "two_column"    // 两栏布局
)

// ContentTree 表示一整份演示文稿的结构化内容，按演示顺序排列
type ContentTree struct {
	Slides []SlideRecord
}

// SlideRecord 表示单个幻灯片记录：布局标签加上对应的内容
type SlideRecord struct {
	Layout  LayoutKind
	Content LayoutContent
}

// LayoutContent 表示幻灯片内容，字段按布局类型取用。
// 指针字段区分"缺失"与"空串"：缺失时渲染方填充默认文本
type LayoutContent struct {
	Title       *string
	Subtitle    *string
	Points      []string
	LeftColumn  *ColumnContent
	RightColumn *ColumnContent
}

// ColumnContent 表示两栏布局中单栏的内容
type ColumnContent struct {
	Heading *string
	Points  []string
}

var (
	ErrInvalidContent = errors.New("内容结构无效")
)

// ParseContentTree 将生成服务返回的JSON解析为内容树。
// 输入视为不可信数据：字段缺失或类型不符不会报错，
// 未知的layout值原样保留，由装配阶段按跳过策略处理
func ParseContentTree(data []byte) (*ContentTree, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidContent
	}

	j := gjson.ParseBytes(data)
	if j.Get("error").Exists() {
		return nil, ErrInvalidContent
	}

	slides := j.Get("slides")
	if !slides.IsArray() {
		return nil, ErrInvalidContent
	}

	tree := &ContentTree{}
	slides.ForEach(func(_, value gjson.Result) bool {
		record := SlideRecord{
			Layout:  LayoutKind(value.Get("layout").String()),
			Content: parseLayoutContent(value.Get("content")),
		}
		tree.Slides = append(tree.Slides, record)
		return true
	})

	return tree, nil
}

func parseLayoutContent(j gjson.Result) LayoutContent {
	content := LayoutContent{
		Title:    optString(j.Get("title")),
		Subtitle: optString(j.Get("subtitle")),
		Points:   stringList(j.Get("points")),
	}
	if left := j.Get("left_column"); left.IsObject() {
		content.LeftColumn = parseColumn(left)
	}
	if right := j.Get("right_column"); right.IsObject() {
		content.RightColumn = parseColumn(right)
	}
	return content
}

func parseColumn(j gjson.Result) *ColumnContent {
	return &ColumnContent{
		Heading: optString(j.Get("heading")),
		Points:  stringList(j.Get("points")),
	}
}

func optString(j gjson.Result) *string {
	if !j.Exists() {
		return nil
	}
	s := j.String()
	return &s
}

func stringList(j gjson.Result) []string {
	if !j.IsArray() {
		return nil
	}
	var items []string
	j.ForEach(func(_, value gjson.Result) bool {
		items = append(items, value.String())
		return true
	})
	return items
}
