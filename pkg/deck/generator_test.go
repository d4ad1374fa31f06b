package deck

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// 生成器注册不存在的模板路径，走内置空白底稿
func blankGenerator() *Generator {
	g := NewGenerator()
	g.RegisterTemplate(AspectWidescreen, "testdata/no_such_template_16_9.pptx")
	g.RegisterTemplate(AspectStandard, "testdata/no_such_template_4_3.pptx")
	return g
}

func unpackPPTX(t *testing.T, data []byte) map[string]string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, file := range reader.File {
		content, err := readZipFile(file)
		require.NoError(t, err)
		files[file.Name] = string(content)
	}
	return files
}

var slideNamePattern = regexp.MustCompile(`^ppt/slides/slide\d+\.xml$`)

func countSlides(files map[string]string) int {
	count := 0
	for name := range files {
		if slideNamePattern.MatchString(name) {
			count++
		}
	}
	return count
}

func TestGenerateSkipsUnknownLayout(t *testing.T) {
	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutKind("bogus"), Content: LayoutContent{Title: strPtr("ignored")}},
		{Layout: LayoutTitleSlide, Content: LayoutContent{Title: strPtr("T")}},
	}}

	data, err := blankGenerator().Generate(tree, AspectWidescreen)
	require.NoError(t, err)

	files := unpackPPTX(t, data)
	assert.Equal(t, 1, countSlides(files))
	assert.Contains(t, files["ppt/slides/slide1.xml"], "<a:t>T</a:t>")

	// 清单中也只有一个幻灯片
	assert.Equal(t, 1, strings.Count(files["ppt/presentation.xml"], "<p:sldId "))
	assert.Contains(t, files["[Content_Types].xml"], "/ppt/slides/slide1.xml")
	assert.NotContains(t, files["[Content_Types].xml"], "/ppt/slides/slide2.xml")
}

func TestGenerateBulletSlideDefaults(t *testing.T) {
	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutBulletPoints, Content: LayoutContent{}},
	}}

	data, err := blankGenerator().Generate(tree, AspectWidescreen)
	require.NoError(t, err)

	files := unpackPPTX(t, data)
	slide := files["ppt/slides/slide1.xml"]
	assert.Contains(t, slide, "<a:t>"+DefaultBulletSlideTitle+"</a:t>")
	// 没有要点时正文不产生任何项目符号段落
	assert.NotContains(t, slide, "buChar")
}

func TestGenerateTitleSlideDefaults(t *testing.T) {
	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutTitleSlide, Content: LayoutContent{}},
	}}

	data, err := blankGenerator().Generate(tree, AspectWidescreen)
	require.NoError(t, err)

	files := unpackPPTX(t, data)
	assert.Contains(t, files["ppt/slides/slide1.xml"], "<a:t>"+DefaultTitleSlideTitle+"</a:t>")
}

func TestGenerateEmptyTitleIsNotDefaulted(t *testing.T) {
	// 显式空串不触发默认文本
	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutTitleSlide, Content: LayoutContent{Title: strPtr("")}},
	}}

	data, err := blankGenerator().Generate(tree, AspectWidescreen)
	require.NoError(t, err)

	files := unpackPPTX(t, data)
	assert.NotContains(t, files["ppt/slides/slide1.xml"], DefaultTitleSlideTitle)
}

func TestGenerateTwoColumnOrdering(t *testing.T) {
	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutTwoColumn, Content: LayoutContent{
			Title: strPtr("T"),
			LeftColumn: &ColumnContent{
				Heading: strPtr("H"),
				Points:  []string{"p1", "p2"},
			},
		}},
	}}

	data, err := blankGenerator().Generate(tree, AspectWidescreen)
	require.NoError(t, err)

	files := unpackPPTX(t, data)
	slide := files["ppt/slides/slide1.xml"]

	leftStart := strings.Index(slide, `"Left Column"`)
	rightStart := strings.Index(slide, `"Right Column"`)
	require.True(t, leftStart >= 0 && rightStart > leftStart)
	left := slide[leftStart:rightStart]

	// 栏标题在0级缩进，要点依次在1级缩进
	idxHeading := strings.Index(left, "<a:t>H</a:t>")
	idxP1 := strings.Index(left, "<a:t>p1</a:t>")
	idxP2 := strings.Index(left, "<a:t>p2</a:t>")
	require.True(t, idxHeading >= 0 && idxP1 >= 0 && idxP2 >= 0)
	assert.Less(t, idxHeading, idxP1)
	assert.Less(t, idxP1, idxP2)

	assert.Equal(t, 1, strings.Count(left, `lvl="0"`))
	assert.Equal(t, 2, strings.Count(left, `lvl="1"`))

	// 右栏缺失不报错，区域保留空段落
	right := slide[rightStart:]
	assert.Contains(t, right, "<a:p/>")
}

func TestGenerateTemplateFallback(t *testing.T) {
	// 两个模板都不可用时仍然生成有效文档
	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutTitleSlide, Content: LayoutContent{Title: strPtr("A")}},
		{Layout: LayoutBulletPoints, Content: LayoutContent{Title: strPtr("B"), Points: []string{"p"}}},
	}}

	data, err := blankGenerator().Generate(tree, AspectStandard)
	require.NoError(t, err)

	files := unpackPPTX(t, data)
	assert.Equal(t, 2, countSlides(files))
	assert.Contains(t, files, "ppt/slideMasters/slideMaster1.xml")
	assert.Contains(t, files, "ppt/slideLayouts/slideLayout1.xml")
	assert.Contains(t, files, "ppt/theme/theme1.xml")
	assert.Contains(t, files, "_rels/.rels")
}

func TestGenerateAspectRatioSelectsSlideSize(t *testing.T) {
	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutTitleSlide, Content: LayoutContent{Title: strPtr("T")}},
	}}
	g := blankGenerator()

	wide, err := g.Generate(tree, AspectWidescreen)
	require.NoError(t, err)
	assert.Contains(t, unpackPPTX(t, wide)["ppt/presentation.xml"], `<p:sldSz cx="12192000" cy="6858000"/>`)

	std, err := g.Generate(tree, AspectStandard)
	require.NoError(t, err)
	assert.Contains(t, unpackPPTX(t, std)["ppt/presentation.xml"], `<p:sldSz cx="9144000" cy="6858000"/>`)
}

func TestGenerateUsesTemplateParts(t *testing.T) {
	// 构造带标记主题和一张旧幻灯片的模板文件
	const themeMarker = "CustomTemplateTheme"
	templateParts := blankParts()
	templateParts["ppt/theme/theme1.xml"] = bytes.Replace(
		templateParts["ppt/theme/theme1.xml"], []byte(`name="Office"`), []byte(`name="`+themeMarker+`"`), 1)
	templateParts["ppt/slides/slide1.xml"] = []byte("<p:sld>stale template slide</p:sld>")
	templateParts["ppt/slides/_rels/slide1.xml.rels"] = []byte(slideRelsXML)
	templateParts["[Content_Types].xml"] = buildContentTypes(templateParts, 1)
	templateParts["ppt/presentation.xml"] = buildPresentation(1, AspectWidescreen)
	templateParts["ppt/_rels/presentation.xml.rels"] = buildPresentationRels(1)

	templateData, err := writeZip(templateParts)
	require.NoError(t, err)
	templatePath := filepath.Join(t.TempDir(), "template_16_9.pptx")
	require.NoError(t, os.WriteFile(templatePath, templateData, 0644))

	g := NewGenerator()
	g.RegisterTemplate(AspectWidescreen, templatePath)

	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutTitleSlide, Content: LayoutContent{Title: strPtr("New")}},
		{Layout: LayoutBulletPoints, Content: LayoutContent{Title: strPtr("B"), Points: []string{"p"}}},
	}}
	data, err := g.Generate(tree, AspectWidescreen)
	require.NoError(t, err)

	files := unpackPPTX(t, data)
	// 模板主题保留，模板旧幻灯片被剔除
	assert.Contains(t, files["ppt/theme/theme1.xml"], themeMarker)
	assert.Equal(t, 2, countSlides(files))
	assert.NotContains(t, files["ppt/slides/slide1.xml"], "stale template slide")
}

func TestGenerateEscapesXML(t *testing.T) {
	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutTitleSlide, Content: LayoutContent{Title: strPtr(`A & B <C> "D"`)}},
	}}

	data, err := blankGenerator().Generate(tree, AspectWidescreen)
	require.NoError(t, err)

	slide := unpackPPTX(t, data)["ppt/slides/slide1.xml"]
	assert.Contains(t, slide, "A &amp; B &lt;C&gt; &quot;D&quot;")
}

func TestGenerateAppliesMarkupStyles(t *testing.T) {
	tree := &ContentTree{Slides: []SlideRecord{
		{Layout: LayoutBulletPoints, Content: LayoutContent{
			Title:  strPtr("T"),
			Points: []string{"plain **bold** and __underlined__"},
		}},
	}}

	data, err := blankGenerator().Generate(tree, AspectWidescreen)
	require.NoError(t, err)

	slide := unpackPPTX(t, data)["ppt/slides/slide1.xml"]
	assert.Contains(t, slide, `b="1"`)
	assert.Contains(t, slide, `u="sng"`)

	// 加粗run沿用模板默认字体，不带latin声明
	boldRun := slide[strings.Index(slide, `b="1"`):]
	boldRun = boldRun[:strings.Index(boldRun, "</a:r>")]
	assert.NotContains(t, boldRun, "<a:latin")
	assert.Contains(t, boldRun, BodyColor)
}

func TestWriteFileReplacesAtomically(t *testing.T) {
	g := blankGenerator()
	path := filepath.Join(t.TempDir(), "out", "deck.pptx")

	require.NoError(t, g.WriteFile(path, []byte("v1")))
	require.NoError(t, g.WriteFile(path, []byte("v2")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	// 目录中不残留临时文件
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
