package deck

import (
	"fmt"
	"strings"
)

// 渲染时区分缺失与空串：键缺失才使用默认文本
const (
	DefaultTitleSlideTitle   = "Presentation Title"
	DefaultBulletSlideTitle  = "Slide Title"
	DefaultTwoColumnTitle    = "Two Column Title"
	DefaultTitleSlideSubtext = ""
)

// txBody至少需要一个段落
const emptyParagraph = `
                    <a:p/>`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

// 生成单个文本run的XML，样式由ResolveFont决定
func runXML(span Span, role Role) string {
	decision := ResolveFont(span, role)

	attrs := fmt.Sprintf(` lang="en-US" sz="%d"`, decision.Size*100)
	if span.Bold {
		attrs += ` b="1"`
	}
	if span.Underline {
		attrs += ` u="sng"`
	}

	props := fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, decision.Color)
	if decision.Family != "" {
		props += fmt.Sprintf(`<a:latin typeface="%s"/>`, decision.Family)
	}

	return fmt.Sprintf(`<a:r><a:rPr%s>%s</a:rPr><a:t>%s</a:t></a:r>`,
		attrs, props, xmlEscape(span.Text))
}

// 将带标记的文本拆分为run序列
func runsXML(text string, role Role) string {
	var b strings.Builder
	for _, span := range ParseMarkup(text) {
		b.WriteString(runXML(span, role))
	}
	return b.String()
}

// 生成一个段落，level为缩进级别，bullet控制是否带项目符号
func paragraphXML(text string, role Role, level int, bullet bool) string {
	pPr := fmt.Sprintf(`<a:pPr lvl="%d"/>`, level)
	if bullet {
		pPr = fmt.Sprintf(`
                        <a:pPr lvl="%d">
                            <a:buChar char="•"/>
                        </a:pPr>`, level)
	}
	return fmt.Sprintf(`
                    <a:p>%s%s</a:p>`, pPr, runsXML(text, role))
}

// generateSlideXML 按布局类型分发生成幻灯片XML。
// 布局未知时返回false，由调用方按跳过策略处理
func generateSlideXML(record SlideRecord) (string, bool) {
	var contentXML string

	switch record.Layout {
	case LayoutTitleSlide:
		contentXML = generateTitleSlideXML(record.Content)
	case LayoutBulletPoints:
		contentXML = generateBulletSlideXML(record.Content)
	case LayoutTwoColumn:
		contentXML = generateTwoColumnSlideXML(record.Content)
	default:
		return "", false
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
    <p:cSld>
        <p:spTree>
            <p:nvGrpSpPr>
                <p:cNvPr id="1" name=""/>
                <p:cNvGrpSpPr/>
                <p:nvPr/>
            </p:nvGrpSpPr>
            <p:grpSpPr>
                <a:xfrm>
                    <a:off x="0" y="0"/>
                    <a:ext cx="0" cy="0"/>
                    <a:chOff x="0" y="0"/>
                    <a:chExt cx="0" cy="0"/>
                </a:xfrm>
            </p:grpSpPr>
            %s
        </p:spTree>
    </p:cSld>
    <p:clrMapOvr>
        <a:masterClrMapping/>
    </p:clrMapOvr>
</p:sld>`, contentXML), true
}

func textOrDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// 生成标题幻灯片内容
func generateTitleSlideXML(content LayoutContent) string {
	title := textOrDefault(content.Title, DefaultTitleSlideTitle)
	subtitle := textOrDefault(content.Subtitle, DefaultTitleSlideSubtext)

	return fmt.Sprintf(`
            <p:sp>
                <p:nvSpPr>
                    <p:cNvPr id="2" name="Title"/>
                    <p:cNvSpPr>
                        <a:spLocks noGrp="1"/>
                    </p:cNvSpPr>
                    <p:nvPr>
                        <p:ph type="title"/>
                    </p:nvPr>
                </p:nvSpPr>
                <p:spPr>
                    <a:xfrm>
                        <a:off x="1474200" y="1296000"/>
                        <a:ext cx="6096000" cy="1296000"/>
                    </a:xfrm>
                </p:spPr>
                <p:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>
                    <a:p>%s</a:p>
                </p:txBody>
            </p:sp>
            <p:sp>
                <p:nvSpPr>
                    <p:cNvPr id="3" name="Subtitle"/>
                    <p:cNvSpPr>
                        <a:spLocks noGrp="1"/>
                    </p:cNvSpPr>
                    <p:nvPr/>
                </p:nvSpPr>
                <p:spPr>
                    <a:xfrm>
                        <a:off x="1474200" y="2743200"/>
                        <a:ext cx="6096000" cy="914400"/>
                    </a:xfrm>
                </p:spPr>
                <p:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>
                    <a:p>%s</a:p>
                </p:txBody>
            </p:sp>`, runsXML(title, RoleTitle), runsXML(subtitle, RoleBody))
}

// 生成要点列表幻灯片内容
func generateBulletSlideXML(content LayoutContent) string {
	title := textOrDefault(content.Title, DefaultBulletSlideTitle)

	var points strings.Builder
	for _, point := range content.Points {
		points.WriteString(paragraphXML(point, RoleBody, 0, true))
	}
	if points.Len() == 0 {
		points.WriteString(emptyParagraph)
	}

	return fmt.Sprintf(`
            <p:sp>
                <p:nvSpPr>
                    <p:cNvPr id="2" name="Title"/>
                    <p:cNvSpPr>
                        <a:spLocks noGrp="1"/>
                    </p:cNvSpPr>
                    <p:nvPr>
                        <p:ph type="title"/>
                    </p:nvPr>
                </p:nvSpPr>
                <p:spPr>
                    <a:xfrm>
                        <a:off x="1474200" y="457200"/>
                        <a:ext cx="6096000" cy="914400"/>
                    </a:xfrm>
                </p:spPr>
                <p:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>
                    <a:p>%s</a:p>
                </p:txBody>
            </p:sp>
            <p:sp>
                <p:nvSpPr>
                    <p:cNvPr id="3" name="Content"/>
                    <p:cNvSpPr>
                        <a:spLocks noGrp="1"/>
                    </p:cNvSpPr>
                    <p:nvPr>
                        <p:ph type="body" idx="1"/>
                    </p:nvPr>
                </p:nvSpPr>
                <p:spPr>
                    <a:xfrm>
                        <a:off x="1474200" y="1828800"/>
                        <a:ext cx="6096000" cy="3657600"/>
                    </a:xfrm>
                </p:spPr>
                <p:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>%s
                </p:txBody>
            </p:sp>`, runsXML(title, RoleTitle), points.String())
}

// 生成单栏内容：可选的栏标题在0级，要点在1级。
// 栏缺失或要点为空不报错，区域保持原样
func columnXML(column *ColumnContent) string {
	if column == nil {
		return emptyParagraph
	}

	var b strings.Builder
	if column.Heading != nil {
		b.WriteString(paragraphXML(*column.Heading, RoleBody, 0, false))
	}
	for _, point := range column.Points {
		b.WriteString(paragraphXML(point, RoleBody, 1, true))
	}
	if b.Len() == 0 {
		return emptyParagraph
	}
	return b.String()
}

// 生成两栏布局幻灯片内容
func generateTwoColumnSlideXML(content LayoutContent) string {
	title := textOrDefault(content.Title, DefaultTwoColumnTitle)

	return fmt.Sprintf(`
            <p:sp>
                <p:nvSpPr>
                    <p:cNvPr id="2" name="Title"/>
                    <p:cNvSpPr>
                        <a:spLocks noGrp="1"/>
                    </p:cNvSpPr>
                    <p:nvPr>
                        <p:ph type="title"/>
                    </p:nvPr>
                </p:nvSpPr>
                <p:spPr>
                    <a:xfrm>
                        <a:off x="1474200" y="457200"/>
                        <a:ext cx="6096000" cy="914400"/>
                    </a:xfrm>
                </p:spPr>
                <p:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>
                    <a:p>%s</a:p>
                </p:txBody>
            </p:sp>
            <p:sp>
                <p:nvSpPr>
                    <p:cNvPr id="3" name="Left Column"/>
                    <p:cNvSpPr>
                        <a:spLocks noGrp="1"/>
                    </p:cNvSpPr>
                    <p:nvPr/>
                </p:nvSpPr>
                <p:spPr>
                    <a:xfrm>
                        <a:off x="1474200" y="1828800"/>
                        <a:ext cx="2858575" cy="3657600"/>
                    </a:xfrm>
                </p:spPr>
                <p:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>%s
                </p:txBody>
            </p:sp>
            <p:sp>
                <p:nvSpPr>
                    <p:cNvPr id="4" name="Right Column"/>
                    <p:cNvSpPr>
                        <a:spLocks noGrp="1"/>
                    </p:cNvSpPr>
                    <p:nvPr/>
                </p:nvSpPr>
                <p:spPr>
                    <a:xfrm>
                        <a:off x="4711625" y="1828800"/>
                        <a:ext cx="2858575" cy="3657600"/>
                    </a:xfrm>
                </p:spPr>
                <p:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>%s
                </p:txBody>
            </p:sp>`,
		runsXML(title, RoleTitle),
		columnXML(content.LeftColumn),
		columnXML(content.RightColumn))
}
