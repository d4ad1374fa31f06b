package deck

import "strings"

// Span 表示一段样式一致的连续文本
type Span struct {
	Text      string
	Bold      bool
	Underline bool
}

const (
	delimBold      = "**"
	delimUnderline = "__"
)

// ParseMarkup 将带受限标记的文本拆分为有序的样式片段。
// 支持两种成对定界符：**加粗**、__下划线__。定界符不嵌套，
// 单遍从左到右扫描，每次取最先出现、最短闭合的一对。
// 所有片段的Text依次拼接后等于去掉定界符的原文，
// 空的普通片段也会保留。
// 已知限制：不校验未配对的定界符，落单的定界符按普通文本原样输出
func ParseMarkup(text string) []Span {
	var spans []Span

	rest := text
	for {
		start, end, delim := nextStyled(rest)
		if start < 0 {
			break
		}
		spans = append(spans, Span{Text: rest[:start]})
		spans = append(spans, Span{
			Text:      rest[start+len(delim) : end],
			Bold:      delim == delimBold,
			Underline: delim == delimUnderline,
		})
		rest = rest[end+len(delim):]
	}

	if len(spans) == 0 {
		return []Span{{Text: text}}
	}
	return append(spans, Span{Text: rest})
}

// nextStyled 查找最先出现且能闭合的定界符对，
// 返回起始定界符位置、结束定界符位置和定界符本身。
// 无法闭合的定界符跳过继续扫描。找不到时start为-1
func nextStyled(s string) (start, end int, delim string) {
	for i := 0; i+2*len(delimBold) <= len(s); i++ {
		var d string
		switch s[i : i+2] {
		case delimBold:
			d = delimBold
		case delimUnderline:
			d = delimUnderline
		default:
			continue
		}

		j := strings.Index(s[i+2:], d)
		if j < 0 {
			continue
		}
		return i, i + 2 + j, d
	}
	return -1, -1, ""
}

// PlainText 返回片段序列去掉样式后的全文
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.Text)
	}
	return b.String()
}
