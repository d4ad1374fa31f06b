package deck

import "fmt"

// Role 表示文本角色，决定采用哪组样式常量
type Role int

const (
	RoleTitle Role = iota // 标题文本
	RoleBody              // 正文文本
)

// 演示文稿样式常量
const (
	TitleFontFamily = "Calibri Light"
	BodyFontFamily  = "Calibri"

	TitleFontSize = 36 // 磅
	BodyFontSize  = 18 // 磅

	TitleColor = "0A2C52" // 深蓝
	BodyColor  = "333333" // 深灰
)

// FontDecision 表示一个片段最终的字体决定。
// Family为空表示沿用模板默认字体
type FontDecision struct {
	Family string
	Size   int // 磅
	Color  string
}

// ResolveFont 根据片段样式与文本角色确定最终字体。
// 加粗片段不覆盖字体系列，让模板自带的粗体字形生效；
// 字号与颜色始终强制为角色常量。
// 未知角色属于编程错误，直接panic
func ResolveFont(span Span, role Role) FontDecision {
	var decision FontDecision
	switch role {
	case RoleTitle:
		decision.Size = TitleFontSize
		decision.Color = TitleColor
		if !span.Bold {
			decision.Family = TitleFontFamily
		}
	case RoleBody:
		decision.Size = BodyFontSize
		decision.Color = BodyColor
		if !span.Bold {
			decision.Family = BodyFontFamily
		}
	default:
		panic(fmt.Sprintf("unknown text role: %d", role))
	}
	return decision
}
