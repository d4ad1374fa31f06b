package deck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkupPlainText(t *testing.T) {
	// 不含定界符的文本应原样返回单个片段
	for _, text := range []string{
		"",
		"hello world",
		"带中文的 plain text",
		"a * b _ c",
	} {
		spans := ParseMarkup(text)
		require.Len(t, spans, 1, "text=%q", text)
		assert.Equal(t, Span{Text: text}, spans[0])
	}
}

func TestParseMarkupBold(t *testing.T) {
	spans := ParseMarkup("a **b** c")
	require.Equal(t, []Span{
		{Text: "a "},
		{Text: "b", Bold: true},
		{Text: " c"},
	}, spans)
}

func TestParseMarkupUnderline(t *testing.T) {
	spans := ParseMarkup("x __y__ z")
	require.Equal(t, []Span{
		{Text: "x "},
		{Text: "y", Underline: true},
		{Text: " z"},
	}, spans)
}

func TestParseMarkupMixed(t *testing.T) {
	spans := ParseMarkup("**bold** and __underline__")
	require.Equal(t, []Span{
		{Text: ""},
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "underline", Underline: true},
		{Text: ""},
	}, spans)
}

func TestParseMarkupNoNesting(t *testing.T) {
	// 定界符不嵌套：加粗片段内的__原样保留
	spans := ParseMarkup("**a__b__c**")
	require.Equal(t, []Span{
		{Text: ""},
		{Text: "a__b__c", Bold: true},
		{Text: ""},
	}, spans)
}

func TestParseMarkupPreservesEmptySegments(t *testing.T) {
	spans := ParseMarkup("**a****b**")
	require.Equal(t, []Span{
		{Text: ""},
		{Text: "a", Bold: true},
		{Text: ""},
		{Text: "b", Bold: true},
		{Text: ""},
	}, spans)
}

func TestParseMarkupUnmatchedDelimiterKeptAsText(t *testing.T) {
	tests := []struct {
		text string
		want []Span
	}{
		{"a ** b", []Span{{Text: "a ** b"}}},
		{"a __ b", []Span{{Text: "a __ b"}}},
		{"a **b** c ** d", []Span{
			{Text: "a "},
			{Text: "b", Bold: true},
			{Text: " c ** d"},
		}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMarkup(tt.text), "text=%q", tt.text)
	}
}

func TestParseMarkupConcatenationIdentity(t *testing.T) {
	// 片段拼接应还原去掉定界符的原文
	for _, text := range []string{
		"a **b** c",
		"x __y__ z",
		"**bold** and __underline__ mixed plain",
		"**a****b**",
		"leading **one** middle __two__ trailing",
		"no markup at all",
	} {
		spans := ParseMarkup(text)
		stripped := strings.NewReplacer(delimBold, "", delimUnderline, "").Replace(text)
		assert.Equal(t, stripped, PlainText(spans), "text=%q", text)
	}
}
