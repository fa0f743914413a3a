package utils

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func init() {
	policy.AllowImages()
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown 把正文 Markdown 渲染为净化后的 HTML 字符串
func RenderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return SanitizeText(source) // Fallback
	}
	return string(policy.SanitizeBytes(buf.Bytes()))
}

// SanitizeText 剥掉输入里的所有 HTML 标签
func SanitizeText(source string) string {
	return strict.Sanitize(source)
}
