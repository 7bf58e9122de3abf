package text

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// DescriptionRenderer turns markdown image descriptions into sanitized HTML.
type DescriptionRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewDescriptionRenderer() *DescriptionRenderer {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &DescriptionRenderer{md: md, policy: p}
}

// Render returns "" for empty input. Raw HTML in the source is dropped.
func (r *DescriptionRenderer) Render(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(description), &buf); err != nil {
		return r.policy.Sanitize(description)
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String()))
}
