// Package markdown renders user-authored ticket text (descriptions and comments) to HTML
// that is safe to embed in the dashboard.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer interface {
	Render(text string) (string, error)
}

type renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &renderer{md: md, policy: policy}
}

// Render converts markdown to HTML and strips anything outside the UGC policy.
func (r *renderer) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
