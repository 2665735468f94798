package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownFormatting(t *testing.T) {
	html := string(renderMarkdown("**bold** and *italic* with `code`"))
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<em>italic</em>")
	assert.Contains(t, html, "<code>code</code>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	html := string(renderMarkdown("hello <script>alert(1)</script> world"))
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "alert(1)")
	assert.Contains(t, html, "hello")
}

func TestRenderMarkdownStripsEventHandlers(t *testing.T) {
	html := string(renderMarkdown(`<img src="https://example.com/x.png" onerror="alert(1)" alt="x">`))
	assert.NotContains(t, html, "onerror")
	assert.Contains(t, html, `src="https://example.com/x.png"`)
}

func TestRenderMarkdownLinks(t *testing.T) {
	html := string(renderMarkdown("[docs](https://example.com/docs)"))
	assert.Contains(t, html, `href="https://example.com/docs"`)
	assert.Contains(t, html, `rel="nofollow"`)

	// javascript: URLs must not survive sanitization.
	html = string(renderMarkdown(`[click](javascript:alert(1))`))
	assert.NotContains(t, html, "javascript:")
}
