package email

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// policy keeps only the formatting users may put into posts. Everything else,
// scripts and event handlers included, is stripped before the content reaches
// an email body.
var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "em", "strong", "a", "img", "code", "pre")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)
	return p
}()

// renderMarkdown converts untrusted markdown to sanitized HTML.
func renderMarkdown(source string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	raw := markdown.ToHTML([]byte(source), p, renderer)
	return template.HTML(policy.SanitizeBytes(raw))
}
