package ui

import (
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderModelCard converts the embedded model card markdown to HTML once at
// startup. The source is part of the binary, so render failures are build
// problems and surface immediately.
func renderModelCard() (template.HTML, error) {
	src, err := embeddedFiles.ReadFile("content/model_card.md")
	if err != nil {
		return "", fmt.Errorf("embedded model card missing: %w", err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(src)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.Render(doc, renderer)), nil
}
