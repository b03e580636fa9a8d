package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrPageRender indicates the page template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// DefaultTitle is used when no page title is given.
const DefaultTitle = "Dataset"

// PageRenderer defines the contract for wrapping a fragment in a full document.
type PageRenderer interface {
	Build(ctx context.Context, title, fragment, css string) (string, error)
}

// pageData feeds the page template.
type pageData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// PageBuilder renders the page shell template around a table fragment.
type PageBuilder struct {
	tmpl *template.Template
}

// NewPageBuilder parses the page template.
func NewPageBuilder(tmplContent string) (*PageBuilder, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageBuilder{tmpl: tmpl}, nil
}

// Build returns a standalone HTML5 document containing fragment, with css in
// a <style> block in the head.
func (b *PageBuilder) Build(ctx context.Context, title, fragment, css string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if title == "" {
		title = DefaultTitle
	}

	var buf bytes.Buffer
	err := b.tmpl.Execute(&buf, pageData{
		Title: title,
		CSS:   template.CSS(sanitizeCSS(css)), // #nosec G203 -- style assets, </ neutralized
		Body:  template.HTML(fragment),        // #nosec G203 -- produced by the renderer
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
