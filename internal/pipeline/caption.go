package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/deer-in-haze/go-csvgallery/internal/inline"
)

// ErrCaptionConversion indicates the Markdown caption could not be converted.
var ErrCaptionConversion = errors.New("caption conversion failed")

// CaptionRenderer abstracts Markdown caption to HTML conversion.
type CaptionRenderer interface {
	ToHTML(ctx context.Context, markdown, baseDir string) (string, error)
}

// CaptionConverter converts Markdown captions with goldmark (pure Go).
type CaptionConverter struct {
	md goldmark.Markdown
}

// NewCaptionConverter creates a CaptionConverter with GFM extensions and
// class-based syntax highlighting.
func NewCaptionConverter() *CaptionConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML in captions is dropped; WithUnsafe stays off.
		),
	)
	return &CaptionConverter{md: md}
}

// ToHTML converts markdown to an HTML fragment wrapped in a caption <div>.
// Relative images are inlined from baseDir. Empty input yields "".
func (c *CaptionConverter) ToHTML(ctx context.Context, markdown, baseDir string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptionConversion, err)
	}

	fragment, err := inline.RewriteImages(buf.String(), baseDir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCaptionConversion, err)
	}

	return `<div class="csvgallery-caption">` + fragment + `</div>`, nil
}
