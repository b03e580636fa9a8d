package inline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/deer-in-haze/go-csvgallery/internal/assets"
	"github.com/deer-in-haze/go-csvgallery/internal/fileutil"
)

// DefaultWidth is the display width in pixels of inlined images.
const DefaultWidth = 120

// Sentinel errors for the inliner.
var (
	ErrInvalidWidth = errors.New("invalid image width")
	ErrTemplate     = errors.New("image template rendering failed")
)

// imageData feeds the image template.
type imageData struct {
	Src   template.URL
	Width int
	Alt   string
}

// placeholderData feeds the placeholder template.
type placeholderData struct {
	Name string
}

// Inliner renders image references as inline markup.
type Inliner struct {
	width       int
	image       *template.Template
	placeholder *template.Template
}

// New parses the image and placeholder templates of ts.
// Width must be positive.
func New(ts *assets.TemplateSet, width int) (*Inliner, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d (must be positive)", ErrInvalidWidth, width)
	}
	if ts == nil {
		return nil, fmt.Errorf("%w: nil template set", ErrTemplate)
	}

	img, err := template.New("image").Parse(ts.Image)
	if err != nil {
		return nil, fmt.Errorf("parsing image template: %w", err)
	}
	ph, err := template.New("placeholder").Parse(ts.Placeholder)
	if err != nil {
		return nil, fmt.Errorf("parsing placeholder template: %w", err)
	}

	return &Inliner{width: width, image: img, placeholder: ph}, nil
}

// NewDefault creates an Inliner from the embedded default templates.
func NewDefault(width int) (*Inliner, error) {
	ts, err := assets.NewEmbeddedLoader().LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		return nil, err
	}
	return New(ts, width)
}

// Width returns the configured display width.
func (i *Inliner) Width() int {
	return i.width
}

// Tag renders path as an <img> with an embedded data URI. When path is not a
// regular file (absent, a directory) it renders the placeholder instead and
// reports ok=false. Read errors on an existing file are returned.
func (i *Inliner) Tag(path string) (markup template.HTML, ok bool, err error) {
	name := filepath.Base(path)

	if !fileutil.FileExists(path) {
		ph, err := i.Placeholder(name)
		return ph, false, err
	}

	uri, err := DataURI(path)
	if err != nil {
		return "", false, err
	}

	out, err := execute(i.image, imageData{
		Src:   template.URL(uri), // #nosec G203 -- URI built from local bytes, never user markup
		Width: i.width,
		Alt:   name,
	})
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

// Placeholder renders the missing-image marker for a file name.
func (i *Inliner) Placeholder(name string) (template.HTML, error) {
	return execute(i.placeholder, placeholderData{Name: name})
}

func execute(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil // #nosec G203 -- produced by html/template
}
