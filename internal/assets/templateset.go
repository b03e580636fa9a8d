package assets

import "fmt"

// TemplateSet holds the html/template sources for one rendering theme.
type TemplateSet struct {
	Name        string // Identifier (name or directory path)
	Image       string // <img> fragment for an inlined image
	Placeholder string // fragment shown when the image file is missing
	Page        string // full HTML5 document wrapping the table
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// templateFiles lists the files every template set directory must contain.
var templateFiles = []string{"image.html", "placeholder.html", "page.html"}

// newTemplateSet builds a TemplateSet from file contents keyed by file name.
func newTemplateSet(name string, files map[string]string) (*TemplateSet, error) {
	for _, f := range templateFiles {
		if _, ok := files[f]; !ok {
			return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, f)
		}
	}
	return &TemplateSet{
		Name:        name,
		Image:       files["image.html"],
		Placeholder: files["placeholder.html"],
		Page:        files["page.html"],
	}, nil
}
