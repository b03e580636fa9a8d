package assets

import "errors"

// Asset errors.
var (
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetName      = errors.New("invalid asset name")
	ErrInvalidBasePath       = errors.New("invalid base path")
	ErrAssetRead             = errors.New("failed to read asset")
	ErrPathTraversal         = errors.New("path traversal detected")
)

// AssetLoader defines the contract for loading CSS styles and template sets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the image, placeholder and page templates by name.
	// Returns ErrTemplateSetNotFound if the set doesn't exist and
	// ErrIncompleteTemplateSet if some of its files are missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// isNotFound reports whether err should let a resolver fall back.
func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateSetNotFound)
}
