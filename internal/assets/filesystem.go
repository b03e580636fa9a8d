package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/deer-in-haze/go-csvgallery/internal/fileutil"
)

// FilesystemLoader loads gallery styles and template sets from a directory
// laid out like the embedded assets.
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader opens root as an asset directory.
// Returns ErrInvalidBasePath unless root is a readable directory.
func NewFilesystemLoader(root string) (*FilesystemLoader, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{root: abs}, nil
}

// LoadStyle reads styles/<name>.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := f.read("styles", name+".css")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q in %s", ErrStyleNotFound, name, f.root)
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// LoadTemplateSet reads templates/<name>/{image,placeholder,page}.html.
// A directory holding none of the files counts as not found; one holding
// only some of them is incomplete.
func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	files := make(map[string]string, len(templateFiles))
	for _, file := range templateFiles {
		content, err := f.read("templates", name, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		files[file] = content
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrTemplateSetNotFound, name, f.root)
	}
	return newTemplateSet(name, files)
}

// read returns the content of root/elem... after checking that the file,
// symlinks followed, stays under root. Missing files yield an error
// matching fs.ErrNotExist.
func (f *FilesystemLoader) read(elem ...string) (string, error) {
	path := filepath.Join(append([]string{f.root}, elem...)...)

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if !fileutil.IsUnderDir(resolved, f.root) {
		return "", fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, filepath.Join(elem...), f.root)
	}

	content, err := os.ReadFile(resolved) // #nosec G304 -- contained in root
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
