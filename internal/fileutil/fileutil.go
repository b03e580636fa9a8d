// Package fileutil resolves dataset and image references to absolute paths
// and provides small file helpers shared by the gallery packages.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNotFound               = errors.New("file not found")
	ErrEmptyReference         = errors.New("path reference cannot be empty")
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// notFoundError keeps both ErrNotFound and fs.ErrNotExist reachable through errors.Is.
type notFoundError struct {
	path string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%v: %s", ErrNotFound, e.path)
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound || target == fs.ErrNotExist
}

// StripLeadingSeparator removes exactly one leading "/" or "\" from ref.
// Image references in datasets are often written as "/birds/a.jpg" while
// meaning "birds/a.jpg" relative to the dataset directory.
func StripLeadingSeparator(ref string) string {
	if strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, `\`) {
		return ref[1:]
	}
	return ref
}

// ResolveUnder joins ref to baseDir and returns the cleaned absolute path.
// A single leading separator on ref is stripped first. Existence is not checked.
func ResolveUnder(baseDir, ref string) (string, error) {
	rel := StripLeadingSeparator(ref)
	joined := filepath.Join(baseDir, filepath.FromSlash(rel))
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolving %q under %q: %w", ref, baseDir, err)
	}
	return abs, nil
}

// ResolveExisting resolves name under baseDir and fails with ErrNotFound when
// nothing exists at the resolved location.
func ResolveExisting(baseDir, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyReference
	}

	path, err := ResolveUnder(baseDir, name)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &notFoundError{path: path}
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	return path, nil
}

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "csvgallery-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsUnderDir reports whether path lies inside dir after cleaning both.
func IsUnderDir(path, dir string) bool {
	cleanPath := filepath.Clean(path)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
