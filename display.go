package csvgallery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Display presents a rendered gallery. Implementations decide where the
// HTML goes: a writer, a file, a notebook kernel, a PDF.
type Display interface {
	Display(ctx context.Context, res *Result) error
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(ctx context.Context, res *Result) error

// Display calls f(ctx, res).
func (f DisplayFunc) Display(ctx context.Context, res *Result) error {
	return f(ctx, res)
}

// WriterDisplay writes the rendered HTML to W.
type WriterDisplay struct {
	W        io.Writer
	FullPage bool // write Result.Page instead of the Result.HTML fragment
}

// Display writes the fragment or the page to the writer.
func (d *WriterDisplay) Display(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content := res.HTML
	if d.FullPage {
		content = res.Page
	}
	if _, err := io.WriteString(d.W, content); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	return nil
}

// FileDisplay writes the full HTML page to Path, creating parent directories.
type FileDisplay struct {
	Path string
}

// Display writes Result.Page to the file.
func (d *FileDisplay) Display(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(d.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(d.Path, []byte(res.Page), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", d.Path, err)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Display = DisplayFunc(nil)
	_ Display = (*WriterDisplay)(nil)
	_ Display = (*FileDisplay)(nil)
)
