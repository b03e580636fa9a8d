package csvgallery

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/deer-in-haze/go-csvgallery/internal/fileutil"
	"github.com/deer-in-haze/go-csvgallery/internal/hints"
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Landscape bool
}

// PDF page dimensions in inches (A4).
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.4
)

// defaultPDFTimeout is used when neither the display nor the context sets one.
const defaultPDFTimeout = 30 * time.Second

// PDFDisplay prints the rendered page to PDF with headless Chrome.
// Exactly one of W or Path should be set; W wins when both are.
// Call Close to release the browser.
type PDFDisplay struct {
	W         io.Writer
	Path      string
	Landscape bool
	Timeout   time.Duration // page load timeout, 0 = 30s

	mu       sync.Mutex
	renderer pdfRenderer
}

// NewPDFDisplay creates a PDFDisplay writing to path.
func NewPDFDisplay(path string) *PDFDisplay {
	return &PDFDisplay{Path: path}
}

// Display converts Result.Page to PDF and writes it out.
func (d *PDFDisplay) Display(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf, err := d.toPDF(ctx, res.Page)
	if err != nil {
		return err
	}

	if d.W != nil {
		if _, err := d.W.Write(pdf); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		return nil
	}
	if d.Path == "" {
		return fmt.Errorf("%w: no output writer or path", ErrPDFGeneration)
	}
	if err := os.WriteFile(d.Path, pdf, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", d.Path, err)
	}
	return nil
}

// toPDF writes the page to a temp file and renders it.
// Pages embed their images as data URIs, so the temp location does not
// affect image loading.
func (d *PDFDisplay) toPDF(ctx context.Context, page string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.renderer == nil {
		timeout := d.Timeout
		if timeout <= 0 {
			timeout = defaultPDFTimeout
		}
		d.renderer = newRodRenderer(timeout)
	}
	return d.renderer.RenderFromFile(ctx, tmpPath, &pdfOptions{Landscape: d.Landscape})
}

// Close releases browser resources.
func (d *PDFDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.renderer == nil {
		return nil
	}
	err := d.renderer.Close()
	d.renderer = nil
	return err
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF for an A4 page.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	landscape := opts != nil && opts.Landscape
	return &proto.PagePrintToPDF{
		Landscape:       landscape,
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
