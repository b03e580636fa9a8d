package pipeline

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/deer-in-haze/go-csvgallery/internal/dataset"
	"github.com/deer-in-haze/go-csvgallery/internal/fileutil"
	"github.com/deer-in-haze/go-csvgallery/internal/inline"
)

// Columns names the dataset fields read by the projector.
type Columns struct {
	Image string
	Name  string
}

// DefaultColumns are the dataset columns expected by default.
var DefaultColumns = Columns{Image: "IMAGE_PATH", Name: "LATIN_NAME"}

// Required returns the column names as a slice for schema validation.
func (c Columns) Required() []string {
	return []string{c.Image, c.Name}
}

// Headers labels the two columns of the rendered table.
type Headers struct {
	Image string
	Name  string
}

// DefaultHeaders are the table headings used by default.
var DefaultHeaders = Headers{Image: "Image", Name: "Latin name"}

// ViewRow is one rendered row.
type ViewRow struct {
	Image     template.HTML // <img> or placeholder markup
	Name      string        // display name, unescaped
	ImagePath string        // reference as written in the dataset
	Resolved  string        // absolute path the reference resolved to
	Missing   bool
}

// View is the derived two-column table, in dataset row order.
type View struct {
	Headers Headers
	Rows    []ViewRow
}

// Missing returns the dataset references of rows whose image is absent.
func (v *View) Missing() []string {
	var out []string
	for _, r := range v.Rows {
		if r.Missing {
			out = append(out, r.ImagePath)
		}
	}
	return out
}

// TableProjector defines the contract for building a View from a dataset.
type TableProjector interface {
	Project(ctx context.Context, ds *dataset.Dataset, baseDir string, cols Columns, headers Headers) (*View, error)
}

// Projector inlines each row's image and pairs it with the row's name.
type Projector struct {
	Inliner *inline.Inliner
	Workers int // > 1 inlines rows concurrently
	Logger  *zap.Logger
}

// NewProjector creates a Projector. A nil logger is replaced with a no-op logger.
func NewProjector(inl *inline.Inliner, workers int, logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{Inliner: inl, Workers: workers, Logger: logger}
}

// Project builds the view. Row order always matches ds.
func (p *Projector) Project(ctx context.Context, ds *dataset.Dataset, baseDir string, cols Columns, headers Headers) (*View, error) {
	if err := dataset.RequireColumns(ds.Columns, cols.Required()...); err != nil {
		return nil, err
	}

	rows := make([]ViewRow, ds.Len())

	if p.Workers <= 1 {
		for i, r := range ds.Rows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			vr, err := p.projectRow(r, baseDir, cols)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			rows[i] = vr
		}
		return &View{Headers: headers, Rows: rows}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for i, r := range ds.Rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			vr, err := p.projectRow(r, baseDir, cols)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			rows[i] = vr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &View{Headers: headers, Rows: rows}, nil
}

func (p *Projector) projectRow(r dataset.Row, baseDir string, cols Columns) (ViewRow, error) {
	ref := r[cols.Image]

	resolved, err := fileutil.ResolveUnder(baseDir, ref)
	if err != nil {
		return ViewRow{}, err
	}

	var (
		markup template.HTML
		ok     bool
	)
	if strings.TrimSpace(ref) == "" {
		// A blank cell resolves to baseDir itself; label it with the cell.
		markup, err = p.Inliner.Placeholder(ref)
	} else {
		markup, ok, err = p.Inliner.Tag(resolved)
	}
	if err != nil {
		return ViewRow{}, err
	}
	if !ok {
		p.Logger.Debug("image placeholder", zap.String("ref", ref), zap.String("path", resolved))
	}

	return ViewRow{
		Image:     markup,
		Name:      r[cols.Name],
		ImagePath: ref,
		Resolved:  resolved,
		Missing:   !ok,
	}, nil
}

// MissingImages lists, in row order, the references in column col whose
// resolved path under baseDir is not a regular file. Blank references and
// directories count as missing.
func MissingImages(ds *dataset.Dataset, baseDir, col string) ([]string, error) {
	refs, err := ds.Column(col)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, ref := range refs {
		path, err := fileutil.ResolveUnder(baseDir, ref)
		if err != nil {
			return nil, err
		}
		if !fileutil.FileExists(path) {
			missing = append(missing, ref)
		}
	}
	return missing, nil
}
